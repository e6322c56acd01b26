package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fitsight/fitsight/internal/fitapi"
)

// Defaults matching the upstream analytics windows.
const (
	DefaultProgressDays  = 30
	DefaultNutritionDays = 7
	DefaultTrendDays     = 90

	DefaultPredictionType = fitapi.WorkoutStrength
	DefaultPredictionDays = 7
)

// ErrUnsupportedMetric rejects a trend metric outside the upstream's set.
var ErrUnsupportedMetric = errors.New("unsupported trend metric")

// trendMetrics the upstream trend endpoint accepts.
var trendMetrics = map[string]bool{
	"duration":        true,
	"calories_burned": true,
}

// DashboardViewModel is the overview page snapshot. All series and section
// pointers use nil as the explicit no-data or not-loaded marker; DegradedSources
// names the optional sources that failed to load.
type DashboardViewModel struct {
	GeneratedAt time.Time `json:"generated_at"`

	Username    string       `json:"username"`
	MemberSince *fitapi.Date `json:"member_since,omitempty"`

	TotalWorkouts      int `json:"total_workouts"`
	TotalNutritionLogs int `json:"total_nutrition_logs"`
	WorkoutsLast7Days  int `json:"workouts_last_7_days"`

	WorkoutProgress  *WorkoutSeries `json:"workout_progress,omitempty"`
	TypeDistribution []TypeCount    `json:"type_distribution,omitempty"`

	Insights []InsightCard `json:"insights,omitempty"`

	DegradedSources []string `json:"degraded_sources,omitempty"`
}

// LoadDashboard assembles the overview page. Statistics and the trailing
// 30-day progress are mandatory; the ML insights section is optional and the
// page renders without it when that source fails.
func (o *Orchestrator) LoadDashboard(ctx context.Context) (*DashboardViewModel, error) {
	var (
		wg sync.WaitGroup

		stats    *fitapi.Statistics
		statsErr error

		progress    *fitapi.Progress
		progressErr error

		insights Slot[[]fitapi.Insight]
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		stats, statsErr = mandatory(ctx, o, QueryStatistics, o.client.Statistics)
	}()
	go func() {
		defer wg.Done()
		progress, progressErr = mandatory(ctx, o, QueryProgress, func(ctx context.Context) (*fitapi.Progress, error) {
			return o.client.Progress(ctx, DefaultProgressDays)
		})
	}()
	go func() {
		defer wg.Done()
		insights = optional(ctx, o, QueryInsights, o.client.WorkoutInsights)
	}()
	wg.Wait()

	// A torn-down page discards its results instead of publishing a snapshot.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if statsErr != nil {
		return nil, statsErr
	}
	if progressErr != nil {
		return nil, progressErr
	}

	vm := &DashboardViewModel{
		GeneratedAt:        o.now(),
		Username:           stats.UserInfo.Username,
		MemberSince:        stats.UserInfo.MemberSince,
		TotalWorkouts:      stats.Totals.Workouts,
		TotalNutritionLogs: stats.Totals.NutritionLogs,
		WorkoutsLast7Days:  stats.RecentActivity.WorkoutsLast7Days,
		WorkoutProgress:    buildWorkoutSeries(progress.Workouts.DailyData),
		TypeDistribution:   buildDistribution(progress.Workouts.TypeDistribution),
	}
	if list, ok := insights.Get(); ok {
		vm.Insights = buildInsights(list)
	} else {
		vm.DegradedSources = append(vm.DegradedSources, QueryInsights)
	}
	return vm, nil
}

// AnalyticsViewModel is the analytics page snapshot.
type AnalyticsViewModel struct {
	GeneratedAt time.Time `json:"generated_at"`

	PeriodDays       int              `json:"period_days"`
	TotalWorkouts    int              `json:"total_workouts"`
	WorkoutSeries    *WorkoutSeries   `json:"workout_series,omitempty"`
	NutritionSeries  *NutritionSeries `json:"nutrition_series,omitempty"`
	TypeDistribution []TypeCount      `json:"type_distribution,omitempty"`

	AverageCalories float64 `json:"average_calories"`
	AverageProtein  float64 `json:"average_protein"`

	Prediction      *PredictionView      `json:"prediction,omitempty"`
	Recommendations *RecommendationsView `json:"recommendations,omitempty"`

	DegradedSources []string `json:"degraded_sources,omitempty"`
}

// LoadAnalytics assembles the analytics page. Progress is mandatory; the
// performance forecast and goal recommendations are optional ML sections.
// An empty workoutType or zero daysAhead falls back to the defaults.
func (o *Orchestrator) LoadAnalytics(ctx context.Context, workoutType string, daysAhead int) (*AnalyticsViewModel, error) {
	if workoutType == "" {
		workoutType = DefaultPredictionType
	}
	if daysAhead <= 0 {
		daysAhead = DefaultPredictionDays
	}

	var (
		wg sync.WaitGroup

		progress    *fitapi.Progress
		progressErr error

		prediction      Slot[*fitapi.PerformancePrediction]
		recommendations Slot[*fitapi.GoalRecommendations]
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		progress, progressErr = mandatory(ctx, o, QueryProgress, func(ctx context.Context) (*fitapi.Progress, error) {
			return o.client.Progress(ctx, DefaultProgressDays)
		})
	}()
	go func() {
		defer wg.Done()
		prediction = optional(ctx, o, QueryPredictPerformance, func(ctx context.Context) (*fitapi.PerformancePrediction, error) {
			return o.client.PredictPerformance(ctx, workoutType, daysAhead)
		})
	}()
	go func() {
		defer wg.Done()
		recommendations = optional(ctx, o, QueryRecommendGoals, o.client.RecommendGoals)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if progressErr != nil {
		return nil, progressErr
	}

	vm := &AnalyticsViewModel{
		GeneratedAt:      o.now(),
		PeriodDays:       progress.PeriodDays,
		TotalWorkouts:    progress.Workouts.TotalCount,
		WorkoutSeries:    buildWorkoutSeries(progress.Workouts.DailyData),
		NutritionSeries:  buildNutritionSeries(progress.Nutrition.DailyData),
		TypeDistribution: buildDistribution(progress.Workouts.TypeDistribution),
		AverageCalories:  progress.Nutrition.Averages.Calories,
		AverageProtein:   progress.Nutrition.Averages.Protein,
	}
	if p, ok := prediction.Get(); ok {
		vm.Prediction = buildPrediction(*p)
	} else {
		vm.DegradedSources = append(vm.DegradedSources, QueryPredictPerformance)
	}
	if recs, ok := recommendations.Get(); ok {
		vm.Recommendations = buildRecommendations(*recs)
	} else {
		vm.DegradedSources = append(vm.DegradedSources, QueryRecommendGoals)
	}
	return vm, nil
}

// WorkoutsViewModel is the workout log page snapshot.
type WorkoutsViewModel struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Workouts    []fitapi.Workout `json:"workouts"`
	Total       int              `json:"total"`
}

// LoadWorkouts assembles the workout log page.
func (o *Orchestrator) LoadWorkouts(ctx context.Context) (*WorkoutsViewModel, error) {
	workouts, err := mandatory(ctx, o, QueryWorkouts, o.client.ListWorkouts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &WorkoutsViewModel{
		GeneratedAt: o.now(),
		Workouts:    workouts,
		Total:       len(workouts),
	}, nil
}

// NutritionViewModel is the nutrition page snapshot. The summary cards come
// from the server-computed daily summary, never from re-summing the list.
type NutritionViewModel struct {
	GeneratedAt time.Time `json:"generated_at"`

	Logs []fitapi.NutritionLog `json:"logs"`

	SummaryDate fitapi.Date  `json:"summary_date"`
	Cards       SummaryCards `json:"cards"`
	MealCount   int          `json:"meal_count"`
}

// LoadNutrition assembles the nutrition page. The trailing-week log list and
// today's summary are both mandatory.
func (o *Orchestrator) LoadNutrition(ctx context.Context) (*NutritionViewModel, error) {
	var (
		wg sync.WaitGroup

		logs    []fitapi.NutritionLog
		logsErr error

		summary    *fitapi.DailySummary
		summaryErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		logs, logsErr = mandatory(ctx, o, QueryNutrition, func(ctx context.Context) ([]fitapi.NutritionLog, error) {
			return o.client.ListNutrition(ctx, DefaultNutritionDays)
		})
	}()
	go func() {
		defer wg.Done()
		summary, summaryErr = mandatory(ctx, o, QueryDailySummary, func(ctx context.Context) (*fitapi.DailySummary, error) {
			return o.client.DailySummary(ctx, nil)
		})
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if logsErr != nil {
		return nil, logsErr
	}
	if summaryErr != nil {
		return nil, summaryErr
	}

	return &NutritionViewModel{
		GeneratedAt: o.now(),
		Logs:        logs,
		SummaryDate: summary.Date,
		Cards:       NewSummaryCards(*summary),
		MealCount:   summary.MealCount,
	}, nil
}

// ProfileViewModel is the profile page snapshot. BodyMass is nil when either
// body measurement is missing; the page shows the measurements prompt instead.
type ProfileViewModel struct {
	GeneratedAt time.Time   `json:"generated_at"`
	User        fitapi.User `json:"user"`
	BodyMass    *BodyMass   `json:"body_mass,omitempty"`
}

// LoadProfile assembles the profile page with the derived body mass index.
func (o *Orchestrator) LoadProfile(ctx context.Context) (*ProfileViewModel, error) {
	user, err := mandatory(ctx, o, QueryProfile, o.client.CurrentUser)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &ProfileViewModel{
		GeneratedAt: o.now(),
		User:        *user,
		BodyMass:    BodyMassIndex(user.WeightKg, user.HeightCm),
	}, nil
}

// TrendsViewModel is the trend analysis snapshot for one metric.
type TrendsViewModel struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Metric      string              `json:"metric"`
	Trend       string              `json:"trend"`
	Points      []fitapi.TrendPoint `json:"points,omitempty"`
}

// LoadTrends assembles the trend analysis for one workout metric. The metric
// is validated locally so an unsupported one never reaches the upstream. Zero
// days falls back to the default window.
func (o *Orchestrator) LoadTrends(ctx context.Context, metric string, days int) (*TrendsViewModel, error) {
	if !trendMetrics[metric] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMetric, metric)
	}
	if days <= 0 {
		days = DefaultTrendDays
	}

	trends, err := mandatory(ctx, o, QueryTrends, func(ctx context.Context) (*fitapi.Trends, error) {
		return o.client.Trends(ctx, metric, days)
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &TrendsViewModel{
		GeneratedAt: o.now(),
		Metric:      trends.Metric,
		Trend:       trends.Trend,
		Points:      trends.Data,
	}, nil
}
