package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsight/fitsight/internal/fitapi"
)

func TestBuildWorkoutSeries_SortsAscendingByDate(t *testing.T) {
	days := []fitapi.WorkoutDay{
		{Date: fitapi.NewDate(2026, time.August, 22), Duration: ptr(20.0)},
		{Date: fitapi.NewDate(2026, time.August, 20), Duration: ptr(45.0)},
		{Date: fitapi.NewDate(2026, time.August, 21), Duration: ptr(30.0)},
	}

	series := buildWorkoutSeries(days)
	require.NotNil(t, series)
	require.Len(t, series.Points, 3)

	assert.Equal(t, fitapi.NewDate(2026, time.August, 20), series.Points[0].Date)
	assert.Equal(t, fitapi.NewDate(2026, time.August, 21), series.Points[1].Date)
	assert.Equal(t, fitapi.NewDate(2026, time.August, 22), series.Points[2].Date)
}

func TestBuildWorkoutSeries_MergesDuplicateDates(t *testing.T) {
	day := fitapi.NewDate(2026, time.August, 20)
	days := []fitapi.WorkoutDay{
		{Date: day, Duration: ptr(30.0), CaloriesBurned: ptr(200.0)},
		{Date: day, Duration: ptr(15.0), CaloriesBurned: nil},
	}

	series := buildWorkoutSeries(days)
	require.NotNil(t, series)
	require.Len(t, series.Points, 1)

	point := series.Points[0]
	require.NotNil(t, point.DurationMinutes)
	assert.InDelta(t, 45.0, *point.DurationMinutes, 1e-9)
	require.NotNil(t, point.CaloriesBurned)
	assert.InDelta(t, 200.0, *point.CaloriesBurned, 1e-9)
}

func TestBuildWorkoutSeries_AbsentStaysAbsent(t *testing.T) {
	day := fitapi.NewDate(2026, time.August, 20)
	days := []fitapi.WorkoutDay{
		{Date: day, Duration: nil, CaloriesBurned: nil},
		{Date: day, Duration: nil, CaloriesBurned: nil},
	}

	series := buildWorkoutSeries(days)
	require.NotNil(t, series)
	require.Len(t, series.Points, 1)

	// Two absent measures merge to absent, never to zero.
	assert.Nil(t, series.Points[0].DurationMinutes)
	assert.Nil(t, series.Points[0].CaloriesBurned)
}

func TestBuildWorkoutSeries_EmptyIsNoData(t *testing.T) {
	assert.Nil(t, buildWorkoutSeries(nil))
	assert.Nil(t, buildWorkoutSeries([]fitapi.WorkoutDay{}))
}

func TestBuildNutritionSeries_MergesAndSorts(t *testing.T) {
	d20 := fitapi.NewDate(2026, time.August, 20)
	d21 := fitapi.NewDate(2026, time.August, 21)
	days := []fitapi.NutritionDay{
		{Date: d21, Calories: ptr(600.0), Protein: ptr(30.0)},
		{Date: d20, Calories: ptr(2100.0)},
		{Date: d21, Calories: ptr(450.0), Fats: ptr(12.0)},
	}

	series := buildNutritionSeries(days)
	require.NotNil(t, series)
	require.Len(t, series.Points, 2)

	assert.Equal(t, d20, series.Points[0].Date)
	assert.Equal(t, d21, series.Points[1].Date)

	merged := series.Points[1]
	require.NotNil(t, merged.Calories)
	assert.InDelta(t, 1050.0, *merged.Calories, 1e-9)
	require.NotNil(t, merged.Protein)
	assert.InDelta(t, 30.0, *merged.Protein, 1e-9)
	require.NotNil(t, merged.Fats)
	assert.InDelta(t, 12.0, *merged.Fats, 1e-9)
	assert.Nil(t, merged.Carbs)
}

func TestBuildDistribution_DeterministicOrder(t *testing.T) {
	counts := map[string]int{
		"cardio":      3,
		"strength":    5,
		"flexibility": 3,
		"sports":      1,
	}

	got := buildDistribution(counts)
	want := []TypeCount{
		{Type: "strength", Count: 5},
		{Type: "cardio", Count: 3},
		{Type: "flexibility", Count: 3},
		{Type: "sports", Count: 1},
	}
	assert.Equal(t, want, got)

	// Total is preserved through the conversion.
	sum := 0
	for _, tc := range got {
		sum += tc.Count
	}
	assert.Equal(t, 12, sum)
}

func TestBuildDistribution_EmptyIsNil(t *testing.T) {
	assert.Nil(t, buildDistribution(nil))
	assert.Nil(t, buildDistribution(map[string]int{}))
}

func TestBuildPrediction_ConvertsScoresToPercent(t *testing.T) {
	view := buildPrediction(fitapi.PerformancePrediction{
		WorkoutType:        "strength",
		HistoricalWorkouts: 12,
		Predictions: []fitapi.PredictedDay{
			{Day: 1, PredictedDuration: 42.5, PredictedCalories: 310},
		},
		ModelInfo: fitapi.ModelInfo{DurationScore: 0.857, CaloriesScore: 0.715},
	})

	require.NotNil(t, view)
	assert.InDelta(t, 85.7, view.DurationScorePercent, 1e-9)
	assert.InDelta(t, 71.5, view.CaloriesScorePercent, 1e-9)
	assert.Len(t, view.Points, 1)
}

func TestBuildRecommendations_DerivesDirectionNumerically(t *testing.T) {
	view := buildRecommendations(fitapi.GoalRecommendations{
		PeriodAnalyzed: "last_30_days",
		TotalWorkouts:  9,
		Recommendations: []fitapi.Recommendation{
			// goal_type suggests increase but the numbers say decrease
			{GoalType: "increase_calories", CurrentAverage: 2400, RecommendedTarget: 2100, Unit: "kcal", Rationale: "trim intake"},
			{GoalType: "weekly_workouts", CurrentAverage: 2.1, RecommendedTarget: 3, Unit: "sessions", Rationale: "build consistency"},
			{GoalType: "duration", CurrentAverage: 45, RecommendedTarget: 45, Unit: "minutes", Rationale: "hold steady"},
		},
	})

	require.NotNil(t, view)
	require.Len(t, view.Cards, 3)

	assert.Equal(t, DirectionDecrease, view.Cards[0].Direction)
	assert.Equal(t, DirectionIncrease, view.Cards[1].Direction)
	assert.Equal(t, DirectionMaintain, view.Cards[2].Direction)

	// Rationale is carried verbatim.
	assert.Equal(t, "trim intake", view.Cards[0].Rationale)
}

func TestBuildRecommendations_EmptyIsNil(t *testing.T) {
	assert.Nil(t, buildRecommendations(fitapi.GoalRecommendations{PeriodAnalyzed: "last_30_days"}))
}

func TestBuildInsights(t *testing.T) {
	assert.Nil(t, buildInsights(nil))

	cards := buildInsights([]fitapi.Insight{
		{Type: "consistency", Message: "You worked out 4 days in a row", Data: map[string]any{"streak": 4.0}},
	})
	require.Len(t, cards, 1)
	assert.Equal(t, "consistency", cards[0].Type)
}

func TestAddOptional(t *testing.T) {
	assert.Nil(t, addOptional(nil, nil))

	got := addOptional(nil, ptr(5.0))
	require.NotNil(t, got)
	assert.InDelta(t, 5.0, *got, 1e-9)

	got = addOptional(ptr(2.0), ptr(3.0))
	require.NotNil(t, got)
	assert.InDelta(t, 5.0, *got, 1e-9)

	got = addOptional(ptr(2.0), nil)
	require.NotNil(t, got)
	assert.InDelta(t, 2.0, *got, 1e-9)
}
