package dashboard

import (
	"sort"
	"time"

	"github.com/fitsight/fitsight/internal/fitapi"
)

// WorkoutSeries is the chart-ready daily workout series: points ascending by
// date, no duplicate dates. A nil WorkoutSeries is the explicit no-data
// marker: loading succeeded but there is nothing to chart, which is a
// different state from "source not loaded".
type WorkoutSeries struct {
	Points []WorkoutPoint `json:"points"`
}

// WorkoutPoint is one charted day. Absent measures stay nil: a day without a
// recorded duration is not a day of zero minutes.
type WorkoutPoint struct {
	Date            fitapi.Date `json:"date"`
	DurationMinutes *float64    `json:"duration,omitempty"`
	CaloriesBurned  *float64    `json:"calories_burned,omitempty"`
}

// NutritionSeries is the chart-ready daily nutrition series, same ordering
// and no-data rules as WorkoutSeries.
type NutritionSeries struct {
	Points []NutritionPoint `json:"points"`
}

// NutritionPoint is one charted day of nutrition measures.
type NutritionPoint struct {
	Date     fitapi.Date `json:"date"`
	Calories *float64    `json:"calories,omitempty"`
	Protein  *float64    `json:"protein,omitempty"`
	Carbs    *float64    `json:"carbs,omitempty"`
	Fats     *float64    `json:"fats,omitempty"`
}

// TypeCount is one bar of the workout type distribution.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// buildWorkoutSeries normalizes the server's daily workout data: sorts
// ascending by date and merges duplicate dates by summing whichever measures
// are present. Returns nil for an empty input.
func buildWorkoutSeries(days []fitapi.WorkoutDay) *WorkoutSeries {
	if len(days) == 0 {
		return nil
	}

	merged := make(map[time.Time]*WorkoutPoint, len(days))
	for _, d := range days {
		key := d.Date.Time
		p, ok := merged[key]
		if !ok {
			p = &WorkoutPoint{Date: d.Date}
			merged[key] = p
		}
		p.DurationMinutes = addOptional(p.DurationMinutes, d.Duration)
		p.CaloriesBurned = addOptional(p.CaloriesBurned, d.CaloriesBurned)
	}

	points := make([]WorkoutPoint, 0, len(merged))
	for _, p := range merged {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date.Time)
	})

	return &WorkoutSeries{Points: points}
}

// buildNutritionSeries normalizes the server's daily nutrition data with the
// same rules as buildWorkoutSeries.
func buildNutritionSeries(days []fitapi.NutritionDay) *NutritionSeries {
	if len(days) == 0 {
		return nil
	}

	merged := make(map[time.Time]*NutritionPoint, len(days))
	for _, d := range days {
		key := d.Date.Time
		p, ok := merged[key]
		if !ok {
			p = &NutritionPoint{Date: d.Date}
			merged[key] = p
		}
		p.Calories = addOptional(p.Calories, d.Calories)
		p.Protein = addOptional(p.Protein, d.Protein)
		p.Carbs = addOptional(p.Carbs, d.Carbs)
		p.Fats = addOptional(p.Fats, d.Fats)
	}

	points := make([]NutritionPoint, 0, len(merged))
	for _, p := range merged {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date.Time)
	})

	return &NutritionSeries{Points: points}
}

// buildDistribution converts the label->count mapping to a deterministically
// ordered slice: descending count, ties broken by label. Returns nil for an
// empty mapping.
func buildDistribution(counts map[string]int) []TypeCount {
	if len(counts) == 0 {
		return nil
	}

	distribution := make([]TypeCount, 0, len(counts))
	for label, count := range counts {
		distribution = append(distribution, TypeCount{Type: label, Count: count})
	}
	sort.Slice(distribution, func(i, j int) bool {
		if distribution[i].Count != distribution[j].Count {
			return distribution[i].Count > distribution[j].Count
		}
		return distribution[i].Type < distribution[j].Type
	})

	return distribution
}

// addOptional sums two optional measures. Absent plus absent stays absent;
// zero is a recorded value, not a default.
func addOptional(a, b *float64) *float64 {
	if b == nil {
		return a
	}
	if a == nil {
		v := *b
		return &v
	}
	sum := *a + *b
	return &sum
}

// InsightCard is one ML insight ready for display.
type InsightCard struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// buildInsights converts upstream insights to cards. Returns nil when there
// are none so the section is omitted.
func buildInsights(insights []fitapi.Insight) []InsightCard {
	if len(insights) == 0 {
		return nil
	}

	cards := make([]InsightCard, 0, len(insights))
	for _, in := range insights {
		cards = append(cards, InsightCard{
			Type:    in.Type,
			Message: in.Message,
			Data:    in.Data,
		})
	}
	return cards
}

// PredictionView is the ML performance forecast ready for display, with
// confidence scores converted to one-decimal percentages.
type PredictionView struct {
	WorkoutType          string                `json:"workout_type"`
	HistoricalWorkouts   int                   `json:"historical_workouts"`
	Points               []fitapi.PredictedDay `json:"points"`
	DurationScorePercent float64               `json:"duration_score_percent"`
	CaloriesScorePercent float64               `json:"calories_score_percent"`
}

func buildPrediction(p fitapi.PerformancePrediction) *PredictionView {
	return &PredictionView{
		WorkoutType:          p.WorkoutType,
		HistoricalWorkouts:   p.HistoricalWorkouts,
		Points:               p.Predictions,
		DurationScorePercent: DisplayPercent(p.ModelInfo.DurationScore),
		CaloriesScorePercent: DisplayPercent(p.ModelInfo.CaloriesScore),
	}
}

// RecommendationCard is one recommended goal ready for display. Rationale is
// carried verbatim from the model; the card never re-derives it.
type RecommendationCard struct {
	GoalType          string        `json:"goal_type"`
	CurrentAverage    float64       `json:"current_average"`
	RecommendedTarget float64       `json:"recommended_target"`
	Unit              string        `json:"unit"`
	Rationale         string        `json:"rationale"`
	Direction         GoalDirection `json:"direction"`
}

// RecommendationsView is the goal recommendation section.
type RecommendationsView struct {
	PeriodAnalyzed string               `json:"period_analyzed"`
	TotalWorkouts  int                  `json:"total_workouts"`
	Cards          []RecommendationCard `json:"cards"`
}

// buildRecommendations converts the upstream recommendation set. Returns nil
// when the model produced no recommendations so the section is omitted.
func buildRecommendations(recs fitapi.GoalRecommendations) *RecommendationsView {
	if len(recs.Recommendations) == 0 {
		return nil
	}

	cards := make([]RecommendationCard, 0, len(recs.Recommendations))
	for _, rec := range recs.Recommendations {
		cards = append(cards, RecommendationCard{
			GoalType:          rec.GoalType,
			CurrentAverage:    rec.CurrentAverage,
			RecommendedTarget: rec.RecommendedTarget,
			Unit:              rec.Unit,
			Rationale:         rec.Rationale,
			Direction:         RecommendationDirection(rec.CurrentAverage, rec.RecommendedTarget),
		})
	}

	return &RecommendationsView{
		PeriodAnalyzed: recs.PeriodAnalyzed,
		TotalWorkouts:  recs.TotalWorkouts,
		Cards:          cards,
	}
}
