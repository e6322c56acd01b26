package dashboard

import (
	"math"

	"github.com/fitsight/fitsight/internal/fitapi"
)

// BMI category labels, in display form.
const (
	CategoryUnderweight = "Underweight"
	CategoryNormal      = "Normal weight"
	CategoryOverweight  = "Overweight"
	CategoryObese       = "Obese"
)

// BodyMass is the derived BMI with its display category.
type BodyMass struct {
	// Value is kg/m² rounded to one decimal for display.
	Value float64 `json:"value"`

	// Category is the label for the unrounded index.
	Category string `json:"category"`
}

// BodyMassIndex derives BMI from weight in kilograms and height in
// centimetres. It is undefined (nil) when either measurement is absent or not
// positive; absence is never treated as zero.
func BodyMassIndex(weightKg, heightCm *float64) *BodyMass {
	if weightKg == nil || heightCm == nil {
		return nil
	}
	if *weightKg <= 0 || *heightCm <= 0 {
		return nil
	}

	heightM := *heightCm / 100
	bmi := *weightKg / (heightM * heightM)

	return &BodyMass{
		Value:    round1(bmi),
		Category: bmiCategory(bmi),
	}
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// GoalDirection is the explicit direction of a recommendation relative to the
// current average. It is derived from the numbers, never inferred from the
// goal type's name.
type GoalDirection string

// Goal directions.
const (
	DirectionIncrease GoalDirection = "increase"
	DirectionDecrease GoalDirection = "decrease"
	DirectionMaintain GoalDirection = "maintain"
)

// RecommendationDirection derives the goal direction from the recommended
// target and the current average.
func RecommendationDirection(currentAverage, recommendedTarget float64) GoalDirection {
	const epsilon = 1e-9
	switch {
	case recommendedTarget > currentAverage+epsilon:
		return DirectionIncrease
	case recommendedTarget < currentAverage-epsilon:
		return DirectionDecrease
	default:
		return DirectionMaintain
	}
}

// DisplayPercent converts a model confidence fraction in [0,1] to a
// percentage rounded to one decimal.
func DisplayPercent(score float64) float64 {
	return round1(score * 100)
}

// RoundWhole rounds a macro or calorie value to the nearest integer for card
// display. Stored values keep full precision; only the display copy rounds.
func RoundWhole(v float64) int {
	return int(math.Round(v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// SummaryCards are the integer-rounded daily nutrition totals shown on the
// nutrition page cards.
type SummaryCards struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
}

// NewSummaryCards derives display cards from the server-computed daily
// summary.
func NewSummaryCards(summary fitapi.DailySummary) SummaryCards {
	return SummaryCards{
		Calories: RoundWhole(summary.TotalCalories),
		Protein:  RoundWhole(summary.TotalProtein),
		Carbs:    RoundWhole(summary.TotalCarbs),
		Fats:     RoundWhole(summary.TotalFats),
	}
}
