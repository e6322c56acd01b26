// Package mutation coordinates writes against the upstream fitness API:
// local validation before any network call, explicit confirmation for
// destructive actions, predict-assist prefill for drafts, and a refresh
// signal after every successful write so page data is refetched from the
// source of truth instead of patched locally.
package mutation

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/fitsight/fitsight/internal/fitapi"
)

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validation error codes.
const (
	CodeRequired = "REQUIRED"
	CodeInvalid  = "INVALID"
)

// ValidationError rejects a draft before any network call is made.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid draft: %d invalid field(s)", len(e.Fields))
}

var workoutTypes = map[string]bool{
	fitapi.WorkoutStrength:    true,
	fitapi.WorkoutCardio:      true,
	fitapi.WorkoutFlexibility: true,
	fitapi.WorkoutSports:      true,
}

var mealTypes = map[string]bool{
	fitapi.MealBreakfast: true,
	fitapi.MealLunch:     true,
	fitapi.MealDinner:    true,
	fitapi.MealSnack:     true,
}

// WorkoutDraft is a workout create form as entered. Numeric fields are kept
// as the raw strings the user typed; validation parses them and an empty
// string means "not provided", which becomes an explicit null upstream.
type WorkoutDraft struct {
	Name           string    `json:"name"`
	WorkoutType    string    `json:"workout_type"`
	Duration       string    `json:"duration"`
	CaloriesBurned string    `json:"calories_burned"`
	Notes          string    `json:"notes"`
	LogDate        time.Time `json:"log_date"`
}

// Validate checks the draft without touching the network.
func (d *WorkoutDraft) Validate() []FieldError {
	var errors []FieldError

	if d.Name == "" {
		errors = append(errors, FieldError{
			Field:   "name",
			Message: "name is required",
			Code:    CodeRequired,
		})
	}
	if !workoutTypes[d.WorkoutType] {
		errors = append(errors, FieldError{
			Field:   "workout_type",
			Message: "unknown workout type",
			Code:    CodeInvalid,
		})
	}
	if d.Duration != "" {
		if v, err := strconv.Atoi(d.Duration); err != nil || v <= 0 {
			errors = append(errors, FieldError{
				Field:   "duration",
				Message: "duration must be a positive whole number of minutes",
				Code:    CodeInvalid,
			})
		}
	}
	if d.CaloriesBurned != "" {
		if _, ok := parseMeasure(d.CaloriesBurned); !ok {
			errors = append(errors, FieldError{
				Field:   "calories_burned",
				Message: "calories burned must be a non-negative number",
				Code:    CodeInvalid,
			})
		}
	}

	return errors
}

// toCreate converts a validated draft to the upstream payload. Empty optional
// fields stay nil; a zero log date defaults to now.
func (d *WorkoutDraft) toCreate(now time.Time) fitapi.WorkoutCreate {
	create := fitapi.WorkoutCreate{
		Name:        d.Name,
		WorkoutType: d.WorkoutType,
		LogDate:     d.LogDate,
	}
	if create.LogDate.IsZero() {
		create.LogDate = now
	}
	if d.Duration != "" {
		v, _ := strconv.Atoi(d.Duration)
		create.DurationMinutes = &v
	}
	if d.CaloriesBurned != "" {
		v, _ := parseMeasure(d.CaloriesBurned)
		create.CaloriesBurned = &v
	}
	if d.Notes != "" {
		create.Notes = &d.Notes
	}
	return create
}

// NutritionDraft is a nutrition log create form as entered.
type NutritionDraft struct {
	MealType    string    `json:"meal_type"`
	FoodName    string    `json:"food_name"`
	Calories    string    `json:"calories"`
	Protein     string    `json:"protein"`
	Carbs       string    `json:"carbs"`
	Fats        string    `json:"fats"`
	ServingSize string    `json:"serving_size"`
	LogDate     time.Time `json:"log_date"`
}

// Validate checks the draft without touching the network. Calories is the one
// required measure; macros are optional but must parse when provided.
func (d *NutritionDraft) Validate() []FieldError {
	var errors []FieldError

	if !mealTypes[d.MealType] {
		errors = append(errors, FieldError{
			Field:   "meal_type",
			Message: "unknown meal type",
			Code:    CodeInvalid,
		})
	}
	if d.FoodName == "" {
		errors = append(errors, FieldError{
			Field:   "food_name",
			Message: "food name is required",
			Code:    CodeRequired,
		})
	}
	if d.Calories == "" {
		errors = append(errors, FieldError{
			Field:   "calories",
			Message: "calories is required",
			Code:    CodeRequired,
		})
	} else if v, ok := parseMeasure(d.Calories); !ok || v <= 0 {
		errors = append(errors, FieldError{
			Field:   "calories",
			Message: "calories must be a positive number",
			Code:    CodeInvalid,
		})
	}
	for _, macro := range []struct {
		field string
		value string
	}{
		{"protein", d.Protein},
		{"carbs", d.Carbs},
		{"fats", d.Fats},
	} {
		if macro.value == "" {
			continue
		}
		if _, ok := parseMeasure(macro.value); !ok {
			errors = append(errors, FieldError{
				Field:   macro.field,
				Message: macro.field + " must be a non-negative number",
				Code:    CodeInvalid,
			})
		}
	}

	return errors
}

// toCreate converts a validated draft to the upstream payload.
func (d *NutritionDraft) toCreate(now time.Time) fitapi.NutritionLogCreate {
	calories, _ := parseMeasure(d.Calories)
	create := fitapi.NutritionLogCreate{
		MealType: d.MealType,
		FoodName: d.FoodName,
		Calories: calories,
		LogDate:  d.LogDate,
	}
	if create.LogDate.IsZero() {
		create.LogDate = now
	}
	create.Protein = optionalMeasure(d.Protein)
	create.Carbs = optionalMeasure(d.Carbs)
	create.Fats = optionalMeasure(d.Fats)
	if d.ServingSize != "" {
		create.ServingSize = &d.ServingSize
	}
	return create
}

// parseMeasure parses a non-negative finite measure. strconv accepts "NaN"
// and "Inf" spellings, so those are rejected here.
func parseMeasure(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

func optionalMeasure(s string) *float64 {
	if s == "" {
		return nil
	}
	v, _ := parseMeasure(s)
	return &v
}

// formatMeasure renders a predicted measure back into draft form.
func formatMeasure(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
