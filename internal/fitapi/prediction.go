package fitapi

import (
	"context"
)

// nutritionPredictionRequest is the predict-assist request for a food query.
type nutritionPredictionRequest struct {
	Query string `json:"query"`
}

// workoutPredictionRequest is the predict-assist request for an activity.
type workoutPredictionRequest struct {
	Activity string `json:"activity"`
	Duration int    `json:"duration"`
}

// PredictNutrition estimates macros for a free-text food description.
func (c *Client) PredictNutrition(ctx context.Context, query string) (*NutritionEstimate, error) {
	var estimate NutritionEstimate
	err := c.postJSON(ctx, ResourcePrediction, "/prediction/nutrition", true,
		nutritionPredictionRequest{Query: query}, &estimate)
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}

// PredictWorkout estimates calories burned for an activity and duration in
// minutes.
func (c *Client) PredictWorkout(ctx context.Context, activity string, durationMinutes int) (*WorkoutEstimate, error) {
	var estimate WorkoutEstimate
	err := c.postJSON(ctx, ResourcePrediction, "/prediction/workout", true,
		workoutPredictionRequest{Activity: activity, Duration: durationMinutes}, &estimate)
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}
