package fitapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// mlEnvelope covers the two shapes the ML endpoints answer with: a payload,
// or a 200 response carrying an error/message marker when there is not enough
// history to run the model.
type mlEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PredictPerformance fetches the ML performance forecast for one workout
// type. Returns ErrInsufficientData when the upstream has too little history
// for that type; callers treat it like any other optional-source failure.
func (c *Client) PredictPerformance(ctx context.Context, workoutType string, daysAhead int) (*PerformancePrediction, error) {
	query := url.Values{
		"workout_type": []string{workoutType},
		"days_ahead":   []string{strconv.Itoa(daysAhead)},
	}

	var raw json.RawMessage
	if err := c.get(ctx, ResourceML, "/ml/predict-performance", query, &raw); err != nil {
		return nil, err
	}

	var envelope mlEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrInsufficientData, envelope.Error)
	}

	var prediction PerformancePrediction
	if err := json.Unmarshal(raw, &prediction); err != nil {
		return nil, fmt.Errorf("decoding prediction: %w", err)
	}
	return &prediction, nil
}

// RecommendGoals fetches the ML goal recommendations. An account without
// recent workouts yields an empty recommendation list, not an error.
func (c *Client) RecommendGoals(ctx context.Context) (*GoalRecommendations, error) {
	var recs GoalRecommendations
	if err := c.get(ctx, ResourceML, "/ml/recommend-goals", nil, &recs); err != nil {
		return nil, err
	}
	return &recs, nil
}

// WorkoutInsights fetches the ML workout insights. An account with too little
// history answers with a bare message; that maps to an empty insight list.
func (c *Client) WorkoutInsights(ctx context.Context) ([]Insight, error) {
	var body struct {
		Insights []Insight `json:"insights"`
		Message  string    `json:"message"`
	}
	if err := c.get(ctx, ResourceML, "/ml/workout-insights", nil, &body); err != nil {
		return nil, err
	}
	return body.Insights, nil
}
