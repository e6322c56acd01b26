package fitapi

import (
	"context"
)

// ListWorkouts fetches the user's workouts, newest first.
func (c *Client) ListWorkouts(ctx context.Context) ([]Workout, error) {
	var workouts []Workout
	if err := c.get(ctx, ResourceWorkouts, "/workouts", nil, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// GetWorkout fetches a single workout by id.
func (c *Client) GetWorkout(ctx context.Context, id string) (*Workout, error) {
	var workout Workout
	if err := c.get(ctx, ResourceWorkouts, "/workouts/"+id, nil, &workout); err != nil {
		return nil, err
	}
	return &workout, nil
}

// CreateWorkout creates a workout and returns the stored entity.
func (c *Client) CreateWorkout(ctx context.Context, create WorkoutCreate) (*Workout, error) {
	var workout Workout
	if err := c.postJSON(ctx, ResourceWorkouts, "/workouts", true, create, &workout); err != nil {
		return nil, err
	}
	return &workout, nil
}

// DeleteWorkout deletes a workout by id. Returns ErrNotFound if the id does
// not exist.
func (c *Client) DeleteWorkout(ctx context.Context, id string) error {
	return c.delete(ctx, ResourceWorkouts, "/workouts/"+id)
}
