package mutation

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitsight/fitsight/internal/fitapi"
)

// ErrNotConfirmed rejects a destructive action that was not explicitly
// confirmed. No network call is made.
var ErrNotConfirmed = errors.New("destructive action not confirmed")

// Refresh scopes passed to the Refresher after a successful write.
const (
	ScopeWorkouts  = "workouts"
	ScopeNutrition = "nutrition"
)

// Refresher is notified after each successful mutation. Implementations
// refetch the affected page data from the upstream; view-models are never
// patched locally with the write's payload.
type Refresher interface {
	Refresh(ctx context.Context, scope string) error
}

// RefresherFunc adapts a function to the Refresher interface.
type RefresherFunc func(ctx context.Context, scope string) error

// Refresh implements Refresher.
func (f RefresherFunc) Refresh(ctx context.Context, scope string) error {
	return f(ctx, scope)
}

// Config holds configuration for the coordinator.
type Config struct {
	// Client is the upstream fitness API client.
	Client *fitapi.Client

	// Logger for mutation events.
	Logger zerolog.Logger

	// Refresher receives the post-write refresh signal. Optional.
	Refresher Refresher
}

// Coordinator owns the write path: validate, send, signal refresh.
type Coordinator struct {
	client    *fitapi.Client
	logger    zerolog.Logger
	refresher Refresher

	// now is overridable in tests.
	now func() time.Time
}

// New creates a new coordinator.
func New(cfg Config) *Coordinator {
	return &Coordinator{
		client:    cfg.Client,
		logger:    cfg.Logger,
		refresher: cfg.Refresher,
		now:       time.Now,
	}
}

// CreateWorkout validates the draft and creates the workout upstream. An
// invalid draft fails with a ValidationError before any network call.
func (c *Coordinator) CreateWorkout(ctx context.Context, draft WorkoutDraft) (*fitapi.Workout, error) {
	if fields := draft.Validate(); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	workout, err := c.client.CreateWorkout(ctx, draft.toCreate(c.now()))
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("workout_id", workout.ID).
		Str("workout_type", workout.WorkoutType).
		Msg("workout created")
	c.refresh(ctx, ScopeWorkouts)
	return workout, nil
}

// DeleteWorkout deletes a workout upstream. Without explicit confirmation it
// fails with ErrNotConfirmed and makes no network call.
func (c *Coordinator) DeleteWorkout(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := c.client.DeleteWorkout(ctx, id); err != nil {
		return err
	}

	c.logger.Info().Str("workout_id", id).Msg("workout deleted")
	c.refresh(ctx, ScopeWorkouts)
	return nil
}

// CreateNutritionLog validates the draft and creates the nutrition log
// upstream.
func (c *Coordinator) CreateNutritionLog(ctx context.Context, draft NutritionDraft) (*fitapi.NutritionLog, error) {
	if fields := draft.Validate(); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	log, err := c.client.CreateNutritionLog(ctx, draft.toCreate(c.now()))
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("nutrition_log_id", log.ID).
		Str("meal_type", log.MealType).
		Msg("nutrition log created")
	c.refresh(ctx, ScopeNutrition)
	return log, nil
}

// DeleteNutritionLog deletes a nutrition log upstream, with the same
// confirmation rule as DeleteWorkout.
func (c *Coordinator) DeleteNutritionLog(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := c.client.DeleteNutritionLog(ctx, id); err != nil {
		return err
	}

	c.logger.Info().Str("nutrition_log_id", id).Msg("nutrition log deleted")
	c.refresh(ctx, ScopeNutrition)
	return nil
}

// PrefillNutrition asks the prediction assist to estimate measures for the
// draft's food name and fills only the fields the estimate provided, leaving
// the user's own entries untouched. A failed or empty estimate returns the
// draft unchanged; prefill never blocks a submission.
func (c *Coordinator) PrefillNutrition(ctx context.Context, draft NutritionDraft) NutritionDraft {
	if draft.FoodName == "" {
		return draft
	}

	estimate, err := c.client.PredictNutrition(ctx, draft.FoodName)
	if err != nil {
		c.logger.Warn().Err(err).Str("query", draft.FoodName).Msg("nutrition prefill unavailable")
		return draft
	}

	if draft.Calories == "" && estimate.Calories != nil {
		draft.Calories = formatMeasure(*estimate.Calories)
	}
	if draft.Protein == "" && estimate.Protein != nil {
		draft.Protein = formatMeasure(*estimate.Protein)
	}
	if draft.Carbs == "" && estimate.Carbs != nil {
		draft.Carbs = formatMeasure(*estimate.Carbs)
	}
	if draft.Fats == "" && estimate.Fats != nil {
		draft.Fats = formatMeasure(*estimate.Fats)
	}
	if draft.ServingSize == "" && estimate.ServingSize != nil {
		draft.ServingSize = *estimate.ServingSize
	}
	return draft
}

// PrefillWorkout estimates calories burned from the draft's activity and
// duration, with the same merge and failure rules as PrefillNutrition. It
// needs a parseable duration to have anything to ask about.
func (c *Coordinator) PrefillWorkout(ctx context.Context, draft WorkoutDraft) WorkoutDraft {
	if draft.Name == "" || draft.CaloriesBurned != "" {
		return draft
	}
	minutes, err := strconv.Atoi(draft.Duration)
	if err != nil || minutes <= 0 {
		return draft
	}

	estimate, err := c.client.PredictWorkout(ctx, draft.Name, minutes)
	if err != nil {
		c.logger.Warn().Err(err).Str("activity", draft.Name).Msg("workout prefill unavailable")
		return draft
	}
	if estimate.CaloriesBurned != nil {
		draft.CaloriesBurned = formatMeasure(*estimate.CaloriesBurned)
	}
	return draft
}

// refresh signals the refresher after a successful write. A refresh failure
// is logged, not surfaced: the write itself already succeeded.
func (c *Coordinator) refresh(ctx context.Context, scope string) {
	if c.refresher == nil {
		return
	}
	if err := c.refresher.Refresh(ctx, scope); err != nil {
		c.logger.Warn().Err(err).Str("scope", scope).Msg("post-mutation refresh failed")
	}
}
