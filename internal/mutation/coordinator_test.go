package mutation_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsight/fitsight/internal/fitapi"
	"github.com/fitsight/fitsight/internal/mutation"
)

type staticToken string

func (s staticToken) Token(_ context.Context) (string, error) {
	return string(s), nil
}

// recordingRefresher captures the scopes it was asked to refresh.
type recordingRefresher struct {
	scopes []string
	err    error
}

func (r *recordingRefresher) Refresh(_ context.Context, scope string) error {
	r.scopes = append(r.scopes, scope)
	return r.err
}

func newCoordinator(t *testing.T, handler http.Handler, refresher mutation.Refresher) (*mutation.Coordinator, *atomic.Int32) {
	t.Helper()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	client := fitapi.NewClient(fitapi.ClientConfig{
		BaseURL:     server.URL,
		TokenSource: staticToken("test-token"),
		Logger:      zerolog.Nop(),
	})
	return mutation.New(mutation.Config{
		Client:    client,
		Logger:    zerolog.Nop(),
		Refresher: refresher,
	}), &requests
}

func TestCreateWorkout_InvalidDraftMakesNoNetworkCall(t *testing.T) {
	coordinator, requests := newCoordinator(t, http.NotFoundHandler(), nil)

	_, err := coordinator.CreateWorkout(context.Background(), mutation.WorkoutDraft{
		Name:        "Run",
		WorkoutType: fitapi.WorkoutCardio,
		Duration:    "abc",
	})
	require.Error(t, err)

	var valErr *mutation.ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Len(t, valErr.Fields, 1)
	assert.Equal(t, "duration", valErr.Fields[0].Field)
	assert.Equal(t, mutation.CodeInvalid, valErr.Fields[0].Code)

	assert.Zero(t, requests.Load(), "invalid draft must not reach the upstream")
}

func TestCreateWorkout_SignalsRefresh(t *testing.T) {
	refresher := &recordingRefresher{}
	coordinator, _ := newCoordinator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/workouts", r.URL.Path)

		var create fitapi.WorkoutCreate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&create))
		assert.Equal(t, "Lifting", create.Name)
		require.NotNil(t, create.DurationMinutes)
		assert.Equal(t, 45, *create.DurationMinutes)
		assert.False(t, create.LogDate.IsZero())

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(fitapi.Workout{ID: "workout-1", Name: create.Name, WorkoutType: create.WorkoutType})
	}), refresher)

	workout, err := coordinator.CreateWorkout(context.Background(), mutation.WorkoutDraft{
		Name:        "Lifting",
		WorkoutType: fitapi.WorkoutStrength,
		Duration:    "45",
	})
	require.NoError(t, err)
	assert.Equal(t, "workout-1", workout.ID)
	assert.Equal(t, []string{mutation.ScopeWorkouts}, refresher.scopes)
}

func TestCreateWorkout_UpstreamFailureSkipsRefresh(t *testing.T) {
	refresher := &recordingRefresher{}
	coordinator, _ := newCoordinator(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "write failed"})
	}), refresher)

	_, err := coordinator.CreateWorkout(context.Background(), mutation.WorkoutDraft{
		Name:        "Run",
		WorkoutType: fitapi.WorkoutCardio,
	})
	require.Error(t, err)
	assert.Empty(t, refresher.scopes)
}

func TestDeleteWorkout_RequiresConfirmation(t *testing.T) {
	refresher := &recordingRefresher{}
	coordinator, requests := newCoordinator(t, http.NotFoundHandler(), refresher)

	err := coordinator.DeleteWorkout(context.Background(), "workout-1", false)
	assert.ErrorIs(t, err, mutation.ErrNotConfirmed)
	assert.Zero(t, requests.Load(), "unconfirmed delete must not reach the upstream")
	assert.Empty(t, refresher.scopes)
}

func TestDeleteWorkout_Confirmed(t *testing.T) {
	refresher := &recordingRefresher{}
	coordinator, requests := newCoordinator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/v1/workouts/workout-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}), refresher)

	err := coordinator.DeleteWorkout(context.Background(), "workout-1", true)
	require.NoError(t, err)
	assert.Equal(t, int32(1), requests.Load())
	assert.Equal(t, []string{mutation.ScopeWorkouts}, refresher.scopes)
}

func TestDeleteNutritionLog_RequiresConfirmation(t *testing.T) {
	coordinator, requests := newCoordinator(t, http.NotFoundHandler(), nil)

	err := coordinator.DeleteNutritionLog(context.Background(), "log-1", false)
	assert.ErrorIs(t, err, mutation.ErrNotConfirmed)
	assert.Zero(t, requests.Load())
}

func TestCreateNutritionLog_SignalsRefresh(t *testing.T) {
	refresher := &recordingRefresher{}
	coordinator, _ := newCoordinator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/nutrition", r.URL.Path)

		var create fitapi.NutritionLogCreate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&create))
		assert.Equal(t, "oatmeal", create.FoodName)
		assert.InDelta(t, 350.0, create.Calories, 1e-9)
		assert.Nil(t, create.Protein)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(fitapi.NutritionLog{ID: "log-1", MealType: create.MealType, FoodName: create.FoodName})
	}), refresher)

	log, err := coordinator.CreateNutritionLog(context.Background(), mutation.NutritionDraft{
		MealType: fitapi.MealBreakfast,
		FoodName: "oatmeal",
		Calories: "350",
	})
	require.NoError(t, err)
	assert.Equal(t, "log-1", log.ID)
	assert.Equal(t, []string{mutation.ScopeNutrition}, refresher.scopes)
}

func TestRefresherFailure_DoesNotSurfaceFromWrite(t *testing.T) {
	refresher := &recordingRefresher{err: assert.AnError}
	coordinator, _ := newCoordinator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), refresher)

	err := coordinator.DeleteWorkout(context.Background(), "workout-1", true)
	assert.NoError(t, err, "the write succeeded; a refresh failure is only logged")
	assert.Equal(t, []string{mutation.ScopeWorkouts}, refresher.scopes)
}

func TestPrefillNutrition_FillsOnlyEmptyFields(t *testing.T) {
	coordinator, _ := newCoordinator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/prediction/nutrition", r.URL.Path)

		var req struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "oatmeal", req.Query)

		serving := "1 bowl"
		_ = json.NewEncoder(w).Encode(fitapi.NutritionEstimate{
			Calories:    ptr(350.0),
			Protein:     ptr(12.5),
			ServingSize: &serving,
		})
	}), nil)

	draft := mutation.NutritionDraft{
		MealType: fitapi.MealBreakfast,
		FoodName: "oatmeal",
		Calories: "300",
	}
	got := coordinator.PrefillNutrition(context.Background(), draft)

	// The user's own calories entry is untouched; empty fields the estimate
	// covered are filled, the rest stay empty.
	assert.Equal(t, "300", got.Calories)
	assert.Equal(t, "12.5", got.Protein)
	assert.Equal(t, "1 bowl", got.ServingSize)
	assert.Empty(t, got.Carbs)
	assert.Empty(t, got.Fats)
}

func TestPrefillNutrition_FailureReturnsDraftUnchanged(t *testing.T) {
	coordinator, _ := newCoordinator(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "prediction offline"})
	}), nil)

	draft := mutation.NutritionDraft{
		MealType: fitapi.MealLunch,
		FoodName: "salad",
		Calories: "420",
	}
	got := coordinator.PrefillNutrition(context.Background(), draft)
	assert.Equal(t, draft, got)
}

func TestPrefillNutrition_EmptyFoodNameSkipsNetwork(t *testing.T) {
	coordinator, requests := newCoordinator(t, http.NotFoundHandler(), nil)

	draft := mutation.NutritionDraft{MealType: fitapi.MealLunch}
	got := coordinator.PrefillNutrition(context.Background(), draft)

	assert.Equal(t, draft, got)
	assert.Zero(t, requests.Load())
}

func TestPrefillWorkout(t *testing.T) {
	coordinator, _ := newCoordinator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/prediction/workout", r.URL.Path)

		var req struct {
			Activity string `json:"activity"`
			Duration int    `json:"duration"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "running", req.Activity)
		assert.Equal(t, 30, req.Duration)

		_ = json.NewEncoder(w).Encode(fitapi.WorkoutEstimate{CaloriesBurned: ptr(280.0)})
	}), nil)

	got := coordinator.PrefillWorkout(context.Background(), mutation.WorkoutDraft{
		Name:        "running",
		WorkoutType: fitapi.WorkoutCardio,
		Duration:    "30",
	})
	assert.Equal(t, "280", got.CaloriesBurned)
}

func TestPrefillWorkout_SkipsWhenNotApplicable(t *testing.T) {
	coordinator, requests := newCoordinator(t, http.NotFoundHandler(), nil)

	// Already has a calories entry.
	draft := mutation.WorkoutDraft{Name: "running", Duration: "30", CaloriesBurned: "300"}
	assert.Equal(t, draft, coordinator.PrefillWorkout(context.Background(), draft))

	// No parseable duration to estimate from.
	draft = mutation.WorkoutDraft{Name: "running"}
	assert.Equal(t, draft, coordinator.PrefillWorkout(context.Background(), draft))

	assert.Zero(t, requests.Load())
}

func ptr[T any](v T) *T { return &v }
