package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitsight/fitsight/internal/api/response"
	"github.com/fitsight/fitsight/internal/mutation"
)

// WorkoutHandler serves the workout write path.
type WorkoutHandler struct {
	coordinator *mutation.Coordinator
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(coordinator *mutation.Coordinator) *WorkoutHandler {
	return &WorkoutHandler{coordinator: coordinator}
}

// Create handles POST /v1/workouts.
func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft mutation.WorkoutDraft
	if !decodeJSON(w, r, &draft) {
		return
	}

	workout, err := h.coordinator.CreateWorkout(r.Context(), draft)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.Created(w, r, "/v1/workouts/"+workout.ID, workout)
}

// Delete handles DELETE /v1/workouts/{workoutId}?confirm=true.
func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workoutId")
	confirmed := r.URL.Query().Get("confirm") == "true"

	if err := h.coordinator.DeleteWorkout(r.Context(), id, confirmed); err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.NoContent(w, r)
}

// Prefill handles POST /v1/workouts/prefill. It returns the draft with the
// predicted calories filled in; a failed prediction returns the draft as
// submitted.
func (h *WorkoutHandler) Prefill(w http.ResponseWriter, r *http.Request) {
	var draft mutation.WorkoutDraft
	if !decodeJSON(w, r, &draft) {
		return
	}

	response.JSON(w, r, http.StatusOK, h.coordinator.PrefillWorkout(r.Context(), draft))
}
