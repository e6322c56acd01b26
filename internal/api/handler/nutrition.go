package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitsight/fitsight/internal/api/response"
	"github.com/fitsight/fitsight/internal/mutation"
)

// NutritionHandler serves the nutrition log write path.
type NutritionHandler struct {
	coordinator *mutation.Coordinator
}

// NewNutritionHandler creates a new NutritionHandler.
func NewNutritionHandler(coordinator *mutation.Coordinator) *NutritionHandler {
	return &NutritionHandler{coordinator: coordinator}
}

// Create handles POST /v1/nutrition.
func (h *NutritionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft mutation.NutritionDraft
	if !decodeJSON(w, r, &draft) {
		return
	}

	log, err := h.coordinator.CreateNutritionLog(r.Context(), draft)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.Created(w, r, "/v1/nutrition/"+log.ID, log)
}

// Delete handles DELETE /v1/nutrition/{logId}?confirm=true.
func (h *NutritionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "logId")
	confirmed := r.URL.Query().Get("confirm") == "true"

	if err := h.coordinator.DeleteNutritionLog(r.Context(), id, confirmed); err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.NoContent(w, r)
}

// Prefill handles POST /v1/nutrition/prefill. It estimates measures for the
// draft's food name and fills only the fields the user left empty.
func (h *NutritionHandler) Prefill(w http.ResponseWriter, r *http.Request) {
	var draft mutation.NutritionDraft
	if !decodeJSON(w, r, &draft) {
		return
	}

	response.JSON(w, r, http.StatusOK, h.coordinator.PrefillNutrition(r.Context(), draft))
}
