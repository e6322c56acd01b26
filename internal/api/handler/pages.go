package handler

import (
	"net/http"
	"strconv"

	"github.com/fitsight/fitsight/internal/api/response"
	"github.com/fitsight/fitsight/internal/dashboard"
)

// PageHandler serves the aggregated page view-models.
type PageHandler struct {
	orchestrator *dashboard.Orchestrator
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(orchestrator *dashboard.Orchestrator) *PageHandler {
	return &PageHandler{orchestrator: orchestrator}
}

// Dashboard handles GET /v1/pages/dashboard.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	vm, err := h.orchestrator.LoadDashboard(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, vm)
}

// Analytics handles GET /v1/pages/analytics. Accepts optional workout_type
// and days_ahead query parameters for the performance forecast.
func (h *PageHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	workoutType := r.URL.Query().Get("workout_type")
	daysAhead := queryInt(r, "days_ahead")

	vm, err := h.orchestrator.LoadAnalytics(r.Context(), workoutType, daysAhead)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, vm)
}

// Workouts handles GET /v1/pages/workouts.
func (h *PageHandler) Workouts(w http.ResponseWriter, r *http.Request) {
	vm, err := h.orchestrator.LoadWorkouts(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, vm)
}

// Nutrition handles GET /v1/pages/nutrition.
func (h *PageHandler) Nutrition(w http.ResponseWriter, r *http.Request) {
	vm, err := h.orchestrator.LoadNutrition(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, vm)
}

// Profile handles GET /v1/pages/profile.
func (h *PageHandler) Profile(w http.ResponseWriter, r *http.Request) {
	vm, err := h.orchestrator.LoadProfile(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, vm)
}

// Trends handles GET /v1/pages/trends?metric=duration&days=90.
func (h *PageHandler) Trends(w http.ResponseWriter, r *http.Request) {
	metric := r.URL.Query().Get("metric")
	days := queryInt(r, "days")

	vm, err := h.orchestrator.LoadTrends(r.Context(), metric, days)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, vm)
}

// queryInt parses an optional integer query parameter; 0 means absent or
// unparseable and callers fall back to their defaults.
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
