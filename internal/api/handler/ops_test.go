package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsight/fitsight/internal/api/handler"
	"github.com/fitsight/fitsight/internal/api/models"
	"github.com/fitsight/fitsight/internal/fitapi"
)

func newOpsHandler() *handler.OpsHandler {
	client := fitapi.NewClient(fitapi.ClientConfig{
		BaseURL: "http://localhost:8000",
		Logger:  zerolog.Nop(),
	})
	return handler.NewOpsHandler("1.2.3", "2026-08-28T00:00:00Z", client)
}

func TestHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	newOpsHandler().HealthCheck(w, httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)

	var health models.Health
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.Equal(t, "1.2.3", health.Details["version"])
}

func TestReadinessCheck(t *testing.T) {
	w := httptest.NewRecorder()
	newOpsHandler().ReadinessCheck(w, httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSystemStatus(t *testing.T) {
	w := httptest.NewRecorder()
	newOpsHandler().SystemStatus(w, httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)

	var status models.SystemStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, models.HealthStatusOK, status.Status)

	// One entry per logical resource, sorted for stable output.
	require.Len(t, status.Upstreams, 6)
	resources := make([]string, 0, len(status.Upstreams))
	for _, u := range status.Upstreams {
		resources = append(resources, u.Resource)
		assert.Equal(t, models.HealthStatusOK, u.Status)
		assert.Equal(t, "closed", u.CircuitState)
	}
	assert.Equal(t, []string{"analytics", "auth", "ml", "nutrition", "prediction", "workouts"}, resources)
}
