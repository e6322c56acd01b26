package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/fitsight/fitsight/internal/api/models"
	"github.com/fitsight/fitsight/internal/api/response"
	"github.com/fitsight/fitsight/internal/fitapi"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	client    *fitapi.Client
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, client *fitapi.Client) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		client:    client,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The gateway is
// ready as long as it can accept requests; upstream health is reported per
// resource on the status endpoint instead of gating readiness.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - per-resource circuit state.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}

	for resource, client := range h.client.Breakers() {
		state := client.State()
		counts := client.Counts()

		upstream := models.UpstreamStatus{
			Resource:            resource,
			Status:              breakerHealth(state),
			CircuitState:        state.String(),
			Requests:            counts.Requests,
			ConsecutiveFailures: counts.ConsecutiveFailures,
		}
		status.Upstreams = append(status.Upstreams, upstream)

		if upstream.Status != models.HealthStatusOK && status.Status == models.HealthStatusOK {
			status.Status = models.HealthStatusDegraded
		}
	}
	sort.Slice(status.Upstreams, func(i, j int) bool {
		return status.Upstreams[i].Resource < status.Upstreams[j].Resource
	})

	response.JSON(w, r, http.StatusOK, status)
}

func breakerHealth(state gobreaker.State) models.HealthStatus {
	switch state {
	case gobreaker.StateOpen:
		return models.HealthStatusFail
	case gobreaker.StateHalfOpen:
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusOK
	}
}
