// Package handler provides HTTP handlers for the FitSight API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fitsight/fitsight/internal/api/models"
	"github.com/fitsight/fitsight/internal/api/response"
	"github.com/fitsight/fitsight/internal/dashboard"
	"github.com/fitsight/fitsight/internal/fitapi"
	"github.com/fitsight/fitsight/internal/mutation"
)

// writeDomainError maps a domain error to its Problem response. A mandatory
// page query failure is unwrapped so the underlying upstream error decides
// the status.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var pageErr *dashboard.PageError
	if errors.As(err, &pageErr) {
		writeDomainError(w, r, pageErr.Err)
		return
	}

	var validationErr *mutation.ValidationError
	if errors.As(err, &validationErr) {
		response.BadRequest(w, r, "invalid input", fieldErrors(validationErr.Fields))
		return
	}

	var authErr *fitapi.AuthError
	var apiErr *fitapi.APIError
	var transportErr *fitapi.TransportError
	switch {
	case errors.Is(err, mutation.ErrNotConfirmed):
		response.BadRequest(w, r, "deletion requires explicit confirmation", nil)
	case errors.Is(err, dashboard.ErrUnsupportedMetric):
		response.BadRequest(w, r, err.Error(), nil)
	case errors.Is(err, fitapi.ErrNoSession):
		response.Unauthorized(w, r, "authentication required")
	case errors.As(err, &authErr):
		response.Unauthorized(w, r, authErr.Error())
	case errors.Is(err, fitapi.ErrNotFound):
		response.NotFound(w, r, "resource not found")
	case errors.As(err, &transportErr):
		response.UpstreamUnavailable(w, r, "upstream source is unavailable")
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 500 {
			response.UpstreamUnavailable(w, r, apiErr.Message())
		} else {
			response.BadRequest(w, r, apiErr.Message(), nil)
		}
	default:
		response.InternalError(w, r, "an unexpected error occurred")
	}
}

// fieldErrors converts validation field errors to the response model.
func fieldErrors(fields []mutation.FieldError) []models.FieldError {
	out := make([]models.FieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, models.FieldError{
			Field:   f.Field,
			Message: f.Message,
			Code:    f.Code,
		})
	}
	return out
}

// decodeJSON decodes the request body into v and writes a 400 on failure.
// Returns false when decoding failed and a response was already written.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return false
	}
	return true
}
