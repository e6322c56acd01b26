package handler

import (
	"net/http"

	"github.com/fitsight/fitsight/internal/api/models"
	"github.com/fitsight/fitsight/internal/api/response"
	"github.com/fitsight/fitsight/internal/fitapi"
)

// AuthHandler passes registration and login through to the upstream API.
type AuthHandler struct {
	client *fitapi.Client
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(client *fitapi.Client) *AuthHandler {
	return &AuthHandler{client: client}
}

// loginRequest is the gateway login payload. The upstream expects form
// encoding; the client handles that translation.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req *loginRequest) validate() []models.FieldError {
	var errors []models.FieldError
	if req.Username == "" {
		errors = append(errors, models.FieldError{
			Field:   "username",
			Message: "username is required",
			Code:    "REQUIRED",
		})
	}
	if req.Password == "" {
		errors = append(errors, models.FieldError{
			Field:   "password",
			Message: "password is required",
			Code:    "REQUIRED",
		})
	}
	return errors
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		response.BadRequest(w, r, "invalid credentials payload", errs)
		return
	}

	token, err := h.client.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, token)
}

// Register handles POST /v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req fitapi.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var errs []models.FieldError
	if req.Email == "" {
		errs = append(errs, models.FieldError{Field: "email", Message: "email is required", Code: "REQUIRED"})
	}
	if req.Username == "" {
		errs = append(errs, models.FieldError{Field: "username", Message: "username is required", Code: "REQUIRED"})
	}
	if req.Password == "" {
		errs = append(errs, models.FieldError{Field: "password", Message: "password is required", Code: "REQUIRED"})
	}
	if len(errs) > 0 {
		response.BadRequest(w, r, "invalid registration payload", errs)
		return
	}

	user, err := h.client.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.Created(w, r, "", user)
}

// UpdateProfile handles PUT /v1/profile.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update fitapi.ProfileUpdate
	if !decodeJSON(w, r, &update) {
		return
	}

	user, err := h.client.UpdateProfile(r.Context(), update)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, user)
}
