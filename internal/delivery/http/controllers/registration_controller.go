package controllers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"eventregistry/internal/delivery/http/helpers"
	"eventregistry/internal/domain"
)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterUserRequest is the request body for POST /events/{eventID}/registrations.
type RegisterUserRequest struct {
	UserID string `json:"user_id"`
}

// Validate implements helpers.Validator.
func (r RegisterUserRequest) Validate() []string {
	if r.UserID == "" {
		return []string{"user_id is required"}
	}
	if _, err := uuid.Parse(r.UserID); err != nil {
		return []string{"user_id must be a UUID"}
	}
	return nil
}

// RegisterUserSuccessResponse is the success response envelope for POST /events/{eventID}/registrations (201).
type RegisterUserSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// RegisterUser godoc
// @Summary Register a user for an event
// @Description Registers the user for the event. Fails with a conflict when the event has occurred, is at capacity, or the user is already registered. Capacity is enforced transactionally; the event is never oversold.
// @Tags registrations
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param registration body RegisterUserRequest true "User to register"
// @Success 201 {object} controllers.RegisterUserSuccessResponse "data contains the registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [post]
func (c *RegistrationController) RegisterUser(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if _, err := uuid.Parse(eventID); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	var req RegisterUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.RegisterUser(r.Context(), eventID, req.UserID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// CancelRegistrationSuccessResponse is the success response envelope for DELETE /events/{eventID}/registrations/{userID} (200).
type CancelRegistrationSuccessResponse struct {
	Data  map[string]string `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CancelRegistration godoc
// @Summary Cancel a user's registration
// @Description Deletes the (event, user) registration. Cancelling a registration that does not exist, or was already cancelled concurrently, reports not found.
// @Tags registrations
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} controllers.CancelRegistrationSuccessResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations/{userID} [delete]
func (c *RegistrationController) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if _, err := uuid.Parse(eventID); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	userID := r.PathValue("userID")
	if _, err := uuid.Parse(userID); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid userID")
		return
	}
	if err := c.Service.CancelRegistration(r.Context(), eventID, userID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "registration cancelled"})
}
