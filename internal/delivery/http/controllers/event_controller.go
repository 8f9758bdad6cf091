package controllers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"eventregistry/internal/delivery/http/helpers"
	"eventregistry/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEventRequest is the request body for POST /events. The date and time
// fields are separate on the wire ("2006-01-02" and "15:04") and combined
// server-side.
type CreateEventRequest struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Capacity *int   `json:"capacity"`
}

// Validate implements helpers.Validator. Presence only; range and date rules
// belong to the engine.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if c.Date == "" {
		errs = append(errs, "date is required")
	}
	if c.Time == "" {
		errs = append(errs, "time is required")
	}
	if c.Location == "" {
		errs = append(errs, "location is required")
	}
	if c.Capacity == nil {
		errs = append(errs, "capacity is required")
	}
	return errs
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event with a fixed capacity (1..1000). Date and time are combined in the server's local timezone and must lie in the future.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), domain.CreateEventInput{
		Title:    req.Title,
		Date:     req.Date,
		Time:     req.Time,
		Location: req.Location,
		Capacity: req.Capacity,
	})
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEventDetailsSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type GetEventDetailsSuccessResponse struct {
	Data  *domain.EventDetails `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// GetEventDetails godoc
// @Summary Get an event with its attendees
// @Description Returns the event and its registered users, resolved against the user store and sorted by user ID.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GetEventDetailsSuccessResponse "data contains the event and attendees"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEventDetails(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if _, err := uuid.Parse(eventID); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	details, err := c.Service.GetEventDetails(r.Context(), eventID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, details)
}

// ListUpcomingEventsSuccessResponse is the success response envelope for GET /events/upcoming (200).
type ListUpcomingEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListUpcomingEvents godoc
// @Summary List upcoming events
// @Description Returns all events with a future date_time, ordered by date_time ascending, then location.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.ListUpcomingEventsSuccessResponse "data contains the ordered event list"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/upcoming [get]
func (c *EventController) ListUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListUpcomingEvents(r.Context())
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEventStatsSuccessResponse is the success response envelope for GET /events/{eventID}/stats (200).
type GetEventStatsSuccessResponse struct {
	Data  *domain.EventStats `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// GetEventStats godoc
// @Summary Get registration statistics for an event
// @Description Returns the live registration count, remaining capacity, and percentage used (two decimal places).
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GetEventStatsSuccessResponse "data contains the stats record"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/stats [get]
func (c *EventController) GetEventStats(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if _, err := uuid.Parse(eventID); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	stats, err := c.Service.GetEventStats(r.Context(), eventID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}
