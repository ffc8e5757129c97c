package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"eventbook/internal/delivery/http/helpers"
	"eventbook/internal/domain"
)

// CreateEventRequest is the request body for POST /api/events. Validation of
// field rules happens at save time inside the service, not here.
type CreateEventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Overview    string   `json:"overview"`
	Image       string   `json:"image"`
	Venue       string   `json:"venue"`
	Location    string   `json:"location"`
	Audience    string   `json:"audience"`
	Organizer   string   `json:"organizer"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Mode        string   `json:"mode"`
	Agenda      []string `json:"agenda"`
	Tags        []string `json:"tags"`
}

// UpdateEventRequest is the request body for PATCH /api/events/{eventID}.
// All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Overview    *string  `json:"overview"`
	Image       *string  `json:"image"`
	Venue       *string  `json:"venue"`
	Location    *string  `json:"location"`
	Audience    *string  `json:"audience"`
	Organizer   *string  `json:"organizer"`
	Date        *string  `json:"date"`
	Time        *string  `json:"time"`
	Mode        *string  `json:"mode"`
	Agenda      []string `json:"agenda"`
	Tags        []string `json:"tags"`
}

// EventResponse is the success envelope for single-event endpoints.
type EventResponse struct {
	Event *domain.Event `json:"event"`
}

// EventListResponse is the success envelope for GET /api/events.
type EventListResponse struct {
	Events []*domain.Event        `json:"events"`
	Meta   helpers.PaginationMeta `json:"meta"`
}

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

// ListEvents godoc
// @Summary List events
// @Description Returns the paginated events listing, ordered by date.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.EventListResponse
// @Failure 500 {object} helpers.ServerErrorResponse
// @Router /api/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	p := helpers.ParsePagination(r)
	events, total, err := c.Service.ListEvents(r.Context(), p)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteServerError(w, "failed to list events", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventListResponse{
		Events: events,
		Meta:   helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}

// GetEventBySlug godoc
// @Summary Get an event by slug
// @Description Returns the full event record for the given slug.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ServerErrorResponse
// @Router /api/events/{slug} [get]
func (c *EventController) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("slug")
	// The mux decodes the path segment, but a client may still double-encode.
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	slug := strings.ToLower(strings.TrimSpace(raw))
	if slug == "" {
		helpers.WriteError(w, http.StatusBadRequest, "missing slug")
		return
	}
	// Shape check happens before any store access.
	if !domain.IsValidSlug(slug) {
		helpers.WriteError(w, http.StatusBadRequest, "invalid slug: must be lowercase alphanumeric tokens joined by single dashes")
		return
	}

	event, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteError(w, http.StatusNotFound, "event not found: "+slug)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteServerError(w, "failed to get event", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventResponse{Event: event})
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event. Slug, timestamps, and normalized date/time are server-generated.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 409 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ServerErrorResponse
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := &domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Overview:    req.Overview,
		Image:       req.Image,
		Venue:       req.Venue,
		Location:    req.Location,
		Audience:    req.Audience,
		Organizer:   req.Organizer,
		Date:        req.Date,
		Time:        req.Time,
		Mode:        req.Mode,
		Agenda:      req.Agenda,
		Tags:        req.Tags,
	}
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		c.writeEventError(w, r, err, "failed to create event")
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, EventResponse{Event: event})
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Applies a partial update. A title change regenerates the slug; date and time changes re-normalize.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param event body UpdateEventRequest true "Fields to update"
// @Success 200 {object} controllers.EventResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 409 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ServerErrorResponse
// @Router /api/events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteError(w, http.StatusBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, domain.EventUpdate{
		Title:       req.Title,
		Description: req.Description,
		Overview:    req.Overview,
		Image:       req.Image,
		Venue:       req.Venue,
		Location:    req.Location,
		Audience:    req.Audience,
		Organizer:   req.Organizer,
		Date:        req.Date,
		Time:        req.Time,
		Mode:        req.Mode,
		Agenda:      req.Agenda,
		Tags:        req.Tags,
	})
	if err != nil {
		c.writeEventError(w, r, err, "failed to update event")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventResponse{Event: event})
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 204 "No Content"
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ServerErrorResponse
// @Router /api/events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteError(w, http.StatusBadRequest, "missing eventID")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteError(w, http.StatusNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteServerError(w, "failed to delete event", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *EventController) writeEventError(w http.ResponseWriter, r *http.Request, err error, message string) {
	switch {
	case domain.IsValidationError(err):
		helpers.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteError(w, http.StatusNotFound, "event not found")
	case errors.Is(err, domain.ErrSlugTaken):
		helpers.WriteError(w, http.StatusConflict, "an event with this slug already exists")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteServerError(w, message, err)
	}
}
