package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventbook/internal/delivery/http/helpers"
	"eventbook/internal/domain"
)

// CreateBookingRequest is the request body for POST /api/bookings. Email
// normalization and validation happen at save time inside the service.
type CreateBookingRequest struct {
	EventID string `json:"event_id"`
	Email   string `json:"email"`
}

// BookingResponse is the success envelope for single-booking endpoints.
type BookingResponse struct {
	Booking *domain.Booking `json:"booking"`
}

// BookingListResponse is the success envelope for listing an event's bookings.
type BookingListResponse struct {
	Bookings []*domain.Booking `json:"bookings"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateBooking godoc
// @Summary Book an event
// @Description Creates a booking for an event by email. The referenced event must exist.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body CreateBookingRequest true "Booking data"
// @Success 201 {object} controllers.BookingResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ServerErrorResponse
// @Router /api/bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.CreateBooking(r.Context(), req.EventID, req.Email)
	if err != nil {
		switch {
		case domain.IsValidationError(err):
			helpers.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrEventNotFound):
			helpers.WriteError(w, http.StatusBadRequest, "referenced event does not exist")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteServerError(w, "failed to create booking", err)
		}
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, BookingResponse{Booking: booking})
}

// ListEventBookings godoc
// @Summary List bookings for an event
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.BookingListResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ServerErrorResponse
// @Router /api/events/{eventID}/bookings [get]
func (c *BookingController) ListEventBookings(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteError(w, http.StatusBadRequest, "missing eventID")
		return
	}
	bookings, err := c.Service.ListEventBookings(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteError(w, http.StatusNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteServerError(w, "failed to list bookings", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, BookingListResponse{Bookings: bookings})
}
