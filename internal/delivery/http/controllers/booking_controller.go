package controllers

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"eventbook/internal/delivery/http/helpers"
	"eventbook/internal/delivery/http/middleware"
	"eventbook/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

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

// BookEventRequest is the request body for POST /events/{eventID}/bookings.
type BookEventRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// BookEventSuccessResponse is the success response envelope for POST /events/{eventID}/bookings (201).
type BookEventSuccessResponse struct {
	Data  *domain.Booking   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// BookEvent godoc
// @Summary Book a spot at an event
// @Description Books the named participant into the event. No authentication is required; when a valid Bearer token is supplied the booking is attributed to that user. Rejections carry a machine-readable error.code such as duplicate_booking or capacity_exceeded.
// @Tags bookings
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.BookEventRequest true "Participant details"
// @Success 201 {object} controllers.BookEventSuccessResponse "Booking created"
// @Failure 400 {object} helpers.APIResponse "error.code: missing_email, missing_name, missing_phone, creator_self_booking, duplicate_booking, capacity_exceeded, or bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: event_not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/bookings [post]
func (c *BookingController) BookEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	var req BookEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	input := domain.BookEventInput{
		EventID: eventID,
		Participant: &domain.ParticipantInput{
			Name:        strings.TrimSpace(req.Name),
			Email:       strings.TrimSpace(req.Email),
			PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		},
	}
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		input.BookerUserID = &userID
	}

	result, err := c.Service.BookEvent(r.Context(), input)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "booking could not be processed")
		return
	}
	if !result.Accepted {
		status := http.StatusBadRequest
		if result.Reason == domain.ReasonEventNotFound {
			status = http.StatusNotFound
		}
		helpers.WriteJSONError(w, status, string(result.Reason), result.Message)
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, result.Booking)
}
