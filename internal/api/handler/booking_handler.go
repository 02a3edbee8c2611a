package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lexlink/consultation-api/internal/api/metrics"
	"github.com/lexlink/consultation-api/internal/core/domain"
	"github.com/lexlink/consultation-api/internal/core/ports"
)

// BookingHandler exposes the booking scheduler.
type BookingHandler struct {
	bookings ports.BookingService
}

func NewBookingHandler(bookings ports.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Book handles POST /v1/bookings.
//
// @Summary      Book a consultation
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookConsultationRequest  true  "Booking details; slot is nanoseconds since epoch"
// @Success      201   {object}  bookConsultationResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/bookings [post]
func (h *BookingHandler) Book(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req bookConsultationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.bookings.Book(c.Request().Context(), caller, ports.BookConsultationInput{
		LawyerID:    req.LawyerID,
		Slot:        req.Slot,
		DurationMin: req.DurationMin,
		Fee:         req.Fee,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotConflict) {
			metrics.SlotConflictsTotal.Inc()
		}
		return err
	}

	metrics.BookingsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, bookConsultationResponse{BookingID: id})
}

// UpdateStatus handles PATCH /v1/bookings/:booking_id/status.
//
// @Summary      Transition a booking's status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        booking_id  path      int                         true  "Booking id"
// @Param        body        body      updateBookingStatusRequest  true  "Target status"
// @Success      204         "status updated"
// @Failure      400         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Failure      422         {object}  errorResponse
// @Router       /v1/bookings/{booking_id}/status [patch]
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	bookingID, err := strconv.ParseInt(c.Param("booking_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req updateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.bookings.UpdateStatus(c.Request().Context(), caller, bookingID, domain.BookingStatus(req.Status)); err != nil {
		return err
	}

	metrics.BookingTransitionsTotal.WithLabelValues(req.Status).Inc()
	return c.NoContent(http.StatusNoContent)
}
