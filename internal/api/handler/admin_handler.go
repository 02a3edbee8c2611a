package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lexlink/consultation-api/internal/api/metrics"
	"github.com/lexlink/consultation-api/internal/core/domain"
	"github.com/lexlink/consultation-api/internal/core/ports"
)

// AdminHandler exposes the privileged maintenance operations. All routes
// carrying this handler sit behind the AdminOnly middleware; the services
// re-check the admin role anyway, so a wiring mistake cannot open a hole.
type AdminHandler struct {
	identity  ports.IdentityService
	bookings  ports.BookingService
	directory ports.DirectoryService
}

func NewAdminHandler(identity ports.IdentityService, bookings ports.BookingService, directory ports.DirectoryService) *AdminHandler {
	return &AdminHandler{identity: identity, bookings: bookings, directory: directory}
}

// AssignRole handles PUT /v1/admin/users/:identity/role.
//
// @Summary      Assign an administrative role to a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        identity  path      string                  true  "Target identity"
// @Param        body      body      assignAdminRoleRequest  true  "New administrative role"
// @Success      204       "role assigned"
// @Failure      403       {object}  errorResponse
// @Router       /v1/admin/users/{identity}/role [put]
func (h *AdminHandler) AssignRole(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req assignAdminRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.identity.AssignAdminRole(c.Request().Context(), caller, c.Param("identity"), domain.AdminRole(req.Role)); err != nil {
		return err
	}

	metrics.AdminOverridesTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// ListUsers handles GET /v1/admin/users.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   adminUserResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	users, err := h.identity.ListUsers(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	out := make([]adminUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, adminUserResponse{Identity: u.Identity, Role: string(u.Role)})
	}
	return c.JSON(http.StatusOK, out)
}

// ListBookings handles GET /v1/admin/bookings.
//
// @Summary      List the full booking ledger
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   bookingResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/bookings [get]
func (h *AdminHandler) ListBookings(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookings.AdminListAll(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}

// DeleteBooking handles DELETE /v1/admin/bookings/:booking_id.
//
// @Summary      Purge a booking
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        booking_id  path  int  true  "Booking id"
// @Success      204  "booking deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/bookings/{booking_id} [delete]
func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	bookingID, err := strconv.ParseInt(c.Param("booking_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	if err := h.bookings.AdminDelete(c.Request().Context(), caller, bookingID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteLawyer handles DELETE /v1/admin/lawyers/:lawyer_id.
//
// @Summary      Purge a lawyer profile
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        lawyer_id  path  string  true  "Lawyer identity"
// @Success      204  "profile deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/lawyers/{lawyer_id} [delete]
func (h *AdminHandler) DeleteLawyer(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.directory.AdminDeleteProfile(c.Request().Context(), caller, c.Param("lawyer_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
