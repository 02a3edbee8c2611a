package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lexlink/consultation-api/internal/core/ports"
)

// DashboardHandler exposes the read-only aggregated views.
type DashboardHandler struct {
	dashboards ports.DashboardService
}

func NewDashboardHandler(dashboards ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Client handles GET /v1/dashboard/client.
//
// @Summary      Get the caller's client dashboard
// @Tags         dashboards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clientDashboardResponse
// @Router       /v1/dashboard/client [get]
func (h *DashboardHandler) Client(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	dash, err := h.dashboards.ClientDashboard(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, clientDashboardResponse{
		Bookings: toBookingResponses(dash.Bookings),
		Lawyers:  toLawyerResponses(dash.Lawyers),
	})
}

// Lawyer handles GET /v1/dashboard/lawyer/:lawyer_id.
//
// @Summary      Get a lawyer's dashboard
// @Tags         dashboards
// @Produce      json
// @Security     BearerAuth
// @Param        lawyer_id  path      string  true  "Lawyer identity"
// @Success      200        {object}  lawyerDashboardResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/dashboard/lawyer/{lawyer_id} [get]
func (h *DashboardHandler) Lawyer(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	dash, err := h.dashboards.LawyerDashboard(c.Request().Context(), caller, c.Param("lawyer_id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, lawyerDashboardResponse{
		Profile:  toLawyerResponse(dash.Profile),
		Bookings: toBookingResponses(dash.Bookings),
		Summary: bookingSummaryResponse{
			Pending:   dash.Summary.Pending,
			Confirmed: dash.Summary.Confirmed,
		},
	})
}
