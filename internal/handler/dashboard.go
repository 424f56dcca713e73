package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expohall/stall-reservation-portal/internal/client"
	"github.com/expohall/stall-reservation-portal/internal/summary"
)

// DashboardHandler serves the aggregated summary views.
type DashboardHandler struct {
	Auth         *client.AuthClient
	Stalls       *client.StallClient
	Reservations *client.ReservationClient
}

func NewDashboardHandler(auth *client.AuthClient, stalls *client.StallClient, reservations *client.ReservationClient) *DashboardHandler {
	if auth == nil || stalls == nil || reservations == nil {
		panic("nil dependency passed to NewDashboardHandler")
	}
	return &DashboardHandler{Auth: auth, Stalls: stalls, Reservations: reservations}
}

// ReservationSummary handles GET /v1/dashboard/reservations (admin).
func (h *DashboardHandler) ReservationSummary(c echo.Context) error {
	list, err := h.Reservations.GetReservations(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	stats := summary.Reduce(list)
	return c.JSON(http.StatusOK, echo.Map{
		"stats": stats,
		"percentages": echo.Map{
			"pending":   summary.Percentage(stats.Pending, stats.Total),
			"confirmed": summary.Percentage(stats.Confirmed, stats.Total),
			"cancelled": summary.Percentage(stats.Cancelled, stats.Total),
		},
	})
}

// StallSummary handles GET /v1/dashboard/stalls (admin).
func (h *DashboardHandler) StallSummary(c echo.Context) error {
	stats, err := summary.FetchStallStats(c.Request().Context(), h.Stalls)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stats": stats,
		"percentages": echo.Map{
			"available": summary.Percentage(stats.Available, stats.Total),
			"reserved":  summary.Percentage(stats.Reserved, stats.Total),
			"blocked":   summary.Percentage(stats.Blocked, stats.Total),
		},
	})
}

// UserDashboard handles GET /v1/dashboard/me.
func (h *DashboardHandler) UserDashboard(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	view, err := summary.FetchUserDashboard(c.Request().Context(), h.Auth, h.Reservations, h.Stalls, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}
