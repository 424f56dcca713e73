package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/expohall/stall-reservation-portal/internal/client"
	"github.com/expohall/stall-reservation-portal/internal/workflow"
)

// ReservationHandler exposes the reservation workflow over HTTP.  Each
// mutating route builds a short-lived workflow controller, loads the
// authoritative list, applies the action and returns the result, so the
// service itself stays stateless between requests.
type ReservationHandler struct {
	Stalls       *client.StallClient
	Reservations *client.ReservationClient
	Notify       workflow.Notifier
}

func NewReservationHandler(stalls *client.StallClient, reservations *client.ReservationClient, notify workflow.Notifier) *ReservationHandler {
	if stalls == nil || reservations == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Stalls: stalls, Reservations: reservations, Notify: notify}
}

func (h *ReservationHandler) controller() *workflow.Controller {
	return workflow.New(h.Stalls, h.Reservations, h.Notify)
}

// List handles GET /v1/reservations (admin): every reservation in the
// system.
func (h *ReservationHandler) List(c echo.Context) error {
	list, err := h.Reservations.GetReservations(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// My handles GET /v1/reservations/mine: the caller's own reservations.
func (h *ReservationHandler) My(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	list, err := h.Reservations.GetUserReservations(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Confirm handles PUT /v1/reservations/:id/confirm (admin).
func (h *ReservationHandler) Confirm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	ctx := c.Request().Context()

	wf := h.controller()
	if err := wf.LoadAll(ctx); err != nil {
		return fail(c, err)
	}
	msg, err := wf.Confirm(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	res, _ := wf.Get(id)
	return c.JSON(http.StatusOK, echo.Map{"message": msg, "reservation": res})
}

// Cancel handles DELETE /v1/reservations/:id.  Users cancel their own
// reservations; the cancelled entry disappears from their list.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	ctx := c.Request().Context()

	wf := h.controller()
	if err := wf.LoadUser(ctx, userID); err != nil {
		return fail(c, err)
	}
	if err := wf.Cancel(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation cancelled"})
}

// QRCode handles GET /v1/reservations/:id/qr-code.  The code is only
// served for CONFIRMED reservations owned by the caller.
func (h *ReservationHandler) QRCode(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	ctx := c.Request().Context()

	wf := h.controller()
	if err := wf.LoadUser(ctx, userID); err != nil {
		return fail(c, err)
	}
	code, err := wf.QRCode(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"qrCode": code})
}

// Verify handles GET /v1/reservations/verify-qr?qrCode=... (admin).
func (h *ReservationHandler) Verify(c echo.Context) error {
	qr := strings.TrimSpace(c.QueryParam("qrCode"))
	if qr == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "qrCode is required"})
	}
	res, err := h.Reservations.VerifyReservationByQR(c.Request().Context(), qr)
	if err != nil {
		return fail(c, err)
	}
	if res.Kind == client.VerifyReservation {
		return c.JSON(http.StatusOK, echo.Map{"valid": true, "reservation": res.Reservation, "timestamp": res.Timestamp})
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": false, "message": res.Message, "timestamp": res.Timestamp})
}
