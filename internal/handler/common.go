package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/expohall/stall-reservation-portal/internal/client"
	"github.com/expohall/stall-reservation-portal/internal/workflow"
)

// getUserID extracts the user_id stored in the context by SessionAuth.
func getUserID(c echo.Context) (int64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// fail converts an error from the clients or the workflow into the
// portal's JSON error response.  Local validation failures are 400,
// missing sessions 401, workflow state conflicts 409, and remote
// service failures keep their upstream status so the UI can show the
// backend's own message.
func fail(c echo.Context, err error) error {
	var ve *client.ValidationError
	var ae *client.APIError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": ve.Reason})
	case errors.Is(err, client.ErrAuthRequired):
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": err.Error()})
	case errors.Is(err, workflow.ErrUnknownReservation):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "reservation not found"})
	case errors.Is(err, workflow.ErrNotPending),
		errors.Is(err, workflow.ErrAlreadyCancelled),
		errors.Is(err, workflow.ErrStallUnavailable),
		errors.Is(err, workflow.ErrQRNotAvailable),
		errors.Is(err, workflow.ErrActionInFlight):
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	case errors.As(err, &ae):
		return c.JSON(ae.Status, echo.Map{"message": ae.Error()})
	}
	return c.JSON(http.StatusBadGateway, echo.Map{"message": err.Error()})
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
