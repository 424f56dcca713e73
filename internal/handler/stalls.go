package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expohall/stall-reservation-portal/internal/client"
	"github.com/expohall/stall-reservation-portal/internal/model"
	"github.com/expohall/stall-reservation-portal/internal/search"
	"github.com/expohall/stall-reservation-portal/internal/workflow"
)

// StallHandler serves the exhibition map: browsing, searching and
// filtering stalls, plus the administrator create/edit operations and
// the user-facing reserve action.
type StallHandler struct {
	Stalls       *client.StallClient
	Reservations *client.ReservationClient
	Search       *search.Controller
}

func NewStallHandler(stalls *client.StallClient, reservations *client.ReservationClient, search *search.Controller) *StallHandler {
	if stalls == nil || reservations == nil || search == nil {
		panic("nil dependency passed to NewStallHandler")
	}
	return &StallHandler{Stalls: stalls, Reservations: reservations, Search: search}
}

// Browse returns the full stall inventory for the map view.
func (h *StallHandler) Browse(c echo.Context) error {
	stalls, err := h.Stalls.GetStalls(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	if stalls == nil {
		stalls = []model.Stall{}
	}
	return c.JSON(http.StatusOK, stalls)
}

// CombinedSearch resolves the free-form search box: exact code lookup
// for code-shaped input, merged name/category search otherwise.
func (h *StallHandler) CombinedSearch(c echo.Context) error {
	result, err := h.Search.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// FilterBySize applies the size filter control.  An empty size clears
// the filter, reported as filtered=false with no stall list so the UI
// falls back to the unfiltered collection.
func (h *StallHandler) FilterBySize(c echo.Context) error {
	list, err := h.Search.FilterBySize(c.Request().Context(), c.QueryParam("size"))
	if err != nil {
		return fail(c, err)
	}
	if list == nil {
		return c.JSON(http.StatusOK, echo.Map{"filtered": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"filtered": true, "stalls": list, "count": len(list)})
}

// FilterByStatus applies the status filter control with the same
// cleared-filter convention as FilterBySize.
func (h *StallHandler) FilterByStatus(c echo.Context) error {
	list, err := h.Search.FilterByStatus(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return fail(c, err)
	}
	if list == nil {
		return c.JSON(http.StatusOK, echo.Map{"filtered": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"filtered": true, "stalls": list, "count": len(list)})
}

// GetByCode looks up one stall by its code.
func (h *StallHandler) GetByCode(c echo.Context) error {
	stall, err := h.Stalls.GetStallByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, stall)
}

// Create registers a new stall (administrator).  The form is validated
// field by field locally; failures come back as a field→message map
// without touching the stall service.
func (h *StallHandler) Create(c echo.Context) error {
	var stall model.Stall
	if err := c.Bind(&stall); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if errs := model.ValidateStall(stall); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation failed", "errors": errs})
	}
	created, err := h.Stalls.CreateStall(c.Request().Context(), stall)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update edits an existing stall (administrator), with the same local
// validation as Create.
func (h *StallHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var stall model.Stall
	if err := c.Bind(&stall); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if errs := model.ValidateStall(stall); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation failed", "errors": errs})
	}
	updated, err := h.Stalls.UpdateStall(c.Request().Context(), id, stall)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Reserve claims an available stall for the authenticated user.  The
// request body carries the stall as the UI holds it; the workflow
// refuses anything that is not AVAILABLE before calling out.
func (h *StallHandler) Reserve(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var stall model.Stall
	if err := c.Bind(&stall); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	stall.ID = id

	wf := workflow.New(h.Stalls, h.Reservations, nil)
	if err := wf.Reserve(c.Request().Context(), &stall, userID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "stall reserved", "stall": stall})
}
