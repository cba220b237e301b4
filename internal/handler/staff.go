package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/reservation"
)

// StaffHandler serves the front-of-house endpoints: the day sheet and
// the seated/completed/no-show lifecycle that customers cannot drive
// themselves.  All routes are mounted behind the STAFF role check.
type StaffHandler struct {
	Svc *reservation.Service
}

func NewStaffHandler(svc *reservation.Service) *StaffHandler {
	return &StaffHandler{Svc: svc}
}

type statusReq struct {
	Status string `json:"status"`
}

// DaySheet handles GET /v1/staff/reservations?date=YYYY-MM-DD and
// returns every reservation for the day in floor order, the list a
// host works from during service.
func (h *StaffHandler) DaySheet(c echo.Context) error {
	list, err := h.Svc.ListForDate(c.Request().Context(), c.QueryParam("date"))
	if err != nil {
		return respondReservationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": list})
}

// SetStatus handles POST /v1/staff/reservations/:id/status.  Allowed
// transitions are enforced by the service; anything else is a 409.
func (h *StaffHandler) SetStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	switch status {
	case model.StatusConfirmed, model.StatusSeated, model.StatusCompleted,
		model.StatusCancelled, model.StatusNoShow:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	det, err := h.Svc.TransitionStatus(c.Request().Context(), id, status)
	if err != nil {
		return respondReservationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": det})
}
