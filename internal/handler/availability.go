package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/reservation"
)

// AvailabilityHandler exposes the read-only availability queries used
// by booking pages before a reservation is attempted.
type AvailabilityHandler struct {
	Svc *reservation.Service
}

func NewAvailabilityHandler(svc *reservation.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Svc: svc}
}

// Slots handles GET /v1/availability?date=YYYY-MM-DD&party_size=N.
// It reports, for each service slot of the day, how many tables could
// seat the party and their combined capacity.  party_size defaults to
// 2 when omitted.
func (h *AvailabilityHandler) Slots(c echo.Context) error {
	date := c.QueryParam("date")
	partySize := 2
	if raw := c.QueryParam("party_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "party_size must be a number"})
		}
		partySize = n
	}

	slots, err := h.Svc.TimeSlotAvailability(c.Request().Context(), date, partySize)
	if err != nil {
		return respondReservationError(c, err)
	}
	// Sitting rules ride along so booking pages can show them without
	// a second call.  They are informational; overlap math uses the
	// service duration alone.
	policy := h.Svc.Policy()
	return c.JSON(http.StatusOK, echo.Map{
		"date":       date,
		"party_size": partySize,
		"slots":      slots,
		"policy": echo.Map{
			"service_duration_min": policy.ServiceDurationMin,
			"grace_period_min":     policy.GracePeriodMin,
			"max_sitting_min":      policy.MaxSittingMin,
		},
	})
}

// Tables handles GET /v1/tables?date=...&time=...&party_size=N and
// lists the tables free for the full service window at that time,
// best fit first.
func (h *AvailabilityHandler) Tables(c echo.Context) error {
	date := c.QueryParam("date")
	startTime := c.QueryParam("time")
	if startTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "time is required"})
	}
	partySize := 2
	if raw := c.QueryParam("party_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "party_size must be a number"})
		}
		partySize = n
	}

	options, err := h.Svc.AvailableTables(c.Request().Context(), partySize, date, startTime)
	if err != nil {
		return respondReservationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":       date,
		"time":       startTime,
		"party_size": partySize,
		"tables":     options,
	})
}
