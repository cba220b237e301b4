// Package handler exposes the HTTP handlers of the reservation
// service: public browsing and availability, guest and customer
// reservation flows, staff transitions and auth.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/reservation"
)

// getUserID extracts the authenticated user's id from the context.
// JWT numeric claims decode as float64; string subjects are parsed for
// compatibility.
func getUserID(c echo.Context) (uint64, error) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), nil
	case uint64:
		return v, nil
	case string:
		return strconv.ParseUint(v, 10, 64)
	default:
		return 0, errors.New("no user in context")
	}
}

// optionalUserID returns the authenticated user's id or nil for
// anonymous requests.  Used on endpoints with OptionalJWTAuth.
func optionalUserID(c echo.Context) *uint64 {
	uid, err := getUserID(c)
	if err != nil {
		return nil
	}
	return &uid
}

// respondReservationError maps domain errors onto HTTP responses.
// Validation and business-rule failures come back structured;
// storage errors reach the client only as a generic message, the
// detail stays in the server log.
func respondReservationError(c echo.Context, err error) error {
	var verr *reservation.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, reservation.ErrNoAvailability):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, reservation.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, reservation.ErrNotOwner):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, reservation.ErrCancellationWindow):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, reservation.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		c.Logger().Errorf("reservation operation failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}
