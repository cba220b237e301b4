package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/reservation"
)

// ReservationHandler serves the customer-facing reservation flow:
// create (guest or signed-in), fetch, update contact details, cancel
// and list own bookings.  All business rules live in the service; the
// handler only shapes HTTP.
type ReservationHandler struct {
	Svc *reservation.Service
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(svc *reservation.Service) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Svc: svc}
}

// Create handles POST /v1/reservations.  Guests and authenticated
// customers share this endpoint; when a valid bearer token is present
// the booking is attached to the account for later listing.  Responds
// 201 with the confirmed reservation, 400 with per-field messages on
// invalid input, or 409 when no table fits.
func (h *ReservationHandler) Create(c echo.Context) error {
	var in reservation.CreateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	in.UserID = optionalUserID(c)

	det, err := h.Svc.Create(c.Request().Context(), in)
	if err != nil {
		return respondReservationError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"reservation": det})
}

// Get handles GET /v1/reservations/:id.  A booking is visible to its
// owning user or to anyone presenting the confirmation code via the
// ?code= query parameter (the guest flow).
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	det, err := h.Svc.Get(c.Request().Context(), id, optionalUserID(c), c.QueryParam("code"))
	if err != nil {
		return respondReservationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": det})
}

// Update handles PATCH /v1/reservations/:id.  Only contact details and
// special requests are mutable; moving a booking is cancel-and-rebook.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var in reservation.UpdateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	det, err := h.Svc.Update(c.Request().Context(), id, optionalUserID(c), c.QueryParam("code"), in)
	if err != nil {
		return respondReservationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": det})
}

// Cancel handles DELETE /v1/reservations/:id.  Cancellation frees the
// slot immediately but is refused inside the policy cutoff before the
// reservation start (409).
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	det, err := h.Svc.Cancel(c.Request().Context(), id, optionalUserID(c), c.QueryParam("code"))
	if err != nil {
		return respondReservationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": det})
}

// ListMine handles GET /v1/my-reservations for authenticated
// customers, most recent first.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	list, err := h.Svc.ListForUser(c.Request().Context(), uid)
	if err != nil {
		return respondReservationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": list})
}
