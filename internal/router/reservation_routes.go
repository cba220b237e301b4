package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// RegisterReservations registers the booking endpoints under /v1.
// Create, get, update and cancel run behind OptionalJWTAuth: guests
// book with contact details alone and prove ownership later with the
// confirmation code, while signed-in customers get the booking tied
// to their account.  Only the listing endpoint requires a session.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.OptionalJWTAuth(jwtSecret))
	g.POST("/reservations", h.Create)
	g.GET("/reservations/:id", h.Get)
	g.PATCH("/reservations/:id", h.Update)
	g.DELETE("/reservations/:id", h.Cancel)

	mine := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer, model.RoleStaff),
	)
	mine.GET("/my-reservations", h.ListMine)
}
