package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
)

// RegisterPublic registers the unauthenticated browse endpoints: the
// menu and the availability queries a visitor checks before booking.
// No JWT or role middleware applies here; the optional mw slice is for
// response caching, since these are the hottest read-only routes.
func RegisterPublic(e *echo.Echo, m *handler.MenuHandler, av *handler.AvailabilityHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)

	g.GET("/menu/categories", m.Categories)
	g.GET("/menu/categories/:id/items", m.ItemsByCategory)
	g.GET("/menu/items", m.Items)

	// Per-slot table counts for a day, and the concrete tables free at
	// one start time ranked best fit first.
	g.GET("/availability", av.Slots)
	g.GET("/tables", av.Tables)
}
