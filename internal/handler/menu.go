// This file defines handlers for the public menu API.  These routes let
// unauthenticated visitors browse categories and dishes while deciding
// whether to book; internal fields (activity flags, timestamps) are
// filtered from responses.

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// MenuHandler aggregates repositories needed for unauthenticated browsing.
type MenuHandler struct {
	Menu *repository.MenuRepo
}

func NewMenuHandler(m *repository.MenuRepo) *MenuHandler {
	return &MenuHandler{Menu: m}
}

// PublicCategory is a menu category exposed via the public API.
type PublicCategory struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PublicItem is a dish exposed via the public API.  Prices are integer
// cents; clients format for display.
type PublicItem struct {
	ID          uint64 `json:"id"`
	CategoryID  uint64 `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  uint32 `json:"price_cents"`
	ImageURL    string `json:"image_url,omitempty"`
	IsAvailable bool   `json:"is_available"`
}

// Categories handles GET /v1/menu/categories.
func (h *MenuHandler) Categories(c echo.Context) error {
	cats, err := h.Menu.ListCategories(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicCategory, 0, len(cats))
	for _, cat := range cats {
		out = append(out, PublicCategory{ID: cat.ID, Name: cat.Name, Description: cat.Description})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Items handles GET /v1/menu/items with an optional ?category= filter.
func (h *MenuHandler) Items(c echo.Context) error {
	var categoryID *uint64
	if raw := c.QueryParam("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category"})
		}
		categoryID = &id
	}
	return h.listItems(c, categoryID)
}

// ItemsByCategory handles GET /v1/menu/categories/:id/items.
func (h *MenuHandler) ItemsByCategory(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category"})
	}
	return h.listItems(c, &id)
}

func (h *MenuHandler) listItems(c echo.Context, categoryID *uint64) error {
	items, err := h.Menu.ListItems(c.Request().Context(), categoryID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicItem, 0, len(items))
	for _, it := range items {
		out = append(out, PublicItem{
			ID:          it.ID,
			CategoryID:  it.CategoryID,
			Name:        it.Name,
			Description: it.Description,
			PriceCents:  it.PriceCents,
			ImageURL:    it.ImageURL,
			IsAvailable: it.IsAvailable,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
