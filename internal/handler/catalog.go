package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SChakraborty04/KiitEats/internal/repository"
)

// CatalogHandler serves the read-only browse endpoints: the food court map,
// the explore pages and the cross-court item listing. Nothing here mutates
// state, which is why these routes sit behind the response cache.
type CatalogHandler struct {
	Courts    FoodCourtStore
	Inventory InventoryStore
}

func NewCatalogHandler(courts FoodCourtStore, inventory InventoryStore) *CatalogHandler {
	return &CatalogHandler{Courts: courts, Inventory: inventory}
}

// courtDetail is the explore detail shape: the court summary plus the
// constant opening hours.
type courtDetail struct {
	repository.CourtSummary
	Timings string `json:"timings"`
}

// ListFoodCourts handles GET /foodcourts.
func (h *CatalogHandler) ListFoodCourts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	courts, err := h.Courts.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch food courts"})
	}
	return c.JSON(http.StatusOK, echo.Map{"foodCourts": courts})
}

// ExploreFoodCourts handles GET /explore/foodcourts: all courts plus the
// deduplicated names of items ever ordered at each one.
func (h *CatalogHandler) ExploreFoodCourts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	courts, err := h.Courts.Explore(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"foodCourts": courts})
}

// ExploreFoodCourt handles GET /explore/foodcourt/:id: one court plus its
// current stock rows with item names and prices.
func (h *CatalogHandler) ExploreFoodCourt(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid food court id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	court, err := h.Courts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFoodCourtNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Food court not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}
	items, err := h.Inventory.CourtStock(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"foodCourt": courtDetail{CourtSummary: court, Timings: "8 AM - 8 PM"},
		"foodItems": items,
	})
}

// ExploreFoodItems handles GET /explore/fooditems?area=: every stock row
// joined to item and court, optionally filtered to one campus area.
func (h *CatalogHandler) ExploreFoodItems(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Inventory.ListByArea(ctx, c.QueryParam("area"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"foodItems": items})
}
