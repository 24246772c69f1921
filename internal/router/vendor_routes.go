package router

import (
	"github.com/labstack/echo/v4"

	"github.com/SChakraborty04/KiitEats/internal/handler"
	"github.com/SChakraborty04/KiitEats/internal/middleware"
)

// RegisterVendor registers the food-court dashboard API.  Login issues a
// vendor JWT; /vendor/profile requires it, while the order and inventory
// endpoints remain keyed by the fcid the dashboard already holds.
func RegisterVendor(e *echo.Echo, v *handler.VendorHandler, jwtSecret string) {
	e.POST("/login", v.Login)

	g := e.Group(
		"/vendor",
		middleware.VendorAuth(jwtSecret),
		middleware.RequireRole("VENDOR"),
	)
	g.GET("/profile", v.Profile)
	g.POST("/change-password", v.ChangePassword)

	// Order management for a court.
	e.GET("/orders/:fcid", v.CourtOrders)
	e.POST("/orders/accept", v.Accept)
	e.POST("/orders/reject", v.Reject)
	e.POST("/orders/complete", v.Complete)

	// Inventory maintenance.
	e.GET("/inventory/:fcid", v.CourtInventory)
	e.POST("/inventory/:fcid/add", v.AddInventory)
	e.PUT("/inventory/:fcid/update", v.UpdateInventory)
}
