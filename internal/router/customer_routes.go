package router

import (
	"github.com/labstack/echo/v4"

	"github.com/SChakraborty04/KiitEats/internal/handler"
)

// RegisterCustomer registers the customer-facing API: OTP sign-in, the
// browse/explore catalog, checkout and the dashboard reads. Browse GETs go
// through the response cache; the two OTP endpoints go through the rate
// limiter so a single client cannot burn through mail quota.
func RegisterCustomer(e *echo.Echo, a *handler.AuthHandler, cat *handler.CatalogHandler, o *handler.OrderHandler, cache echo.MiddlewareFunc, rateLimit echo.MiddlewareFunc) {
	// OTP sign-in flow.
	e.POST("/signin", a.SignIn, rateLimit)
	e.POST("/verify-otp", a.VerifyOTP, rateLimit)
	e.GET("/user-info", a.UserInfo)

	// Catalog browsing. These are read-heavy and safe to cache briefly.
	e.GET("/foodcourts", cat.ListFoodCourts, cache)
	e.GET("/explore/foodcourts", cat.ExploreFoodCourts, cache)
	e.GET("/explore/foodcourt/:id", cat.ExploreFoodCourt, cache)
	e.GET("/explore/fooditems", cat.ExploreFoodItems, cache)

	// Checkout and the customer's own orders.
	e.POST("/orders", o.PlaceOrder)
	e.GET("/orders", o.ListOrders)

	// Dashboard widgets.
	e.GET("/dashboard/orders", o.ListOrders)
	e.GET("/dashboard/recent-orders", o.RecentOrders)
	e.GET("/dashboard/history", o.History)
	e.GET("/dashboard/open-orders", o.OpenOrders)
	e.GET("/dashboard/favorites", o.Favorites)
	e.GET("/dashboard/stats", o.Stats)
}
