package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SChakraborty04/KiitEats/internal/repository"
	"github.com/SChakraborty04/KiitEats/internal/utils"
)

// VendorHandler serves the food-court dashboard: login, order management and
// inventory maintenance.
type VendorHandler struct {
	Courts    FoodCourtStore
	Orders    OrderStore
	Inventory InventoryStore

	JWTSecret  string
	TokenTTL   int
	BcryptCost int
}

func NewVendorHandler(courts FoodCourtStore, orders OrderStore, inventory InventoryStore, jwtSecret string, tokenTTLMin, bcryptCost int) *VendorHandler {
	return &VendorHandler{
		Courts:     courts,
		Orders:     orders,
		Inventory:  inventory,
		JWTSecret:  jwtSecret,
		TokenTTL:   tokenTTLMin,
		BcryptCost: bcryptCost,
	}
}

type loginReq struct {
	FCID     uint64 `json:"fcid"`
	Password string `json:"password"`
}

type acceptReq struct {
	OrderID uint64 `json:"orderid"`
}

type completeReq struct {
	OrderID    uint64 `json:"orderid"`
	UniqueCode string `json:"uniquecode"`
}

type addItemReq struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

type updateQuantityReq struct {
	FoodItemID uint64 `json:"fooditemId"`
	Quantity   int64  `json:"quantity"`
}

// Login handles POST /login. Credentials are checked against the per-court
// bcrypt hash; a successful login also returns a short-lived vendor token.
func (h *VendorHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid Food Court ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	name, hash, err := h.Courts.GetCredential(ctx, req.FCID)
	if err != nil {
		if errors.Is(err, repository.ErrFoodCourtNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid Food Court ID"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	if !utils.VerifyPassword(hash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Incorrect Password"})
	}

	tok, err := utils.NewVendorToken(h.JWTSecret, req.FCID, h.TokenTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to issue token"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"fcid":    req.FCID,
		"name":    name,
		"token":   tok.Token,
	})
}

// Profile handles GET /vendor/profile. The court id comes from the verified
// token, not the request.
func (h *VendorHandler) Profile(c echo.Context) error {
	sub, ok := c.Get("food_court_id").(float64)
	if !ok || sub <= 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token subject"})
	}
	fcid := uint64(sub)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	court, err := h.Courts.GetByID(ctx, fcid)
	if err != nil {
		if errors.Is(err, repository.ErrFoodCourtNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Food court not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"foodCourt": court})
}

type changePasswordReq struct {
	Password string `json:"password"`
}

// ChangePassword handles POST /vendor/change-password: replaces the court's
// stored credential with a hash of the new secret. The court comes from the
// verified token.
func (h *VendorHandler) ChangePassword(c echo.Context) error {
	sub, ok := c.Get("food_court_id").(float64)
	if !ok || sub <= 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token subject"})
	}
	fcid := uint64(sub)

	var req changePasswordReq
	if err := c.Bind(&req); err != nil || len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Password of at least 8 characters is required"})
	}

	hash, err := utils.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update password"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Courts.SetCredential(ctx, fcid, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update password"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated successfully"})
}

// CourtOrders handles GET /orders/:fcid: every order placed against the
// court, as a bare array.
func (h *VendorHandler) CourtOrders(c echo.Context) error {
	fcid, err := strconv.ParseUint(c.Param("fcid"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid food court ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	orders, err := h.Orders.ListByCourt(ctx, fcid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch orders"})
	}
	return c.JSON(http.StatusOK, orders)
}

// CourtInventory handles GET /inventory/:fcid as a bare array.
func (h *VendorHandler) CourtInventory(c echo.Context) error {
	fcid, err := strconv.ParseUint(c.Param("fcid"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid food court ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Inventory.ListByCourt(ctx, fcid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Database error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// Accept handles POST /orders/accept. The order must exist; any existing
// status is overwritten with accepted.
func (h *VendorHandler) Accept(c echo.Context) error {
	var req acceptReq
	if err := c.Bind(&req); err != nil || req.OrderID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Order ID is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Orders.Accept(ctx, req.OrderID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to accept order"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Order accepted successfully"})
}

// Reject handles POST /orders/reject. Unlike Accept there is no existence
// check: rejecting an unknown id is a successful no-op.
func (h *VendorHandler) Reject(c echo.Context) error {
	var req acceptReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Order ID is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Orders.Reject(ctx, req.OrderID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to reject order"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Order rejected successfully"})
}

// Complete handles POST /orders/complete. The pickup code is the only
// guard; the caller's court is never checked.
func (h *VendorHandler) Complete(c echo.Context) error {
	var req completeReq
	if err := c.Bind(&req); err != nil || req.OrderID == 0 || req.UniqueCode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Order ID and unique code are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Orders.Complete(ctx, req.OrderID, req.UniqueCode); err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		case errors.Is(err, repository.ErrCodeMismatch):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid unique code"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to complete order"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Order completed successfully"})
}

// AddInventory handles POST /inventory/:fcid/add: creates the item and links
// it to the court in one transaction.
func (h *VendorHandler) AddInventory(c echo.Context) error {
	fcid, err := strconv.ParseUint(c.Param("fcid"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid food court ID"})
	}

	var req addItemReq
	if err := c.Bind(&req); err != nil || req.Name == "" || req.Price == 0 || req.Quantity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Name, price, and quantity are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Inventory.AddItem(ctx, fcid, req.Name, req.Price, req.Quantity); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to add item"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Item added to inventory successfully"})
}

// UpdateInventory handles PUT /inventory/:fcid/update. A quantity update
// that matches no row still reports success.
func (h *VendorHandler) UpdateInventory(c echo.Context) error {
	fcid, err := strconv.ParseUint(c.Param("fcid"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid food court ID"})
	}

	var req updateQuantityReq
	if err := c.Bind(&req); err != nil || req.FoodItemID == 0 || req.Quantity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Food item ID and quantity are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Inventory.SetQuantity(ctx, fcid, req.FoodItemID, req.Quantity); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update quantity"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Quantity updated successfully"})
}
