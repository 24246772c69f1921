package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SChakraborty04/KiitEats/internal/model"
	"github.com/SChakraborty04/KiitEats/internal/queue"
	"github.com/SChakraborty04/KiitEats/internal/repository"
	"github.com/SChakraborty04/KiitEats/internal/utils"
)

// OrderHandler implements checkout and every customer-facing order read,
// including the dashboard rollups.
type OrderHandler struct {
	Users     UserStore
	Orders    OrderStore
	Dashboard DashboardStore
	Publisher OrderEventPublisher
}

func NewOrderHandler(users UserStore, orders OrderStore, dashboard DashboardStore, publisher OrderEventPublisher) *OrderHandler {
	return &OrderHandler{Users: users, Orders: orders, Dashboard: dashboard, Publisher: publisher}
}

type cartItem struct {
	ID          uint64 `json:"id"`
	FoodCourtID uint64 `json:"foodCourtId"`
	Quantity    int64  `json:"quantity"`
}
type placeOrderReq struct {
	UserMail string     `json:"userMail"`
	Items    []cartItem `json:"items"`
	Payment  string     `json:"payment"`
	Status   string     `json:"status"`
}

// recentOrdersLimit caps the dashboard's recent-orders widget.
const recentOrdersLimit = 5

// PlaceOrder handles POST /orders. One checkout becomes one order row per
// cart line, all sharing a fresh 8-hex pickup code, with each line's stock
// row decremented in the same transaction. After the commit an order.placed
// event is published; publish failures do not fail the checkout.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	var req placeOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User email and cart items are required"})
	}
	mail := strings.ToLower(strings.TrimSpace(req.UserMail))
	if mail == "" || len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User email and cart items are required"})
	}
	payment := req.Payment
	if payment == "" {
		payment = model.PaymentPending
	}
	status := req.Status
	if status == "" {
		status = model.StatusPending
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByMail(ctx, mail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}

	code, err := utils.NewOrderCode()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to place order"})
	}

	lines := make([]repository.OrderLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, repository.OrderLine{
			FoodItemID:  it.ID,
			FoodCourtID: it.FoodCourtID,
			Quantity:    it.Quantity,
		})
	}
	if err := h.Orders.PlaceOrder(ctx, u.ID, lines, payment, status, code); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to place order"})
	}

	if h.Publisher != nil {
		ev := queue.OrderPlacedEvent{
			UserID:     u.ID,
			UserMail:   mail,
			UniqueCode: code,
			Payment:    payment,
			Status:     status,
			PlacedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		for _, ln := range lines {
			ev.Lines = append(ev.Lines, queue.OrderLineEvent{
				FoodItemID:  ln.FoodItemID,
				FoodCourtID: ln.FoodCourtID,
				Quantity:    ln.Quantity,
			})
		}
		_ = h.Publisher.PublishOrderPlaced(ctx, ev)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Order placed successfully"})
}

// requireMail pulls the userMail query parameter shared by every order read.
func requireMail(c echo.Context) (string, bool) {
	mail := strings.TrimSpace(c.QueryParam("userMail"))
	return mail, mail != ""
}

// ListOrders handles GET /orders and GET /dashboard/orders: all of the
// user's orders, newest first.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	mail, ok := requireMail(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User email is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	orders, err := h.Orders.ListByUser(ctx, mail)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch orders"})
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// RecentOrders handles GET /dashboard/recent-orders: the newest five.
func (h *OrderHandler) RecentOrders(c echo.Context) error {
	mail, ok := requireMail(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User email is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	orders, err := h.Orders.ListRecentByUser(ctx, mail, recentOrdersLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"recentOrders": orders})
}

// History handles GET /dashboard/history: completed and cancelled orders.
func (h *OrderHandler) History(c echo.Context) error {
	mail, ok := requireMail(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User email is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	orders, err := h.Orders.ListHistoryByUser(ctx, mail)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"history": orders})
}

// OpenOrders handles GET /dashboard/open-orders: orders still pending or
// accepted.
func (h *OrderHandler) OpenOrders(c echo.Context) error {
	mail, ok := requireMail(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User email is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	orders, err := h.Orders.ListOpenByUser(ctx, mail)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// Favorites handles GET /dashboard/favorites: the user's order history
// grouped by item and ranked by total quantity.
func (h *OrderHandler) Favorites(c echo.Context) error {
	mail, ok := requireMail(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User email is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	favs, err := h.Dashboard.Favorites(ctx, mail)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"favorites": favs})
}

// Stats handles GET /dashboard/stats: the four dashboard counters.
func (h *OrderHandler) Stats(c echo.Context) error {
	mail, ok := requireMail(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User email is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, err := h.Dashboard.Stats(ctx, mail)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": stats})
}
