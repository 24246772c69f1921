package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SChakraborty04/KiitEats/internal/repository"
)

func orderFixture(t *testing.T) (*fakeUserStore, *fakeInventoryStore, *fakeOrderStore, *fakePublisher, *OrderHandler) {
	t.Helper()
	users := newFakeUserStore()
	now := time.Now().UTC()
	require.NoError(t, users.UpsertOTP(context.Background(), "demo1@kiit.ac.in", "123456", now, now.Add(time.Hour)))

	inv := newFakeInventoryStore()
	orders := newFakeOrderStore(inv)
	pub := &fakePublisher{}
	h := NewOrderHandler(users, orders, &fakeDashboardStore{}, pub)
	return users, inv, orders, pub, h
}

func TestPlaceOrderRequiresMailAndItems(t *testing.T) {
	_, _, _, _, h := orderFixture(t)

	rec, out := doJSON(t, h.PlaceOrder, http.MethodPost, "/orders", `{"userMail":"demo1@kiit.ac.in","items":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User email and cart items are required", out["message"])

	rec, _ = doJSON(t, h.PlaceOrder, http.MethodPost, "/orders", `{"items":[{"id":1,"foodCourtId":1,"quantity":2}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaceOrderUnknownUser(t *testing.T) {
	_, _, _, _, h := orderFixture(t)

	rec, out := doJSON(t, h.PlaceOrder, http.MethodPost, "/orders",
		`{"userMail":"nobody@kiit.ac.in","items":[{"id":1,"foodCourtId":1,"quantity":2}]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", out["message"])
}

func TestPlaceOrderCreatesOneRowPerLineWithSharedCode(t *testing.T) {
	_, inv, orders, pub, h := orderFixture(t)
	item1, _ := inv.AddItem(context.Background(), 1, "Green Lays", 20, 10)
	item2, _ := inv.AddItem(context.Background(), 2, "Veg Roll", 40, 5)

	body := fmt.Sprintf(
		`{"userMail":"demo1@kiit.ac.in","items":[{"id":%d,"foodCourtId":1,"quantity":3},{"id":%d,"foodCourtId":2,"quantity":1}],"payment":"pending","status":"pending"}`,
		item1, item2)
	rec, out := doJSON(t, h.PlaceOrder, http.MethodPost, "/orders", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Order placed successfully", out["message"])

	require.Len(t, orders.orders, 2)
	assert.Equal(t, orders.orders[0].uniqueCode, orders.orders[1].uniqueCode)
	assert.Len(t, orders.orders[0].uniqueCode, 8)

	// Each line decremented its own stock row.
	assert.Equal(t, int64(7), inv.stock[stockKey{item: item1, court: 1}])
	assert.Equal(t, int64(4), inv.stock[stockKey{item: item2, court: 2}])

	// One event per checkout, carrying both lines.
	require.Len(t, pub.events, 1)
	assert.Len(t, pub.events[0].Lines, 2)
	assert.Equal(t, orders.orders[0].uniqueCode, pub.events[0].UniqueCode)
}

func TestPlaceOrderDistinctCheckoutsGetDistinctCodes(t *testing.T) {
	_, inv, orders, _, h := orderFixture(t)
	item, _ := inv.AddItem(context.Background(), 1, "Green Lays", 20, 100)

	body := fmt.Sprintf(`{"userMail":"demo1@kiit.ac.in","items":[{"id":%d,"foodCourtId":1,"quantity":1}]}`, item)
	rec, _ := doJSON(t, h.PlaceOrder, http.MethodPost, "/orders", body)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = doJSON(t, h.PlaceOrder, http.MethodPost, "/orders", body)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, orders.orders, 2)
	assert.NotEqual(t, orders.orders[0].uniqueCode, orders.orders[1].uniqueCode)
}

func TestPlaceOrderSurvivesPublisherFailure(t *testing.T) {
	_, inv, orders, pub, h := orderFixture(t)
	pub.err = fmt.Errorf("broker down")
	item, _ := inv.AddItem(context.Background(), 1, "Green Lays", 20, 10)

	body := fmt.Sprintf(`{"userMail":"demo1@kiit.ac.in","items":[{"id":%d,"foodCourtId":1,"quantity":1}]}`, item)
	rec, out := doJSON(t, h.PlaceOrder, http.MethodPost, "/orders", body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Order placed successfully", out["message"])
	assert.Len(t, orders.orders, 1)
}

func TestOrderReadsRequireUserMail(t *testing.T) {
	_, _, _, _, h := orderFixture(t)

	for name, fn := range map[string]func() (int, any){
		"orders":        func() (int, any) { rec, out := doJSON(t, h.ListOrders, http.MethodGet, "/orders", ""); return rec.Code, out["message"] },
		"recent-orders": func() (int, any) { rec, out := doJSON(t, h.RecentOrders, http.MethodGet, "/dashboard/recent-orders", ""); return rec.Code, out["message"] },
		"history":       func() (int, any) { rec, out := doJSON(t, h.History, http.MethodGet, "/dashboard/history", ""); return rec.Code, out["message"] },
		"open-orders":   func() (int, any) { rec, out := doJSON(t, h.OpenOrders, http.MethodGet, "/dashboard/open-orders", ""); return rec.Code, out["message"] },
		"favorites":     func() (int, any) { rec, out := doJSON(t, h.Favorites, http.MethodGet, "/dashboard/favorites", ""); return rec.Code, out["message"] },
		"stats":         func() (int, any) { rec, out := doJSON(t, h.Stats, http.MethodGet, "/dashboard/stats", ""); return rec.Code, out["message"] },
	} {
		t.Run(name, func(t *testing.T) {
			code, msg := fn()
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, "User email is required", msg)
		})
	}
}

func TestHistoryAndOpenOrdersSplitByStatus(t *testing.T) {
	users, inv, orders, _, h := orderFixture(t)
	item, _ := inv.AddItem(context.Background(), 1, "Green Lays", 20, 100)
	u, err := users.GetByMail(context.Background(), "demo1@kiit.ac.in")
	require.NoError(t, err)

	lines := []repository.OrderLine{{FoodItemID: item, FoodCourtID: 1, Quantity: 1}}
	require.NoError(t, orders.PlaceOrder(context.Background(), u.ID, lines, "pending", "pending", "aaaa1111"))
	require.NoError(t, orders.PlaceOrder(context.Background(), u.ID, lines, "completed", "completed", "bbbb2222"))
	require.NoError(t, orders.PlaceOrder(context.Background(), u.ID, lines, "pending", "cancelled", "cccc3333"))

	rec, out := doJSON(t, h.History, http.MethodGet, "/dashboard/history?userMail=demo1@kiit.ac.in", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, out["history"], 2)

	rec, out = doJSON(t, h.OpenOrders, http.MethodGet, "/dashboard/open-orders?userMail=demo1@kiit.ac.in", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, out["orders"], 1)
}

func TestStatsAndFavoritesPassThrough(t *testing.T) {
	users := newFakeUserStore()
	dash := &fakeDashboardStore{
		favorites: []repository.FavoriteStat{{FoodName: "Green Lays", TotalQuantity: 7}},
		stats:     repository.UserStats{TotalOrders: 4, PendingOrders: 1, FavoriteItems: 2, SavedRestaurants: 3},
	}
	h := NewOrderHandler(users, newFakeOrderStore(nil), dash, &fakePublisher{})

	rec, out := doJSON(t, h.Favorites, http.MethodGet, "/dashboard/favorites?userMail=demo1@kiit.ac.in", "")
	require.Equal(t, http.StatusOK, rec.Code)
	favs, ok := out["favorites"].([]any)
	require.True(t, ok)
	require.Len(t, favs, 1)
	assert.Equal(t, "Green Lays", favs[0].(map[string]any)["foodName"])

	rec, out = doJSON(t, h.Stats, http.MethodGet, "/dashboard/stats?userMail=demo1@kiit.ac.in", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats, ok := out["stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(4), stats["totalOrders"])
}
