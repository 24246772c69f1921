package model

import "time"

// Order payment states as stored in orders.payment.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

// Order status values as stored in orders.status. The intended lifecycle is
// pending -> accepted -> completed, or pending -> cancelled. Only the
// complete transition is guarded (by the pickup code); accept and reject
// overwrite the status unconditionally.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Order is one row in the `orders` table. A multi-item checkout produces one
// row per cart line; the rows share a checkout-scoped UniqueCode but carry no
// other transaction identifier.
type Order struct {
	ID          uint64    // orders.order_id
	UserID      uint64    // orders.user_id
	FoodID      uint64    // orders.food_id
	FoodCourtID uint64    // orders.food_court_id
	Quantity    int64     // orders.quantity
	Payment     string    // orders.payment
	Status      string    // orders.status
	UniqueCode  string    // orders.unique_code (8 hex chars, shared per checkout)
	Date        time.Time // orders.date
}

// Favorite is a row in the `favorites` table. Note that the dashboard
// "favorites" ranking is derived from order history, not from this table;
// favorites rows only feed the saved-item and saved-restaurant counts.
type Favorite struct {
	ID          uint64 // favorites.id
	UserID      uint64 // favorites.user_id
	FoodItemID  uint64 // favorites.food_item_id
	FoodCourtID uint64 // favorites.food_court_id
}
