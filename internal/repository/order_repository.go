package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// OrderLine is one cart entry at checkout: which item, at which court, how
// many.
type OrderLine struct {
	FoodItemID  uint64
	FoodCourtID uint64
	Quantity    int64
}

// OrderDetail is an order row joined to its item and court for customer
// display. The same shape serves all the user-facing order reads; they
// differ only in filter and ordering.
type OrderDetail struct {
	OrderID              uint64    `json:"orderid"`
	Quantity             int64     `json:"quantity"`
	Payment              string    `json:"payment"`
	Status               string    `json:"status"`
	UniqueCode           string    `json:"uniquecode"`
	Date                 time.Time `json:"date"`
	FoodName             string    `json:"foodName"`
	FoodCourtName        string    `json:"foodCourtName"`
	FoodCourtCoordinates string    `json:"foodCourtCoordinates"`
}

// VendorOrder is an order row as the fulfilling court sees it.
type VendorOrder struct {
	OrderID    uint64 `json:"orderid"`
	Quantity   int64  `json:"quantity"`
	Status     string `json:"status"`
	UniqueCode string `json:"uniquecode"`
	ItemName   string `json:"itemName"`
}

// OrderRepo encapsulates order placement, the customer read views and the
// vendor status transitions.
type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// PlaceOrder inserts one order row per cart line and decrements each line's
// stock row by the ordered quantity, all inside a single transaction: either
// every line lands or none do. Every row shares the caller-supplied pickup
// code. Stock is allowed to go negative; there is no floor check.
func (r *OrderRepo) PlaceOrder(ctx context.Context, userID uint64, lines []OrderLine, payment, status, uniqueCode string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const qInsert = `INSERT INTO orders (user_id, food_id, food_court_id, quantity, payment, status, unique_code)
	                 VALUES (?, ?, ?, ?, ?, ?, ?)`
	const qDecr = `UPDATE food_item_quantities SET quantity = quantity - ?
	               WHERE food_item_id = ? AND food_court_id = ?`
	for _, ln := range lines {
		if _, err = tx.ExecContext(ctx, qInsert,
			userID, ln.FoodItemID, ln.FoodCourtID, ln.Quantity, payment, status, uniqueCode); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, qDecr, ln.Quantity, ln.FoodItemID, ln.FoodCourtID); err != nil {
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

const orderDetailSelect = `SELECT o.order_id, o.quantity, o.payment, o.status, o.unique_code, o.date,
	       fi.name, fc.name, fc.coordinates
	FROM orders o
	JOIN user_otps u ON o.user_id = u.user_id
	JOIN food_items fi ON o.food_id = fi.id
	JOIN food_courts fc ON o.food_court_id = fc.id
	WHERE u.user_mail = ?`

func (r *OrderRepo) queryDetails(ctx context.Context, q string, args ...interface{}) ([]OrderDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderDetail
	for rows.Next() {
		var d OrderDetail
		if err := rows.Scan(&d.OrderID, &d.Quantity, &d.Payment, &d.Status, &d.UniqueCode, &d.Date,
			&d.FoodName, &d.FoodCourtName, &d.FoodCourtCoordinates); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUser returns all of a user's orders, newest first by date.
func (r *OrderRepo) ListByUser(ctx context.Context, mail string) ([]OrderDetail, error) {
	return r.queryDetails(ctx, orderDetailSelect+` ORDER BY o.date DESC`, mail)
}

// ListRecentByUser returns the newest orders by primary key, capped at limit.
func (r *OrderRepo) ListRecentByUser(ctx context.Context, mail string, limit int) ([]OrderDetail, error) {
	return r.queryDetails(ctx, orderDetailSelect+` ORDER BY o.order_id DESC LIMIT ?`, mail, limit)
}

// ListHistoryByUser returns orders that reached a terminal status.
func (r *OrderRepo) ListHistoryByUser(ctx context.Context, mail string) ([]OrderDetail, error) {
	return r.queryDetails(ctx,
		orderDetailSelect+` AND o.status IN ('completed', 'cancelled') ORDER BY o.date DESC`, mail)
}

// ListOpenByUser returns orders that are still in flight (pending or
// accepted), newest first.
func (r *OrderRepo) ListOpenByUser(ctx context.Context, mail string) ([]OrderDetail, error) {
	return r.queryDetails(ctx,
		orderDetailSelect+` AND o.status IN ('pending', 'accepted') ORDER BY o.date DESC`, mail)
}

// ListByCourt returns every order placed against one food court, joined to
// the item name for the fulfillment queue.
func (r *OrderRepo) ListByCourt(ctx context.Context, foodCourtID uint64) ([]VendorOrder, error) {
	const q = `SELECT o.order_id, o.quantity, o.status, o.unique_code, fi.name
	           FROM orders o
	           JOIN food_items fi ON o.food_id = fi.id
	           WHERE o.food_court_id = ?`
	rows, err := r.db.QueryContext(ctx, q, foodCourtID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []VendorOrder
	for rows.Next() {
		var v VendorOrder
		if err := rows.Scan(&v.OrderID, &v.Quantity, &v.Status, &v.UniqueCode, &v.ItemName); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Accept marks an order accepted. The order must exist, but its current
// status is not checked: re-accepting an already accepted (or even
// completed) order overwrites the status.
func (r *OrderRepo) Accept(ctx context.Context, orderID uint64) error {
	var id uint64
	err := r.db.QueryRowContext(ctx, `SELECT order_id FROM orders WHERE order_id = ?`, orderID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `UPDATE orders SET status = 'accepted' WHERE order_id = ?`, orderID)
	return err
}

// Reject marks an order cancelled. Mirroring the accept asymmetry of the
// dashboard it serves, there is no existence check: rejecting an unknown id
// affects zero rows and reports success.
func (r *OrderRepo) Reject(ctx context.Context, orderID uint64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE orders SET status = 'cancelled' WHERE order_id = ?`, orderID)
	return err
}

// Complete marks an order completed once the presented pickup code matches
// the stored one. ErrOrderNotFound when the id has no row, ErrCodeMismatch
// when the code differs; in both cases the row is untouched.
func (r *OrderRepo) Complete(ctx context.Context, orderID uint64, uniqueCode string) error {
	var stored string
	err := r.db.QueryRowContext(ctx, `SELECT unique_code FROM orders WHERE order_id = ?`, orderID).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	if stored != uniqueCode {
		return ErrCodeMismatch
	}
	_, err = r.db.ExecContext(ctx, `UPDATE orders SET status = 'completed' WHERE order_id = ?`, orderID)
	return err
}
