package repository

import (
	"context"
	"database/sql"
)

// StockItem is one row of a court's menu as shown on the court detail page:
// the catalog item joined with the court's current stock level.
type StockItem struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// AreaStockItem is a stock row joined to both the item and its court, used by
// the cross-court item browser which can filter by campus area.
type AreaStockItem struct {
	ID            uint64  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Quantity      int64   `json:"quantity"`
	FoodCourtID   uint64  `json:"foodCourtId"`
	FoodCourtArea string  `json:"foodCourtArea"`
}

// InventoryRow is the vendor dashboard's view of a stock row.
type InventoryRow struct {
	Name     string `json:"name"`
	ID       uint64 `json:"id"`
	Quantity int64  `json:"quantity"`
}

// InventoryRepo encapsulates queries against food_items and
// food_item_quantities as the vendor dashboard and the explore pages see
// them. Checkout-time stock decrements live in OrderRepo because they are
// part of the checkout transaction.
type InventoryRepo struct {
	db *sql.DB
}

func NewInventoryRepo(db *sql.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// ListByCourt returns the stock rows of one court for the vendor dashboard.
func (r *InventoryRepo) ListByCourt(ctx context.Context, foodCourtID uint64) ([]InventoryRow, error) {
	const q = `SELECT fi.name, fi.id, fq.quantity
	           FROM food_item_quantities fq
	           JOIN food_items fi ON fq.food_item_id = fi.id
	           WHERE fq.food_court_id = ?`
	rows, err := r.db.QueryContext(ctx, q, foodCourtID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InventoryRow
	for rows.Next() {
		var it InventoryRow
		if err := rows.Scan(&it.Name, &it.ID, &it.Quantity); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CourtStock returns a court's menu with prices for the customer-facing
// court detail page.
func (r *InventoryRepo) CourtStock(ctx context.Context, foodCourtID uint64) ([]StockItem, error) {
	const q = `SELECT fi.id, fi.name, fi.price, fq.quantity
	           FROM food_item_quantities fq
	           JOIN food_items fi ON fq.food_item_id = fi.id
	           WHERE fq.food_court_id = ?`
	rows, err := r.db.QueryContext(ctx, q, foodCourtID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StockItem
	for rows.Next() {
		var it StockItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByArea returns every stock row joined to item and court, optionally
// restricted to a single campus area (exact match on food_courts.loc). An
// empty area returns everything.
func (r *InventoryRepo) ListByArea(ctx context.Context, area string) ([]AreaStockItem, error) {
	q := `SELECT fi.id, fi.name, fi.price, fq.quantity, fc.id, fc.loc
	      FROM food_item_quantities fq
	      JOIN food_items fi ON fq.food_item_id = fi.id
	      JOIN food_courts fc ON fq.food_court_id = fc.id`
	args := []interface{}{}
	if area != "" {
		q += ` WHERE fc.loc = ?`
		args = append(args, area)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AreaStockItem
	for rows.Next() {
		var it AreaStockItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Quantity, &it.FoodCourtID, &it.FoodCourtArea); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AddItem inserts a new global catalog item and the linking stock row for the
// court, atomically. Identical names added at different courts become
// distinct catalog rows; there is deliberately no lookup-or-create.
func (r *InventoryRepo) AddItem(ctx context.Context, foodCourtID uint64, name string, price float64, quantity int64) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `INSERT INTO food_items (name, price) VALUES (?, ?)`, name, price)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO food_item_quantities (food_item_id, food_court_id, quantity) VALUES (?, ?, ?)`,
		id, foodCourtID, quantity); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return uint64(id), nil
}

// SetQuantity sets the absolute stock level for an (item, court) pair and
// reports how many rows were affected. A missing pair affects zero rows and
// is not an error; the handler keeps the historical 200-on-no-op behavior.
func (r *InventoryRepo) SetQuantity(ctx context.Context, foodCourtID, foodItemID uint64, quantity int64) (int64, error) {
	const q = `UPDATE food_item_quantities SET quantity = ? WHERE food_item_id = ? AND food_court_id = ?`
	res, err := r.db.ExecContext(ctx, q, quantity, foodItemID, foodCourtID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
