package repository

import (
	"context"
	"database/sql"
)

// FavoriteStat is one row of the derived favorites ranking: an item name and
// the total quantity the user has ever ordered of it. "Favorite" here is a
// metric over order history, not the favorites table.
type FavoriteStat struct {
	FoodName      string `json:"foodName"`
	TotalQuantity int64  `json:"totalQuantity"`
}

// UserStats is the single-row dashboard summary for one user.
type UserStats struct {
	TotalOrders      int64 `json:"totalOrders"`
	PendingOrders    int64 `json:"pendingOrders"`
	FavoriteItems    int64 `json:"favoriteItems"`
	SavedRestaurants int64 `json:"savedRestaurants"`
}

// DashboardRepo computes the read-only rollups behind the customer
// dashboard. Everything is keyed off the user's email; the user id is
// resolved inside the queries.
type DashboardRepo struct {
	db *sql.DB
}

func NewDashboardRepo(db *sql.DB) *DashboardRepo { return &DashboardRepo{db: db} }

// Favorites groups the user's order history by item name, sums the ordered
// quantities and ranks descending.
func (r *DashboardRepo) Favorites(ctx context.Context, mail string) ([]FavoriteStat, error) {
	const q = `SELECT fi.name, SUM(o.quantity) AS total_quantity
	           FROM orders o
	           JOIN user_otps u ON o.user_id = u.user_id
	           JOIN food_items fi ON o.food_id = fi.id
	           WHERE u.user_mail = ?
	           GROUP BY fi.name
	           ORDER BY total_quantity DESC`
	rows, err := r.db.QueryContext(ctx, q, mail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FavoriteStat
	for rows.Next() {
		var f FavoriteStat
		if err := rows.Scan(&f.FoodName, &f.TotalQuantity); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats returns the four dashboard counters in one round trip via correlated
// subqueries: total and pending orders, favorite rows, and the number of
// distinct courts appearing in the user's favorites.
func (r *DashboardRepo) Stats(ctx context.Context, mail string) (UserStats, error) {
	const q = `SELECT
	    (SELECT COUNT(*) FROM orders
	     WHERE user_id = (SELECT user_id FROM user_otps WHERE user_mail = ?)) AS total_orders,
	    (SELECT COUNT(*) FROM orders
	     WHERE user_id = (SELECT user_id FROM user_otps WHERE user_mail = ?) AND status = 'pending') AS pending_orders,
	    (SELECT COUNT(*) FROM favorites
	     WHERE user_id = (SELECT user_id FROM user_otps WHERE user_mail = ?)) AS favorite_items,
	    (SELECT COUNT(DISTINCT fc.id)
	     FROM favorites f
	     JOIN food_courts fc ON f.food_court_id = fc.id
	     WHERE f.user_id = (SELECT user_id FROM user_otps WHERE user_mail = ?)) AS saved_restaurants`
	var s UserStats
	err := r.db.QueryRowContext(ctx, q, mail, mail, mail, mail).Scan(
		&s.TotalOrders, &s.PendingOrders, &s.FavoriteItems, &s.SavedRestaurants)
	return s, err
}
