package database

import (
	"context"
	"database/sql"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates an empty database with the campus reference data: food
// courts, the global item catalog, per-court stock, demo users, sample
// favorites and orders, and one vendor credential row per court. It is a
// no-op when food_courts already has rows, so restarts never duplicate data.
func Seed(ctx context.Context, db *sql.DB, vendorPassword string, bcryptCost int) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM food_courts`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	foodCourts := []struct {
		name, loc, coordinates string
	}{
		{"Food court 1", "QC enclave", "20.352682034437876, 85.81917948767007"},
		{"Food court 2", "Mechanical", "20.352157737184907, 85.81976216860303"},
		{"Food court 3", "Law", "20.362261582040848, 85.82316449561576"},
		{"Food court 4", "KP7", "20.350916691832182, 85.81591689311402"},
		{"Food court 6", "Civil", "20.353531149925736, 85.8179594628798"},
		{"Food court 7", "CSE", "20.349210635922113, 85.81566558852401"},
		{"Food court 8", "Electronics", "20.357345720828132, 85.81990989561565"},
		{"Food court 9", "MBA", "20.34939167293087, 85.82018836977099"},
		{"Food court 10", "KIMS", "20.3512417482653, 85.81414119008953"},
	}
	for _, fc := range foodCourts {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO food_courts (name, loc, coordinates) VALUES (?, ?, ?)`,
			fc.name, fc.loc, fc.coordinates); err != nil {
			return err
		}
	}

	foodItems := []struct {
		name  string
		price float64
	}{
		{"Green Lays", 20}, {"Blue Lays", 20}, {"Coffee", 30}, {"Tea", 20},
		{"Hot Chocolate", 50}, {"Chicken Patties", 40}, {"Paneer Patties", 35},
		{"Brownies", 60}, {"Cup Cakes", 50}, {"Caffe Mocha", 70}, {"Cold Coffee", 60},
	}
	for _, fi := range foodItems {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO food_items (name, price) VALUES (?, ?)`, fi.name, fi.price); err != nil {
			return err
		}
	}

	quantities := [][3]int64{
		{1, 1, 50}, {1, 2, 30}, {2, 3, 40}, {3, 4, 100}, {4, 5, 80}, {5, 6, 30},
		{6, 7, 25}, {7, 8, 20}, {8, 9, 15}, {9, 1, 10}, {10, 2, 12}, {11, 3, 18},
	}
	for _, q := range quantities {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO food_item_quantities (food_item_id, food_court_id, quantity) VALUES (?, ?, ?)`,
			q[0], q[1], q[2]); err != nil {
			return err
		}
	}

	// Two demo users so the sample orders and favorites below satisfy their
	// foreign keys. The seeded codes are already expired.
	now := time.Now().UTC()
	expired := now.Add(-time.Hour)
	for _, mail := range []string{"demo1@kiit.ac.in", "demo2@kiit.ac.in"} {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO user_otps (user_mail, otp, created_at, expires_at) VALUES (?, ?, ?, ?)`,
			mail, "000000", expired, expired); err != nil {
			return err
		}
	}

	favorites := [][3]int64{{1, 1, 1}, {1, 2, 3}, {2, 3, 4}, {2, 4, 5}}
	for _, f := range favorites {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO favorites (user_id, food_item_id, food_court_id) VALUES (?, ?, ?)`,
			f[0], f[1], f[2]); err != nil {
			return err
		}
	}

	orders := []struct {
		userID, foodID, courtID, quantity int64
		payment, status, code, date       string
	}{
		{1, 1, 1, 2, "completed", "accepted", "123456", "2025-03-26 10:00:00"},
		{2, 2, 3, 4, "pending", "pending", "654321", "2025-03-26 11:00:00"},
		{1, 5, 6, 1, "completed", "completed", "789012", "2025-03-26 12:00:00"},
		{2, 7, 8, 3, "pending", "cancelled", "345678", "2025-03-26 13:00:00"},
	}
	for _, o := range orders {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO orders (user_id, food_id, food_court_id, quantity, payment, status, unique_code, date)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			o.userID, o.foodID, o.courtID, o.quantity, o.payment, o.status, o.code, o.date); err != nil {
			return err
		}
	}

	// Every court starts with the same default password; staff can be given
	// distinct secrets later by updating their credential row.
	hash, err := bcrypt.GenerateFromPassword([]byte(vendorPassword), bcryptCost)
	if err != nil {
		return err
	}
	for i := range foodCourts {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO food_court_credentials (food_court_id, password_hash) VALUES (?, ?)`,
			i+1, string(hash)); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
