// This file defines the FoodCourt repository: read-only catalog lookups plus
// the per-court vendor credential check. Food courts are static reference
// data seeded at startup; only the credential rows are ever updated.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// CourtSummary is the wire shape for food court listings. `loc` is aliased to
// `location` for the map view on the customer frontend.
type CourtSummary struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Coordinates string `json:"coordinates"`
}

// ExploreCourt extends CourtSummary with the constant opening hours and the
// deduplicated list of item names ever ordered at the court. PopularItems is
// derived from historical orders, not current stock, so a court with no
// orders yet has a null entry.
type ExploreCourt struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Coordinates  string  `json:"coordinates"`
	Timings      string  `json:"timings"`
	PopularItems *string `json:"popularItems"`
}

// FoodCourtRepo encapsulates all database queries related to food courts.
type FoodCourtRepo struct {
	db *sql.DB
}

func NewFoodCourtRepo(db *sql.DB) *FoodCourtRepo { return &FoodCourtRepo{db: db} }

// ListAll returns all food courts with id, name, location and coordinates,
// ordered by id. Used by the customer map view.
func (r *FoodCourtRepo) ListAll(ctx context.Context) ([]CourtSummary, error) {
	const q = `SELECT id, name, loc, coordinates FROM food_courts ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CourtSummary
	for rows.Next() {
		var c CourtSummary
		if err := rows.Scan(&c.ID, &c.Name, &c.Location, &c.Coordinates); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches one food court. Returns ErrFoodCourtNotFound when the id
// has no row.
func (r *FoodCourtRepo) GetByID(ctx context.Context, id uint64) (CourtSummary, error) {
	const q = `SELECT id, name, loc, coordinates FROM food_courts WHERE id = ?`
	var c CourtSummary
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Location, &c.Coordinates)
	if errors.Is(err, sql.ErrNoRows) {
		return CourtSummary{}, ErrFoodCourtNotFound
	}
	return c, err
}

// Explore returns all courts together with the comma-joined, deduplicated
// names of items that have ever been ordered at each court. Timings is a
// constant for every court.
func (r *FoodCourtRepo) Explore(ctx context.Context) ([]ExploreCourt, error) {
	const q = `SELECT fc.id, fc.name, fc.loc, fc.coordinates,
	                  '8 AM - 8 PM' AS timings,
	                  GROUP_CONCAT(DISTINCT fi.name) AS popular_items
	           FROM food_courts fc
	           LEFT JOIN orders o ON fc.id = o.food_court_id
	           LEFT JOIN food_items fi ON o.food_id = fi.id
	           GROUP BY fc.id, fc.name, fc.loc, fc.coordinates
	           ORDER BY fc.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExploreCourt
	for rows.Next() {
		var c ExploreCourt
		var popular sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Location, &c.Coordinates, &c.Timings, &popular); err != nil {
			return nil, err
		}
		if popular.Valid {
			p := popular.String
			c.PopularItems = &p
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCredential loads the court name and stored bcrypt hash for a vendor
// login attempt. ErrFoodCourtNotFound covers both a missing court and a
// court that never had a credential row, so login failures do not reveal
// which one it was.
func (r *FoodCourtRepo) GetCredential(ctx context.Context, id uint64) (name, passwordHash string, err error) {
	const q = `SELECT fc.name, cr.password_hash
	           FROM food_courts fc
	           JOIN food_court_credentials cr ON cr.food_court_id = fc.id
	           WHERE fc.id = ?`
	err = r.db.QueryRowContext(ctx, q, id).Scan(&name, &passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrFoodCourtNotFound
	}
	return name, passwordHash, err
}

// SetCredential replaces the stored credential hash for a court. Used by
// operators to rotate a court's password away from the seeded default.
func (r *FoodCourtRepo) SetCredential(ctx context.Context, id uint64, passwordHash string) error {
	const q = `INSERT INTO food_court_credentials (food_court_id, password_hash)
	           VALUES (?, ?)
	           ON DUPLICATE KEY UPDATE password_hash = VALUES(password_hash)`
	_, err := r.db.ExecContext(ctx, q, id, passwordHash)
	return err
}
