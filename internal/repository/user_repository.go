package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/SChakraborty04/KiitEats/internal/model"
)

// UserRepo encapsulates queries against the user_otps table, which serves
// both as the user identity record and the OTP credential store.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// UpsertOTP stores a freshly issued code for an email, creating the user row
// on first sign-in. The row is keyed uniquely by email, so repeated sign-ins
// overwrite the previous code instead of inserting duplicates.
func (r *UserRepo) UpsertOTP(ctx context.Context, mail, otp string, createdAt, expiresAt time.Time) error {
	mail = strings.ToLower(strings.TrimSpace(mail))
	const q = `INSERT INTO user_otps (user_mail, otp, created_at, expires_at)
	           VALUES (?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE otp = VALUES(otp), created_at = VALUES(created_at), expires_at = VALUES(expires_at)`
	_, err := r.db.ExecContext(ctx, q, mail, otp, createdAt, expiresAt)
	return err
}

// VerifyOTP succeeds only when a row exists with the given email, the exact
// code, and an expiry strictly in the future. The code stays valid until it
// expires or a new sign-in overwrites it; there is no single-use
// invalidation.
func (r *UserRepo) VerifyOTP(ctx context.Context, mail, otp string, now time.Time) error {
	mail = strings.ToLower(strings.TrimSpace(mail))
	const q = `SELECT user_id FROM user_otps WHERE user_mail = ? AND otp = ? AND expires_at > ? LIMIT 1`
	var id uint64
	if err := r.db.QueryRowContext(ctx, q, mail, otp, now).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidOTP
		}
		return err
	}
	return nil
}

// GetByMail fetches a user by normalized email. Returns ErrUserNotFound when
// no row exists.
func (r *UserRepo) GetByMail(ctx context.Context, mail string) (model.User, error) {
	mail = strings.ToLower(strings.TrimSpace(mail))
	const q = `SELECT user_id, user_mail, otp, created_at, expires_at FROM user_otps WHERE user_mail = ? LIMIT 1`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, mail).Scan(&u.ID, &u.Mail, &u.OTP, &u.CreatedAt, &u.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}
