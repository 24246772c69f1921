package model

import "time"

// User represents a row in the `user_otps` table. The table doubles as the
// identity record and the OTP credential store: there is no separate session
// or password concept for customers. Rows are created on first sign-in and
// updated in place every time a new code is requested.
//
// Fields:
//  ID        – primary key identifier of the user (user_otps.user_id).
//  Mail      – unique email address the OTP is delivered to.
//  OTP       – the most recently issued 6-digit code.
//  CreatedAt – when the current code was issued.
//  ExpiresAt – when the current code stops being accepted.
type User struct {
	ID        uint64    // user_otps.user_id
	Mail      string    // user_otps.user_mail
	OTP       string    // user_otps.otp
	CreatedAt time.Time // user_otps.created_at
	ExpiresAt time.Time // user_otps.expires_at
}
