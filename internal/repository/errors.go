// Package repository contains data access logic separated from HTTP handlers.
// This file defines sentinel error values shared across repositories so that
// handlers can translate failure scenarios into the right HTTP status without
// inspecting SQL errors themselves.
package repository

import "errors"

// ErrUserNotFound is returned when no user row exists for an email address.
// Handlers translate this into HTTP 404.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidOTP is returned by VerifyOTP when no row matches the email, the
// code, and a future expiry. The caller cannot tell which of the three
// failed; handlers respond 400 with a generic message.
var ErrInvalidOTP = errors.New("invalid or expired otp")

// ErrFoodCourtNotFound is returned when a food court id has no row.
var ErrFoodCourtNotFound = errors.New("food court not found")

// ErrOrderNotFound is returned when an order id has no row.
var ErrOrderNotFound = errors.New("order not found")

// ErrCodeMismatch is returned by Complete when the presented pickup code does
// not equal the stored one. The order keeps its current status.
var ErrCodeMismatch = errors.New("unique code mismatch")
