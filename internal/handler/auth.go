package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SChakraborty04/KiitEats/internal/repository"
	"github.com/SChakraborty04/KiitEats/internal/utils"
)

// AuthHandler implements the passwordless sign-in flow: request a code,
// verify it, look up the signed-in user. The user row doubles as the OTP
// record, so sign-in is an upsert keyed by email.
type AuthHandler struct {
	Users UserStore
	Mail  Mailer
}

func NewAuthHandler(users UserStore, mail Mailer) *AuthHandler {
	return &AuthHandler{Users: users, Mail: mail}
}

// otpTTL is how long an issued code is accepted.
const otpTTL = time.Hour

type signInReq struct {
	UserMail string `json:"userMail"`
}
type verifyReq struct {
	UserMail string `json:"userMail"`
	OTP      string `json:"otp"`
}
type userInfo struct {
	UserID   uint64 `json:"userId"`
	UserMail string `json:"userMail"`
}

// SignIn handles POST /signin. It generates a fresh 6-digit code with a
// one-hour expiry, upserts it into the user row (creating the user on first
// sign-in) and emails it. A repeated sign-in overwrites the previous code.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email is required"})
	}
	mail := strings.ToLower(strings.TrimSpace(req.UserMail))
	if mail == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email is required"})
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	now := time.Now().UTC()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpsertOTP(ctx, mail, otp, now, now.Add(otpTTL)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}
	if err := h.Mail.SendOTP(ctx, mail, otp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to send OTP"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "OTP generated and sent successfully"})
}

// VerifyOTP handles POST /verify-otp. Success requires an exact code match
// and an expiry strictly in the future. A verified code is not invalidated;
// it stays usable until it expires or is overwritten.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email and OTP are required"})
	}
	mail := strings.ToLower(strings.TrimSpace(req.UserMail))
	if mail == "" || req.OTP == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email and OTP are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.VerifyOTP(ctx, mail, req.OTP, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrInvalidOTP) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or expired OTP"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "OTP verified successfully"})
}

// UserInfo handles GET /user-info?userMail=.
func (h *AuthHandler) UserInfo(c echo.Context) error {
	mail := strings.TrimSpace(c.QueryParam("userMail"))
	if mail == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "User email is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByMail(ctx, mail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": userInfo{UserID: u.ID, UserMail: u.Mail}})
}
