package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h(c))

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}

// newParamRequest builds the pieces for handlers that read path parameters;
// callers set the params on the context themselves.
func newParamRequest(method, target, body string) (*echo.Echo, *http.Request, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return e, req, httptest.NewRecorder()
}

func TestSignInRequiresEmail(t *testing.T) {
	h := NewAuthHandler(newFakeUserStore(), &fakeMailer{})

	rec, out := doJSON(t, h.SignIn, http.MethodPost, "/signin", `{"userMail":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email is required", out["message"])
}

func TestSignInGeneratesAndMailsCode(t *testing.T) {
	users := newFakeUserStore()
	mail := &fakeMailer{}
	h := NewAuthHandler(users, mail)

	rec, out := doJSON(t, h.SignIn, http.MethodPost, "/signin", `{"userMail":"Demo1@kiit.ac.in"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OTP generated and sent successfully", out["message"])

	u, err := users.GetByMail(context.Background(), "demo1@kiit.ac.in")
	require.NoError(t, err)
	assert.Len(t, u.OTP, 6)
	assert.True(t, u.ExpiresAt.After(time.Now()))

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "demo1@kiit.ac.in:"+u.OTP, mail.sent[0])
}

func TestSignInUpsertsExistingUser(t *testing.T) {
	users := newFakeUserStore()
	h := NewAuthHandler(users, &fakeMailer{})

	rec, _ := doJSON(t, h.SignIn, http.MethodPost, "/signin", `{"userMail":"demo1@kiit.ac.in"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	first, err := users.GetByMail(context.Background(), "demo1@kiit.ac.in")
	require.NoError(t, err)

	rec, _ = doJSON(t, h.SignIn, http.MethodPost, "/signin", `{"userMail":"demo1@kiit.ac.in"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	second, err := users.GetByMail(context.Background(), "demo1@kiit.ac.in")
	require.NoError(t, err)

	// Same row, new code.
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, users.users, 1)
}

func TestVerifyOTP(t *testing.T) {
	users := newFakeUserStore()
	h := NewAuthHandler(users, &fakeMailer{})
	now := time.Now().UTC()
	require.NoError(t, users.UpsertOTP(context.Background(), "demo1@kiit.ac.in", "123456", now, now.Add(time.Hour)))

	rec, out := doJSON(t, h.VerifyOTP, http.MethodPost, "/verify-otp", `{"userMail":"demo1@kiit.ac.in","otp":"123456"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OTP verified successfully", out["message"])

	rec, out = doJSON(t, h.VerifyOTP, http.MethodPost, "/verify-otp", `{"userMail":"demo1@kiit.ac.in","otp":"654321"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired OTP", out["message"])
}

func TestVerifyOTPRejectsExpiredCode(t *testing.T) {
	users := newFakeUserStore()
	h := NewAuthHandler(users, &fakeMailer{})
	now := time.Now().UTC()
	require.NoError(t, users.UpsertOTP(context.Background(), "demo1@kiit.ac.in", "123456", now.Add(-2*time.Hour), now.Add(-time.Hour)))

	rec, out := doJSON(t, h.VerifyOTP, http.MethodPost, "/verify-otp", `{"userMail":"demo1@kiit.ac.in","otp":"123456"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired OTP", out["message"])
}

func TestVerifyOTPRequiresBothFields(t *testing.T) {
	h := NewAuthHandler(newFakeUserStore(), &fakeMailer{})

	rec, out := doJSON(t, h.VerifyOTP, http.MethodPost, "/verify-otp", `{"userMail":"demo1@kiit.ac.in"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email and OTP are required", out["message"])
}

func TestUserInfo(t *testing.T) {
	users := newFakeUserStore()
	now := time.Now().UTC()
	require.NoError(t, users.UpsertOTP(context.Background(), "demo1@kiit.ac.in", "123456", now, now.Add(time.Hour)))
	h := NewAuthHandler(users, &fakeMailer{})

	rec, out := doJSON(t, h.UserInfo, http.MethodGet, "/user-info?userMail=demo1@kiit.ac.in", "")
	require.Equal(t, http.StatusOK, rec.Code)
	user, ok := out["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "demo1@kiit.ac.in", user["userMail"])
	assert.Equal(t, float64(1), user["userId"])

	rec, out = doJSON(t, h.UserInfo, http.MethodGet, "/user-info?userMail=nobody@kiit.ac.in", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", out["message"])
}
