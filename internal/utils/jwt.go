package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// VendorToken is a signed HS256 JWT handed to food-court staff on login,
// together with its expiry. The subject claim carries the food court id so
// protected vendor endpoints know which court the session belongs to.
type VendorToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewVendorToken builds and signs an HS256 JWT for a food court. Claims are
// sub (court id), role ("VENDOR"), exp and iat.
func NewVendorToken(secret string, foodCourtID uint64, ttlMin int) (VendorToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  foodCourtID,
		"role": "VENDOR",
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return VendorToken{}, err
	}
	return VendorToken{Token: signed, Exp: exp}, nil
}
