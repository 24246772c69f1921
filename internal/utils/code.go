package utils // package utils provides helpers for code generation and vendor tokens

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// GenerateOTP returns a 6-digit numeric one-time code in [100000, 999999],
// drawn from crypto/rand so codes are not guessable from earlier ones.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// NewOrderCode returns the per-checkout pickup secret: 4 random bytes hex
// encoded (8 characters). Every line item of one checkout shares this code;
// the customer presents it at the counter to complete the order.
func NewOrderCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
