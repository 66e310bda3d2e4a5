package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the authenticated identity. Exactly one of CustomerID or
// VendorID is set depending on which audience the token was minted for.
type Claims struct {
	Name       string `json:"name"`
	CustomerID int64  `json:"customerId,omitempty"`
	VendorID   int64  `json:"vendorId,omitempty"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// NewCustomerToken mints a signed token for a customer.
func NewCustomerToken(customerID int64, name string) (string, error) {
	return newToken(Claims{
		Name:       name,
		CustomerID: customerID,
	})
}

// NewVendorToken mints a signed token for a vendor.
func NewVendorToken(vendorID int64, name string) (string, error) {
	return newToken(Claims{
		Name:     name,
		VendorID: vendorID,
	})
}

func newToken(claims Claims) (string, error) {
	claims.IssuedAt = jwt.NewNumericDate(time.Now())

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}

// ParseToken verifies the signature and returns the embedded claims.
func ParseToken(raw string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return secret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
