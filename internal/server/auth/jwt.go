// Package auth issues and verifies session tokens and hashes account
// passwords.
package auth

import (
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims includes the registered claims plus the account the token was
// issued for.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string
}

// GenerateToken signs an HS256 token over accountID, valid for
// validityDuration from now.
func GenerateToken(accountID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		AccountID: accountID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetAccountIDFromToken verifies the signature and expiry of tokenString and
// returns the account id claim. Any parse or validation failure yields
// common.ErrInvalidToken; the caller never learns which check failed.
func GetAccountIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.AccountID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.AccountID, nil
}
