// Package auth issues and verifies the portal's access tokens and hashes
// account passwords.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/workshops/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered JWT claims plus the identity of the account.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
	UserName  string `json:"username"`
}

// GenerateToken signs an HS256 token for the account valid for validity.
func GenerateToken(accountID, userName string, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		AccountID: accountID,
		UserName:  userName,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies tokenString and returns its claims. Expired tokens
// yield common.ErrTokenExpired; any other defect yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid || claims.AccountID == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
