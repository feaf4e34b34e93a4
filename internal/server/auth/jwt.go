// Package auth provides JWT issuance/verification and the legacy password
// hashing scheme shared with the plant database.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/abhi221112/weekend-denso/internal/common"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims are the registered claims plus the caller identity the terminals
// need on every request.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	SupplierCode string `json:"supplier_code,omitempty"`
	GroupName    string `json:"group_name,omitempty"`
	Role         string `json:"role,omitempty"`
	TokenType    string `json:"type"`
}

// GenerateAccessToken mints an HS256 access token for the given caller.
func GenerateAccessToken(userID, supplierCode, groupName, role string, secretKey []byte, validity time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID:       userID,
		SupplierCode: supplierCode,
		GroupName:    groupName,
		Role:         role,
		TokenType:    TokenTypeAccess,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
}

// ParseAccessToken verifies signature, expiry, and the "access" token type,
// returning the embedded claims.
func ParseAccessToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	if !token.Valid || claims.TokenType != TokenTypeAccess {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
