package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TenantClaims are the JWT claims this service understands. The subject is the
// acting user; TenantID scopes every ledger operation of the request.
type TenantClaims struct {
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// ErrMissingPrincipal is returned for a valid token without subject or tenant.
var ErrMissingPrincipal = errors.New("token is missing subject or tenant")

// GenerateTenantJWT signs an HS256 token for userID acting in tenantID.
func GenerateTenantJWT(userID, tenantID, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := TenantClaims{
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseTenantJWT validates the signature and standard claims and requires both principal claims.
func ParseTenantJWT(tokenString, secretKey string) (*TenantClaims, error) {
	claims := &TenantClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" || claims.TenantID == "" {
		return nil, ErrMissingPrincipal
	}
	return claims, nil
}
