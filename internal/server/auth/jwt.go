// Package auth implements the session token service: issuing, validating,
// refreshing and revoking JWTs whose rotation version is checked against a
// per-subject counter in persistence.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the registered JWT claims plus the subject's rotation
// version at issue time.
type Claims struct {
	jwt.RegisteredClaims
	Version int64 `json:"ver"`
}

func signToken(subjectID string, version int64, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
			ID:        uuid.NewString(),
		},
		Version: version,
	})
	return token.SignedString(secretKey)
}

// parseToken verifies the signature and standard claims. Expiry maps to
// ErrExpired; every other parse failure is reported as ErrMalformed so the
// caller cannot distinguish forgery classes.
func parseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrMalformed
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrMalformed
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrMalformed
	}
	return claims, nil
}
