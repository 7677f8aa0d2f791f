// Package auth issues and verifies the session tokens handed out at login,
// and carries the authenticated account through request contexts.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const defaultTTL = 30 * 24 * time.Hour

// Manager signs and parses HS256 session tokens.
type Manager struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

type Claims struct {
	AccountID int32 `json:"id"`
	jwt.RegisteredClaims
}

func (m Manager) Issue(accountID int32) (string, error) {
	ttl := m.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}
	now := time.Now()
	claims := Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.Issuer,
			Subject:   strconv.FormatInt(int64(accountID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
}

// Parse validates a presented token. Only HMAC-signed tokens are accepted.
func (m Manager) Parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
