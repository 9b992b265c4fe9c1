// Package auth issues and validates session tokens, hashes passwords and
// carries the authenticated identity through a request context.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/aycode/internal/common"
	"github.com/dmitrijs2005/aycode/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/thejerf/abtime"
)

// DefaultTokenValidity is the lifetime of a session token.
const DefaultTokenValidity = time.Hour

// Claims are the session token claims. Subject holds the user ID. The role
// is deliberately absent: authorization always reads it from the store.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// UserID returns the token subject.
func (c *Claims) UserID() string {
	return c.Subject
}

// TokenManager signs and verifies HS256 session tokens with a key fixed at
// construction.
type TokenManager struct {
	key      []byte
	validity time.Duration
	clock    abtime.AbstractTime
}

// NewTokenManager copies key so later mutation of the caller's slice cannot
// change the signing key. A nil clock means wall time.
func NewTokenManager(key []byte, validity time.Duration, clock abtime.AbstractTime) (*TokenManager, error) {
	if len(key) == 0 {
		return nil, errors.New("empty signing key")
	}
	if validity <= 0 {
		validity = DefaultTokenValidity
	}
	if clock == nil {
		clock = abtime.NewRealTime()
	}

	k := make([]byte, len(key))
	copy(k, key)

	return &TokenManager{key: k, validity: validity, clock: clock}, nil
}

// Validity is the lifetime applied to every issued token.
func (m *TokenManager) Validity() time.Duration {
	return m.validity
}

// Issue mints a token for user and returns it with its expiry. Issue time is
// truncated to whole seconds, matching the precision of the encoded claims.
func (m *TokenManager) Issue(user *models.User) (string, time.Time, error) {
	if user == nil || user.ID == "" {
		return "", time.Time{}, fmt.Errorf("%w: user id required", common.ErrorValidation)
	}

	now := m.clock.Now().Truncate(time.Second)
	expiresAt := now.Add(m.validity)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: user.Email,
	})

	tokenString, err := token.SignedString(m.key)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// Validate checks the signature and expiry of tokenString against the
// current key and clock. It returns common.ErrTokenMissing for an empty
// string, common.ErrTokenExpired once exp is reached, and
// common.ErrInvalidToken for every other failure.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, common.ErrTokenMissing
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
