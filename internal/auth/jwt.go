// Package auth issues and validates the HS256 tokens that carry a
// caller's identity between requests, and provides the gin middleware
// enforcing them.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"clubroster/internal/identity"
)

// Claims is the JWT payload: the same three fields the persisted session
// carries.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Club     string `json:"club,omitempty"`
	jwt.RegisteredClaims
}

// Actor converts claims into the scoping lens the services consume.
func (c Claims) Actor() identity.Actor {
	return identity.Actor{Username: c.Username, Role: c.Role, Club: c.Club}
}

// Token is an issued access token with its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Issue signs an access token for the given session identity.
func Issue(username, role, club, issuer, key string, ttl time.Duration) (Token, error) {
	exp := time.Now().Add(ttl)
	claims := Claims{
		Username: username,
		Role:     role,
		Club:     club,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, ExpiresAt: exp}, nil
}

// Parse validates a token and returns its claims.
func Parse(tokenStr, key, issuer string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(key), nil
	})
	if err != nil {
		return Claims{}, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if issuer != "" && claims.Issuer != issuer {
		return Claims{}, errors.New("issuer mismatch")
	}
	return *claims, nil
}
