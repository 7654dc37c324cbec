// Package auth issues and verifies the signed credentials carried in x-auth-token.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL matches the lifetime clients have always been given.
const DefaultTokenTTL = 10 * time.Hour

// ErrInvalidCredential is returned for tampered, malformed or expired tokens.
var ErrInvalidCredential = errors.New("invalid credential")

// Identity is the claim embedded in every token.
type Identity struct {
	ID uuid.UUID `json:"id"`
}

// Claims is the JWT payload: {"user":{"id":...}} plus registered claims.
type Claims struct {
	User Identity `json:"user"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies HS256 tokens with a process-wide secret.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec returns a codec for the given secret. A non-positive ttl falls back to DefaultTokenTTL.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns how long issued tokens stay valid.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for identity that expires after the codec TTL.
func (c *TokenCodec) Issue(identity Identity) (string, error) {
	if identity.ID == uuid.Nil {
		return "", errors.New("cannot issue token for empty identity")
	}

	now := c.now()
	claims := Claims{
		User: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded identity.
func (c *TokenCodec) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidCredential
	}
	if claims.User.ID == uuid.Nil {
		return Identity{}, ErrInvalidCredential
	}
	return claims.User, nil
}
