// Package middleware provides authentication, logging, tracing, metrics and rate limiting for the application.
package middleware

import (
	"context"

	"devconnector/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// TokenHeader is the header clients send their credential in.
const TokenHeader = "x-auth-token"

// TokenVerifier turns a raw token into an identity.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// AuthRequired rejects requests without a valid x-auth-token and stores the
// caller's user ID under UserIDLocal and in the request context.
func AuthRequired(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(TokenHeader)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"msg": "No token, authorization denied",
			})
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"msg": "Token is not valid",
			})
		}

		c.Locals(UserIDLocal, identity.ID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, identity.ID))

		return c.Next()
	}
}
