// Package middleware provides the JWT authentication middleware shared by
// the protected routes.
package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/huanvu/gigmart/pkg/config"
)

// JwtProtected rejects requests without a valid bearer token. The parsed
// token is stored in c.Locals("user").
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

// AdminRequired rejects authenticated requests whose token lacks the admin
// claim. It must run after JwtProtected.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsAdmin(c) {
			return fiber.NewError(fiber.StatusUnauthorized, "admins only")
		}
		return c.Next()
	}
}

// CurrentUsername extracts the username claim from the request's token.
func CurrentUsername(c *fiber.Ctx) (string, bool) {
	claims, ok := tokenClaims(c)
	if !ok {
		return "", false
	}
	username, ok := claims["username"].(string)
	return username, ok && username != ""
}

// IsAdmin reports whether the request's token carries the admin claim.
func IsAdmin(c *fiber.Ctx) bool {
	claims, ok := tokenClaims(c)
	if !ok {
		return false
	}
	isAdmin, ok := claims["is_admin"].(bool)
	return ok && isAdmin
}

func tokenClaims(c *fiber.Ctx) (jwt.MapClaims, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return fiber.NewError(fiber.StatusBadRequest, "missing or malformed token")
	}
	return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
}
