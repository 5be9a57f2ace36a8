package middlewares

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/shivamnegi1705/khidki-backend/responses"
)

var jwtSecret string

// jwtKeyfunc pins the HMAC family so tokens cannot downgrade the signing
// method. The secret is read lazily, after the env has been loaded.
func jwtKeyfunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	if jwtSecret == "" {
		jwtSecret = os.Getenv("JWT_SECRET")
	}
	return []byte(jwtSecret), nil
}

// AuthMiddleware validates the Bearer token and stores the user id and type
// in Locals for the handlers downstream.
func AuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "No auth token, access denied",
		})
	}

	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid authorization header format",
		})
	}

	tokenString := bearerToken[1]

	claims := &jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, jwtKeyfunc)

	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Token verification failed, access denied",
		})
	}

	userId, ok := (*claims)["id"].(string)
	if !ok || userId == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
		})
	}

	c.Locals("userId", userId)
	if userType, ok := (*claims)["type"].(string); ok {
		c.Locals("userType", userType)
	}

	return c.Next()
}

// AdminMiddleware requires the admin type claim. It trusts the Locals set by
// AuthMiddleware and must run after it.
func AdminMiddleware(c *fiber.Ctx) error {
	if userType, ok := c.Locals("userType").(string); !ok || userType != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(responses.UserResponse{
			Status:  fiber.StatusForbidden,
			Message: "Admin access required",
		})
	}

	return c.Next()
}
