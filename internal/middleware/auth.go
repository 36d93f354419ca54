package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

// JWTAuth validates the Authorization bearer token and stores the parsed
// token under the "user" context key for the handlers.
func JWTAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == "" || tokenString == authHeader {
				return writeAuthError(c)
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return writeAuthError(c)
			}

			c.Set("user", token)

			return next(c)
		}
	}
}

func writeAuthError(c echo.Context) error {
	errorResponse := map[string]interface{}{
		"status":  "error",
		"message": "Invalid or expired JWT",
		"errors":  nil,
	}
	return c.JSON(http.StatusUnauthorized, errorResponse)
}
