package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/reading-list/internal/repository"
	"github.com/iliyamo/reading-list/internal/utils"
)

// userIDKey is the echo context key under which the authenticated user
// id is stored for downstream handlers.
const userIDKey = "user_id"

// JWTAuth returns an Echo middleware that resolves a session: it
// validates the Bearer access token against the signing secret, loads
// the subject from the users table and rejects absent or deactivated
// accounts. Every protected handler learns "who is asking" solely
// through the user id this middleware stores in the context.
func JWTAuth(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			sub, ok := utils.ParseSubject(secret, raw)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			u, err := users.GetByID(ctx, sub)
			if err != nil {
				if err == sql.ErrNoRows {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found or inactive"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
			}
			if !u.IsActive {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found or inactive"})
			}

			c.Set(userIDKey, u.ID)
			return next(c)
		}
	}
}

// UserID extracts the authenticated user id stored by JWTAuth. It
// returns an empty string when the middleware did not run.
func UserID(c echo.Context) string {
	if v, ok := c.Get(userIDKey).(string); ok {
		return v
	}
	return ""
}
