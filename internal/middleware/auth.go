package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/expohall/stall-reservation-portal/internal/session"
)

// SessionAuth returns an Echo middleware that validates a Bearer token
// against the session store and injects the stored identity into the
// request.  The token itself is issued by the remote auth service at
// login; the portal only checks that a live session exists for it.
// Handlers can read the identity via `c.Get("user_id")` and
// `c.Get("role")`, and the API client wrappers pick the full session up
// from the request context.
func SessionAuth(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the
			// token handed out at login.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			sess, err := store.Load(c.Request().Context(), raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid or expired session"})
			}

			// Expose the identity to handlers and attach the session
			// to the context for the client wrappers.
			c.Set("user_id", sess.UserID)
			c.Set("role", sess.Role)
			c.SetRequest(c.Request().WithContext(session.WithSession(c.Request().Context(), sess)))
			return next(c)
		}
	}
}
