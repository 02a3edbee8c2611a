package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminChecker reports whether an identity currently holds the admin role.
type AdminChecker interface {
	IsAdmin(ctx context.Context, identity string) (bool, error)
}

// AdminOnly gates a route group on the administrative role axis. The check
// goes to the store on every request: admin status can be revoked at runtime
// and a stale token must not keep working.
func AdminOnly(checker AdminChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, _ := c.Get("identity").(string)
			if identity == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			isAdmin, err := checker.IsAdmin(c.Request().Context(), identity)
			if err != nil {
				return err
			}
			if !isAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
