package middleware

import (
	"net/http"

	"github.com/Gobusters/ectologger"
	appctx "github.com/Ramsey-B/dahlia/pkg/context"
	"github.com/Ramsey-B/dahlia/pkg/metrics"
	"github.com/labstack/echo/v4"
)

// Authentication gates requests behind a static API token. The token is read
// from the given header and resolved to a principal name, which is stored on
// the request context for downstream logging.
func Authentication(logger ectologger.Logger, header string, principals map[string]string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			token := c.Request().Header.Get(header)
			if token == "" {
				metrics.AuthRejectionsTotal.Inc()
				logger.WithContext(ctx).Warn("request is missing an API token")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid API token")
			}

			principal, ok := principals[token]
			if !ok {
				metrics.AuthRejectionsTotal.Inc()
				logger.WithContext(ctx).Warn("request presented an unknown API token")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid API token")
			}

			ctx = appctx.SetPrincipal(ctx, principal)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
