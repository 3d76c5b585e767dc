package consolidated

import (
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/Ramsey-B/dahlia/internal/services/consolidation"
	"github.com/Ramsey-B/dahlia/pkg/models"
	"github.com/Ramsey-B/dahlia/pkg/tracing"
	"github.com/labstack/echo/v4"
)

// Register registers consolidated view routes
func Register(g *echo.Group) {
	g.GET("/account-consolidated/:account_number", GetConsolidated)
}

// GetConsolidated joins account details with call analytics and a rendered
// report table into a single response.
func GetConsolidated(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "consolidated_handler.GetConsolidated")
	defer span.End()

	accountNumber := c.Param("account_number")

	ctx, service, err := ectoinject.GetContext[consolidation.ConsolidationService](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get consolidation service")
	}

	view, err := service.Consolidate(ctx, accountNumber)
	if err != nil {
		if httperror.IsHTTPError(err) && httperror.GetStatusCode(err) == http.StatusNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{
				"message":         fmt.Sprintf("No account details found for account %s", accountNumber),
				"account_details": nil,
				"call_bi_data":    []models.CallAnalytics{},
			})
		}
		if httperror.IsHTTPError(err) && httperror.GetStatusCode(err) == http.StatusBadRequest {
			return err
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"message": "An unexpected error occurred",
			"error":   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, view)
}
