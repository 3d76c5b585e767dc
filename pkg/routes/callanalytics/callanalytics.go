package callanalytics

import (
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/Ramsey-B/dahlia/internal/repositories/callanalytics"
	"github.com/Ramsey-B/dahlia/pkg/models"
	"github.com/Ramsey-B/dahlia/pkg/tracing"
	"github.com/labstack/echo/v4"
)

// Register registers call analytics routes
func Register(g *echo.Group) {
	g.GET("/call-bi/:call_inum", GetCallAnalytics)
}

// GetCallAnalytics returns the AI call analytics rows for a correlation key
func GetCallAnalytics(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "callanalytics_handler.GetCallAnalytics")
	defer span.End()

	callINum := c.Param("call_inum")
	if callINum == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "call_inum is required")
	}

	ctx, repo, err := ectoinject.GetContext[callanalytics.CallAnalyticsRepository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	entries, err := repo.ListByCorrelationKey(ctx, callINum)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"message": "An unexpected error occurred",
			"error":   err.Error(),
		})
	}

	if len(entries) == 0 {
		// The legacy response used a different key on the empty case
		return c.JSON(http.StatusNotFound, map[string]any{
			"message": fmt.Sprintf("No call BI data found for customfield03 %s", callINum),
			"call_bi": []models.CallAnalytics{},
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"customfield03": callINum,
		"call_bi_data":  entries,
		"message":       fmt.Sprintf("Call BI data retrieved successfully for customfield03 %s", callINum),
	})
}
