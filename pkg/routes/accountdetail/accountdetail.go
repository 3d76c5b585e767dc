package accountdetail

import (
	"fmt"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/Ramsey-B/dahlia/internal/repositories/accountdetail"
	"github.com/Ramsey-B/dahlia/pkg/tracing"
	"github.com/labstack/echo/v4"
)

// Register registers account detail routes
func Register(g *echo.Group) {
	g.GET("/account-details/:account_number", GetAccountDetails)
}

// GetAccountDetails returns the account detail record for an account number
func GetAccountDetails(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "accountdetail_handler.GetAccountDetails")
	defer span.End()

	accountNumber := c.Param("account_number")
	if accountNumber == "" {
		return httperror.NewHTTPError(http.StatusBadRequest, "account_number is required")
	}

	ctx, repo, err := ectoinject.GetContext[accountdetail.AccountDetailRepository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	detail, err := repo.GetByAccountNo(ctx, accountNumber)
	if err != nil {
		if httperror.IsHTTPError(err) && httperror.GetStatusCode(err) == http.StatusNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{
				"message":         fmt.Sprintf("No account details found for account %s", accountNumber),
				"account_details": nil,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"message": "An unexpected error occurred",
			"error":   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"account_number":  accountNumber,
		"account_details": detail,
		"message":         fmt.Sprintf("Account details retrieved successfully for account %s", accountNumber),
	})
}
