package accountdetail

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/dahlia/pkg/models"
	"github.com/Ramsey-B/dahlia/pkg/store"
	"github.com/Ramsey-B/dahlia/pkg/tracing"
)

type AccountDetailRepository interface {
	GetByAccountNo(ctx context.Context, accountNo string) (models.AccountDetail, error)
}

type Repository struct {
	store  store.Gateway
	logger ectologger.Logger
}

// NewRepository creates a new account detail repository
func NewRepository(store store.Gateway, logger ectologger.Logger) *Repository {
	return &Repository{
		store:  store,
		logger: logger,
	}
}

// GetByAccountNo returns the account record for accountNo. Account numbers
// identify at most one record; a second match means the table is corrupt and
// the lookup fails rather than silently picking a row. Store failures
// propagate unchanged so the boundary can report them as internal errors.
func (r *Repository) GetByAccountNo(ctx context.Context, accountNo string) (models.AccountDetail, error) {
	ctx, span := tracing.StartSpan(ctx, "AccountDetailRepository.GetByAccountNo")
	defer span.End()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"account_no": accountNo,
	}).Info("Getting account details")

	var rows []AccountDetailRow
	err := r.store.Lookup(ctx, &rows, accountDetailTable, store.Filters{"account_no": accountNo}, store.WithLimit(2))
	if err != nil {
		return models.AccountDetail{}, err
	}

	if len(rows) == 0 {
		r.logger.WithContext(ctx).WithFields(map[string]any{
			"account_no": accountNo,
		}).Warn("Account details not found")
		return models.AccountDetail{}, httperror.NewHTTPErrorf(http.StatusNotFound, "No account details found for account %s", accountNo)
	}

	if len(rows) > 1 {
		r.logger.WithContext(ctx).WithFields(map[string]any{
			"account_no": accountNo,
		}).Error("account number matches more than one record")
		return models.AccountDetail{}, httperror.NewHTTPErrorf(http.StatusInternalServerError, "account %s matches more than one record", accountNo)
	}

	return ToAccountDetail(&rows[0]), nil
}
