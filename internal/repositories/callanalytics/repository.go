package callanalytics

import (
	"context"

	"github.com/Gobusters/ectolinq"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/dahlia/pkg/models"
	"github.com/Ramsey-B/dahlia/pkg/store"
	"github.com/Ramsey-B/dahlia/pkg/tracing"
)

type CallAnalyticsRepository interface {
	ListByCorrelationKey(ctx context.Context, callINum string) ([]models.CallAnalytics, error)
}

type Repository struct {
	store  store.Gateway
	logger ectologger.Logger
}

// NewRepository creates a new call analytics repository
func NewRepository(store store.Gateway, logger ectologger.Logger) *Repository {
	return &Repository{
		store:  store,
		logger: logger,
	}
}

// ListByCorrelationKey returns every analytics row sharing callINum, in
// store-returned order. Zero matches is a valid outcome and returns an empty,
// non-nil slice.
func (r *Repository) ListByCorrelationKey(ctx context.Context, callINum string) ([]models.CallAnalytics, error) {
	ctx, span := tracing.StartSpan(ctx, "CallAnalyticsRepository.ListByCorrelationKey")
	defer span.End()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"call_inum": callINum,
	}).Info("Getting call analytics")

	var rows []CallAnalyticsRow
	err := r.store.Lookup(ctx, &rows, callAnalyticsTable, store.Filters{"call_inum": callINum})
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return []models.CallAnalytics{}, nil
	}

	return ectolinq.Map(rows, func(row CallAnalyticsRow) models.CallAnalytics {
		return ToCallAnalytics(&row)
	}), nil
}
