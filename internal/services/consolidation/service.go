// Package consolidation joins an account's detail record with the call
// analytics rows sharing its correlation key and renders the combined view.
package consolidation

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/dahlia/internal/repositories/accountdetail"
	"github.com/Ramsey-B/dahlia/internal/repositories/callanalytics"
	"github.com/Ramsey-B/dahlia/pkg/metrics"
	"github.com/Ramsey-B/dahlia/pkg/models"
	"github.com/Ramsey-B/dahlia/pkg/report"
	"github.com/Ramsey-B/dahlia/pkg/tracing"
)

type ConsolidationService interface {
	Consolidate(ctx context.Context, accountNumber string) (models.ConsolidatedView, error)
}

type Service struct {
	logger        ectologger.Logger
	accounts      accountdetail.AccountDetailRepository
	analytics     callanalytics.CallAnalyticsRepository
	lookupTimeout time.Duration
}

// NewService creates a new consolidation service. lookupTimeout bounds each
// store round trip; zero disables the bound.
func NewService(logger ectologger.Logger, accounts accountdetail.AccountDetailRepository, analytics callanalytics.CallAnalyticsRepository, lookupTimeout time.Duration) *Service {
	return &Service{
		logger:        logger,
		accounts:      accounts,
		analytics:     analytics,
		lookupTimeout: lookupTimeout,
	}
}

// Consolidate locates the account record for accountNumber, extracts its
// correlation key, fetches the matching analytics rows and assembles the
// consolidated view. An account without a correlation key skips the analytics
// lookup entirely. A failed analytics lookup fails the whole consolidation;
// no partial view is ever returned.
func (s *Service) Consolidate(ctx context.Context, accountNumber string) (models.ConsolidatedView, error) {
	ctx, span := tracing.StartSpan(ctx, "consolidation.Consolidate")
	defer span.End()

	if accountNumber == "" {
		return models.ConsolidatedView{}, httperror.NewHTTPError(http.StatusBadRequest, "account_number is required")
	}

	detail, err := s.lookupAccount(ctx, accountNumber)
	if err != nil {
		if httperror.IsHTTPError(err) && httperror.GetStatusCode(err) == http.StatusNotFound {
			metrics.ConsolidationsTotal.WithLabelValues("not_found").Inc()
		} else {
			metrics.ConsolidationsTotal.WithLabelValues("error").Inc()
		}
		return models.ConsolidatedView{}, err
	}

	callINum := detail.CorrelationKey()

	analytics := []models.CallAnalytics{}
	if callINum != "" {
		analytics, err = s.lookupAnalytics(ctx, callINum)
		if err != nil {
			metrics.ConsolidationsTotal.WithLabelValues("error").Inc()
			return models.ConsolidatedView{}, err
		}
	}

	table, err := report.Render(analytics)
	if err != nil {
		metrics.ConsolidationsTotal.WithLabelValues("error").Inc()
		return models.ConsolidatedView{}, err
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"account_number":  accountNumber,
		"call_inum":       callINum,
		"analytics_count": len(analytics),
	}).Info("Consolidated account data")
	metrics.ConsolidationsTotal.WithLabelValues("ok").Inc()

	return models.ConsolidatedView{
		AccountNumber:  accountNumber,
		AccountDetails: &detail,
		CallBIData:     analytics,
		CallINum:       callINum,
		Table:          table,
		Message:        fmt.Sprintf("Consolidated data retrieved successfully for account %s", accountNumber),
	}, nil
}

func (s *Service) lookupAccount(ctx context.Context, accountNumber string) (models.AccountDetail, error) {
	ctx, cancel := s.boundedContext(ctx)
	defer cancel()
	return s.accounts.GetByAccountNo(ctx, accountNumber)
}

func (s *Service) lookupAnalytics(ctx context.Context, callINum string) ([]models.CallAnalytics, error) {
	ctx, cancel := s.boundedContext(ctx)
	defer cancel()
	return s.analytics.ListByCorrelationKey(ctx, callINum)
}

func (s *Service) boundedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.lookupTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.lookupTimeout)
}
