package consolidation

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/dahlia/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccountRepo struct {
	detail models.AccountDetail
	err    error
	calls  int
}

func (f *fakeAccountRepo) GetByAccountNo(ctx context.Context, accountNo string) (models.AccountDetail, error) {
	f.calls++
	return f.detail, f.err
}

type fakeAnalyticsRepo struct {
	entries []models.CallAnalytics
	err     error
	calls   int
	lastKey string
}

func (f *fakeAnalyticsRepo) ListByCorrelationKey(ctx context.Context, callINum string) ([]models.CallAnalytics, error) {
	f.calls++
	f.lastKey = callINum
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func ptr(s string) *string {
	return &s
}

func newTestLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestConsolidate(t *testing.T) {
	ctx := context.Background()

	t.Run("empty account number is rejected", func(t *testing.T) {
		accounts := &fakeAccountRepo{}
		analytics := &fakeAnalyticsRepo{}
		service := NewService(newTestLogger(), accounts, analytics, time.Second)

		_, err := service.Consolidate(ctx, "")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
		assert.Zero(t, accounts.calls)
	})

	t.Run("unknown account skips the analytics lookup", func(t *testing.T) {
		accounts := &fakeAccountRepo{err: httperror.NewHTTPErrorf(http.StatusNotFound, "No account details found for account %s", "A404")}
		analytics := &fakeAnalyticsRepo{}
		service := NewService(newTestLogger(), accounts, analytics, time.Second)

		_, err := service.Consolidate(ctx, "A404")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, httperror.GetStatusCode(err))
		assert.Zero(t, analytics.calls)
	})

	t.Run("account without a correlation key skips the analytics lookup", func(t *testing.T) {
		accounts := &fakeAccountRepo{detail: models.AccountDetail{AccountNo: ptr("A100")}}
		analytics := &fakeAnalyticsRepo{entries: []models.CallAnalytics{{Tone: ptr("calm")}}}
		service := NewService(newTestLogger(), accounts, analytics, time.Second)

		view, err := service.Consolidate(ctx, "A100")

		require.NoError(t, err)
		assert.Zero(t, analytics.calls)
		assert.Empty(t, view.CallINum)
		assert.Empty(t, view.CallBIData)
		assert.NotNil(t, view.CallBIData)
	})

	t.Run("no analytics rows still renders the table header", func(t *testing.T) {
		accounts := &fakeAccountRepo{detail: models.AccountDetail{AccountNo: ptr("A100"), CallINum: ptr("C9")}}
		analytics := &fakeAnalyticsRepo{entries: []models.CallAnalytics{}}
		service := NewService(newTestLogger(), accounts, analytics, time.Second)

		view, err := service.Consolidate(ctx, "A100")

		require.NoError(t, err)
		assert.Equal(t, 1, analytics.calls)
		assert.Contains(t, view.Table, "AI analysis")
		assert.Equal(t, 1, strings.Count(view.Table, "<tr>"))
	})

	t.Run("analytics failure fails the consolidation", func(t *testing.T) {
		accounts := &fakeAccountRepo{detail: models.AccountDetail{AccountNo: ptr("A100"), CallINum: ptr("C9")}}
		analytics := &fakeAnalyticsRepo{err: errors.New("store lookup failed")}
		service := NewService(newTestLogger(), accounts, analytics, time.Second)

		_, err := service.Consolidate(ctx, "A100")

		require.Error(t, err)
		assert.False(t, httperror.IsHTTPError(err) && httperror.GetStatusCode(err) == http.StatusNotFound)
	})

	t.Run("successful consolidation assembles the full view", func(t *testing.T) {
		accounts := &fakeAccountRepo{detail: models.AccountDetail{AccountNo: ptr("A100"), CallINum: ptr("C9")}}
		analytics := &fakeAnalyticsRepo{entries: []models.CallAnalytics{
			{CorrelationKey: ptr("C9"), CallTypeValue: ptr("promise to pay")},
			{CorrelationKey: ptr("C9"), CallTypeValue: ptr("no answer")},
		}}
		service := NewService(newTestLogger(), accounts, analytics, time.Second)

		view, err := service.Consolidate(ctx, "A100")

		require.NoError(t, err)
		assert.Equal(t, "A100", view.AccountNumber)
		assert.Equal(t, "C9", view.CallINum)
		assert.Equal(t, "C9", analytics.lastKey)
		require.NotNil(t, view.AccountDetails)
		assert.Equal(t, "A100", *view.AccountDetails.AccountNo)
		assert.Len(t, view.CallBIData, 2)
		assert.Contains(t, view.Table, "promise to pay")
		assert.Contains(t, view.Table, "no answer")
		assert.Equal(t, "Consolidated data retrieved successfully for account A100", view.Message)
	})
}
