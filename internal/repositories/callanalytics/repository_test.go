package callanalytics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/dahlia/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	rows []CallAnalyticsRow
	err  error

	table   string
	filters store.Filters
}

func (f *fakeGateway) Lookup(ctx context.Context, dest any, table string, filters store.Filters, opts ...store.Option) error {
	f.table = table
	f.filters = filters
	if f.err != nil {
		return f.err
	}
	*dest.(*[]CallAnalyticsRow) = f.rows
	return nil
}

func newTestLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestListByCorrelationKey(t *testing.T) {
	ctx := context.Background()

	t.Run("rows map in store order", func(t *testing.T) {
		gateway := &fakeGateway{rows: []CallAnalyticsRow{
			{CallINum: sql.NullString{String: "C9", Valid: true}, Tone: sql.NullString{String: "calm", Valid: true}},
			{CallINum: sql.NullString{String: "C9", Valid: true}, Tone: sql.NullString{String: "agitated", Valid: true}},
		}}
		repo := NewRepository(gateway, newTestLogger())

		entries, err := repo.ListByCorrelationKey(ctx, "C9")

		require.NoError(t, err)
		assert.Equal(t, callAnalyticsTable, gateway.table)
		assert.Equal(t, store.Filters{"call_inum": "C9"}, gateway.filters)
		require.Len(t, entries, 2)
		assert.Equal(t, "calm", *entries[0].Tone)
		assert.Equal(t, "agitated", *entries[1].Tone)
	})

	t.Run("no rows is an empty result, not an error", func(t *testing.T) {
		gateway := &fakeGateway{}
		repo := NewRepository(gateway, newTestLogger())

		entries, err := repo.ListByCorrelationKey(ctx, "C404")

		require.NoError(t, err)
		require.NotNil(t, entries)
		assert.Empty(t, entries)
	})

	t.Run("store errors propagate unchanged", func(t *testing.T) {
		gateway := &fakeGateway{err: &store.Error{Kind: store.KindProtocol, Table: callAnalyticsTable}}
		repo := NewRepository(gateway, newTestLogger())

		_, err := repo.ListByCorrelationKey(ctx, "C9")

		require.Error(t, err)
		assert.True(t, store.IsProtocol(err))
	})
}

func TestToCallAnalytics(t *testing.T) {
	t.Run("populated row maps every column", func(t *testing.T) {
		row := CallAnalyticsRow{
			CallINum:          sql.NullString{String: "C9", Valid: true},
			CallTypeValue:     sql.NullString{String: "promise to pay", Valid: true},
			AIRecommendations: sql.NullString{String: "offer a payment plan", Valid: true},
			Negligence:        sql.NullString{String: "two broken promises", Valid: true},
			PastCallSummary:   sql.NullString{String: "customer asked for an extension", Valid: true},
			CallStrategy:      sql.NullString{String: "lead with the arrangement", Valid: true},
			SentimentAnalysis: sql.NullString{String: "neutral", Valid: true},
			Tone:              sql.NullString{String: "calm", Valid: true},
		}

		entry := ToCallAnalytics(&row)

		require.NotNil(t, entry.CorrelationKey)
		assert.Equal(t, "C9", *entry.CorrelationKey)
		require.NotNil(t, entry.CallTypeValue)
		assert.Equal(t, "promise to pay", *entry.CallTypeValue)
		require.NotNil(t, entry.PastCallSummary)
		assert.Equal(t, "customer asked for an extension", *entry.PastCallSummary)
		require.NotNil(t, entry.Tone)
		assert.Equal(t, "calm", *entry.Tone)
	})

	t.Run("null columns stay unset", func(t *testing.T) {
		entry := ToCallAnalytics(&CallAnalyticsRow{})

		assert.Nil(t, entry.CorrelationKey)
		assert.Nil(t, entry.CallTypeValue)
		assert.Nil(t, entry.AIRecommendations)
		assert.Nil(t, entry.Negligence)
		assert.Nil(t, entry.PastCallSummary)
		assert.Nil(t, entry.CallStrategy)
		assert.Nil(t, entry.SentimentAnalysis)
		assert.Nil(t, entry.Tone)
	})
}
