package accountdetail

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/dahlia/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	rows []AccountDetailRow
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
	*dest.(*[]AccountDetailRow) = f.rows
	return nil
}

func newTestLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestGetByAccountNo(t *testing.T) {
	ctx := context.Background()

	t.Run("single match maps to the model", func(t *testing.T) {
		gateway := &fakeGateway{rows: []AccountDetailRow{{
			AccountNo: sql.NullString{String: "A100", Valid: true},
			CallINum:  sql.NullString{String: "C9", Valid: true},
		}}}
		repo := NewRepository(gateway, newTestLogger())

		detail, err := repo.GetByAccountNo(ctx, "A100")

		require.NoError(t, err)
		assert.Equal(t, accountDetailTable, gateway.table)
		assert.Equal(t, store.Filters{"account_no": "A100"}, gateway.filters)
		require.NotNil(t, detail.AccountNo)
		assert.Equal(t, "A100", *detail.AccountNo)
		assert.Equal(t, "C9", detail.CorrelationKey())
	})

	t.Run("no match is a not found error", func(t *testing.T) {
		gateway := &fakeGateway{}
		repo := NewRepository(gateway, newTestLogger())

		_, err := repo.GetByAccountNo(ctx, "A404")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, httperror.GetStatusCode(err))
		assert.Contains(t, err.Error(), "A404")
	})

	t.Run("multiple matches fail the lookup", func(t *testing.T) {
		gateway := &fakeGateway{rows: []AccountDetailRow{
			{AccountNo: sql.NullString{String: "A100", Valid: true}},
			{AccountNo: sql.NullString{String: "A100", Valid: true}},
		}}
		repo := NewRepository(gateway, newTestLogger())

		_, err := repo.GetByAccountNo(ctx, "A100")

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, httperror.GetStatusCode(err))
	})

	t.Run("store errors propagate unchanged", func(t *testing.T) {
		storeErr := &store.Error{Kind: store.KindUnavailable, Table: accountDetailTable}
		gateway := &fakeGateway{err: storeErr}
		repo := NewRepository(gateway, newTestLogger())

		_, err := repo.GetByAccountNo(ctx, "A100")

		require.Error(t, err)
		assert.True(t, store.IsUnavailable(err))
	})
}
