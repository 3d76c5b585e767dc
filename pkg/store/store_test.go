package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/dahlia/pkg/database"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type analyticsRow struct {
	CallINum sql.NullString `db:"call_inum"`
	Tone     sql.NullString `db:"tone"`
}

func newTestStore(t *testing.T) (*RecordStore, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	db := database.NewDatabaseInstance(sqlx.NewDb(mockDB, "postgres"), logger)
	return NewRecordStore(db, logger), mock
}

func TestLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("scans matching rows into dest", func(t *testing.T) {
		store, mock := newTestStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM call_analytics WHERE call_inum = $1`)).
			WithArgs("C9").
			WillReturnRows(sqlmock.NewRows([]string{"call_inum", "tone"}).
				AddRow("C9", "calm").
				AddRow("C9", "agitated"))

		var rows []analyticsRow
		err := store.Lookup(ctx, &rows, "call_analytics", Filters{"call_inum": "C9"})

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "calm", rows[0].Tone.String)
		assert.Equal(t, "agitated", rows[1].Tone.String)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matches leaves dest empty and returns nil", func(t *testing.T) {
		store, mock := newTestStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM call_analytics WHERE call_inum = $1`)).
			WithArgs("C404").
			WillReturnRows(sqlmock.NewRows([]string{"call_inum", "tone"}))

		var rows []analyticsRow
		err := store.Lookup(ctx, &rows, "call_analytics", Filters{"call_inum": "C404"})

		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("filter columns are applied in sorted order", func(t *testing.T) {
		store, mock := newTestStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM call_analytics WHERE call_inum = $1 AND tone = $2`)).
			WithArgs("C9", "calm").
			WillReturnRows(sqlmock.NewRows([]string{"call_inum", "tone"}))

		var rows []analyticsRow
		err := store.Lookup(ctx, &rows, "call_analytics", Filters{"tone": "calm", "call_inum": "C9"})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("order and limit options shape the query", func(t *testing.T) {
		store, mock := newTestStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM account_details WHERE account_no = $1 ORDER BY account_no LIMIT`)).
			WillReturnRows(sqlmock.NewRows([]string{"call_inum", "tone"}))

		var rows []analyticsRow
		err := store.Lookup(ctx, &rows, "account_details", Filters{"account_no": "A100"},
			WithOrderBy("account_no", false), WithLimit(2))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("connection failures are unavailable errors", func(t *testing.T) {
		store, mock := newTestStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM call_analytics`)).
			WillReturnError(context.DeadlineExceeded)

		var rows []analyticsRow
		err := store.Lookup(ctx, &rows, "call_analytics", Filters{"call_inum": "C9"})

		require.Error(t, err)
		assert.True(t, IsUnavailable(err))
		assert.False(t, IsProtocol(err))
	})

	t.Run("malformed responses are protocol errors", func(t *testing.T) {
		store, mock := newTestStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM call_analytics`)).
			WillReturnError(errors.New("pq: column \"tone\" does not exist"))

		var rows []analyticsRow
		err := store.Lookup(ctx, &rows, "call_analytics", Filters{"call_inum": "C9"})

		require.Error(t, err)
		assert.True(t, IsProtocol(err))

		var storeErr *Error
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "call_analytics", storeErr.Table)
	})
}
