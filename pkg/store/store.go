// Package store is the gateway to the record store. Every read in the service
// goes through Lookup: an equality-filtered, optionally ordered and limited
// select against one logical table, scanned into the caller's row slice.
package store

import (
	"context"
	"sort"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/dahlia/pkg/database"
	"github.com/Ramsey-B/dahlia/pkg/metrics"
	"github.com/Ramsey-B/dahlia/pkg/tracing"
)

// Filters maps column names to exact-match values.
type Filters map[string]any

type options struct {
	orderBy string
	desc    bool
	limit   int
}

type Option func(*options)

func WithOrderBy(column string, desc bool) Option {
	return func(o *options) {
		o.orderBy = column
		o.desc = desc
	}
}

func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

type Gateway interface {
	Lookup(ctx context.Context, dest any, table string, filters Filters, opts ...Option) error
}

type RecordStore struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRecordStore creates a gateway backed by the given database.
func NewRecordStore(db database.DB, logger ectologger.Logger) *RecordStore {
	return &RecordStore{
		db:     db,
		logger: logger,
	}
}

// Lookup selects all columns of table for the rows matching every filter and
// scans them into dest, which must be a pointer to a row slice. A match set of
// zero rows leaves dest empty and returns nil. A non-nil error is always a
// *Error carrying the failure kind.
func (s *RecordStore) Lookup(ctx context.Context, dest any, table string, filters Filters, opts ...Option) error {
	ctx, span := tracing.StartSpan(ctx, "RecordStore.Lookup")
	defer span.End()

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	sb := database.NewSelectBuilder()
	sb.Select("*")
	sb.From(table)

	// Filter columns are applied in sorted order so the generated SQL is
	// stable for a given filter set.
	columns := make([]string, 0, len(filters))
	for column := range filters {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	exprs := make([]string, 0, len(columns))
	for _, column := range columns {
		exprs = append(exprs, sb.Equal(column, filters[column]))
	}
	if len(exprs) > 0 {
		sb.Where(exprs...)
	}

	if o.orderBy != "" {
		sb.OrderBy(o.orderBy)
		if o.desc {
			sb.Desc()
		}
	}
	if o.limit > 0 {
		sb.Limit(o.limit)
	}

	query, args := sb.Build()

	start := time.Now()
	err := s.db.SelectContext(ctx, dest, query, args...)
	metrics.StoreLookupDuration.WithLabelValues(table).Observe(time.Since(start).Seconds())

	if err != nil {
		storeErr := classify(table, err)
		metrics.StoreLookupsTotal.WithLabelValues(table, storeErr.Kind.String()).Inc()
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"table": table,
			"kind":  storeErr.Kind.String(),
		}).Error("record store lookup failed")
		return storeErr
	}

	metrics.StoreLookupsTotal.WithLabelValues(table, "ok").Inc()
	return nil
}
