package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/lib/pq"
)

// FailureKind separates "the store could not be reached" from "the store
// answered with something we could not use". Callers branch on the kind, never
// on error text.
type FailureKind int

const (
	// KindUnavailable covers transport and connection failures.
	KindUnavailable FailureKind = iota
	// KindProtocol covers responses whose shape did not match the expected rows.
	KindProtocol
)

func (k FailureKind) String() string {
	if k == KindUnavailable {
		return "store_unavailable"
	}
	return "store_protocol_error"
}

type Error struct {
	Kind  FailureKind
	Table string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: lookup on table %q failed: %v", e.Kind, e.Table, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsUnavailable reports whether err is a store transport/connection failure.
func IsUnavailable(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == KindUnavailable
}

// IsProtocol reports whether err is a store response-shape failure.
func IsProtocol(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == KindProtocol
}

// classify wraps a lookup error with its failure kind. Connection-level
// failures (dial errors, dropped connections, postgres class 08) are
// unavailable; anything else means the store answered but the response could
// not be decoded into the expected row shape.
func classify(table string, err error) *Error {
	kind := KindProtocol

	var netErr net.Error
	var pqErr *pq.Error
	switch {
	case errors.As(err, &netErr),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, io.EOF),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		kind = KindUnavailable
	case errors.As(err, &pqErr):
		if pqErr.Code.Class() == "08" { // connection exception
			kind = KindUnavailable
		}
	}

	return &Error{Kind: kind, Table: table, Err: err}
}
