// Package logging builds the service logger: an ectologger facade writing
// through zap, with request metadata pulled from the message context.
package logging

import (
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	appctx "github.com/Ramsey-B/dahlia/pkg/context"
	"github.com/Ramsey-B/dahlia/pkg/tracing"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	// Level is a zap level name: debug, info, warn, error
	Level string
	// Pretty switches to the human-readable development encoder
	Pretty bool
}

// New builds a zap-backed logger at the given level.
func New(opts Options) (ectologger.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if opts.Pretty {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	return zapadapter.NewZapEctoLogger(zapLogger, EnrichFromContext), nil
}

// EnrichFromContext copies request id, principal and trace id from the
// message context into the log fields, so WithContext is enough to correlate
// a line with its request.
func EnrichFromContext(msg ectologger.EctoLogMessage) ectologger.EctoLogMessage {
	if msg.Ctx == nil {
		return msg
	}
	if msg.Fields == nil {
		msg.Fields = map[string]interface{}{}
	}
	if requestID := appctx.GetRequestID(msg.Ctx); requestID != "" {
		msg.Fields["request_id"] = requestID
	}
	if principal := appctx.GetPrincipal(msg.Ctx); principal != "" {
		msg.Fields["principal"] = principal
	}
	if traceID := tracing.GetTraceID(msg.Ctx); traceID != "" {
		msg.Fields["trace_id"] = traceID
	}
	return msg
}
