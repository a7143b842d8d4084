// Package handler is the first layer after the command line.
//
// It resolves what to run, calls the service layer and writes the result
// to the output sink. Every unit of work runs through the same pipeline
// that adds structured logging, timing and New Relic tracing.
package handler

import (
	"context"
	"time"

	"github.com/deppfellow/classroom/internal/app"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application dependencies.
type Handler struct {
	app *app.App
}

// NewHandler constructs a base Handler.
func NewHandler(a *app.App) Handler {
	return Handler{app: a}
}

// startTransaction starts a New Relic background transaction and stores it
// in ctx, so nrpgx5 can attach query segments to it. It returns a nil
// transaction when New Relic is disabled; every Transaction method is
// nil-safe.
func (h Handler) startTransaction(ctx context.Context, name string) (context.Context, *newrelic.Transaction) {
	nrApp := h.app.LoggerService.GetApplication()
	if nrApp == nil {
		return ctx, nil
	}
	txn := nrApp.StartTransaction(name)
	return newrelic.NewContext(ctx, txn), txn
}

// run is the shared execution pipeline.
//
// It centralizes:
//   - structured logging with operation and name fields
//   - New Relic transaction, attributes and error reporting
//   - timing of the unit of work
func (h Handler) run(ctx context.Context, operation, name string, fn func(ctx context.Context) error) error {
	start := time.Now()

	ctx, txn := h.startTransaction(ctx, operation+"/"+name)
	defer txn.End()

	txn.AddAttribute("handler.operation", operation)
	txn.AddAttribute("handler.name", name)

	logger := h.app.Logger.With().
		Str("operation", operation).
		Str("name", name).
		Logger()

	logger.Debug().Msg("handling " + operation)

	err := fn(ctx)
	duration := time.Since(start)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("duration", duration).
			Msg(operation + " failed")

		txn.NoticeError(nrpkgerrors.Wrap(err))
		txn.AddAttribute("handler.status", "error")
		txn.AddAttribute("handler.duration_ms", duration.Milliseconds())
		return err
	}

	txn.AddAttribute("handler.status", "success")
	txn.AddAttribute("handler.duration_ms", duration.Milliseconds())

	logger.Info().
		Dur("duration", duration).
		Msg(operation + " completed successfully")

	return nil
}
