package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Go runs fn in its own goroutine. The returned channel receives fn's
// error, or a wrapped panic, and is closed when fn returns.
func Go(ctx context.Context, name string, fn func(ctx context.Context) error) <-chan error {
	done := make(chan error, 1)
	logger := ctxlog.From(ctx).With("task", name)

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic in background task",
					"recover", r,
					"stack", string(debug.Stack()),
				)
				done <- goerr.New("background task panicked",
					goerr.V("task", name),
					goerr.V("recover", r))
			}
		}()

		if err := fn(ctxlog.With(ctx, logger)); err != nil {
			done <- err
		}
	}()

	return done
}
