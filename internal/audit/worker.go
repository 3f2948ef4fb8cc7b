package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from the publisher's channel and fans them out
// to the store and, when configured, the Kafka sink. A failing destination is
// logged and skipped; one destination's outage never loses the other's copy.
type Worker struct {
	store  Store
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

// NewWorker builds a worker. sink may be nil when Kafka is not configured.
func NewWorker(store Store, sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, sink: sink, inbox: inbox, logger: logger}
}

// Run processes events until ctx is cancelled. Returns ctx.Err() on shutdown.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			w.dispatch(ctx, event)
		}
	}
}

func (w *Worker) dispatch(ctx context.Context, event Event) {
	if err := w.store.Append(ctx, event); err != nil {
		w.logger.ErrorContext(ctx, "audit store append failed",
			"action", event.Action,
			"request_id", event.RequestID,
			"error", err,
		)
	}
	if w.sink != nil {
		if err := w.sink.Publish(ctx, event); err != nil {
			w.logger.ErrorContext(ctx, "audit sink publish failed",
				"action", event.Action,
				"request_id", event.RequestID,
				"error", err,
			)
		}
	}
}
