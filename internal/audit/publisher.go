package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/mssola/useragent"
)

// Publisher accepts audit events from domain services and hands them to the
// worker through a bounded channel. Emission never blocks the request path:
// when the buffer is full the event is dropped with a warning. Audit is
// best-effort by design.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Inbox exposes the receiving side for the worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}

// Emit normalizes and enqueues an event. The raw User-Agent is reduced to a
// browser/OS pair before the event leaves the process.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.UserAgent != "" {
		ua := useragent.New(event.UserAgent)
		name, _ := ua.Browser()
		event.Browser = name
		event.OS = ua.OSInfo().Name
		event.UserAgent = ""
	}

	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit buffer full, event dropped",
			"action", event.Action,
			"request_id", event.RequestID,
		)
	}
}
