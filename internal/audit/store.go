package audit

import "context"

// Store persists audit events. It is append-only so the trail cannot be
// rewritten from inside the service.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByCodeHash(ctx context.Context, codeHash string) ([]Event, error)
}
