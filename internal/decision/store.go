package decision

import "context"

//go:generate mockgen -source=store.go -destination=mocks/store-mocks.go -package=mocks Store

// Store persists pseudonymized decision records for auditability. Swap with
// concrete storage without touching the service; persistence is best-effort
// and never affects the decision returned to the caller.
type Store interface {
	Save(ctx context.Context, record Record) error
	ListByCodeHash(ctx context.Context, codeHash string) ([]Record, error)
}
