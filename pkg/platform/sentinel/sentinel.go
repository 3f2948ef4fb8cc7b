package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Platform layers return these
// (wrapped) so callers can distinguish infrastructure state from business
// rejections. For caller-input or business-rule rejections, use
// pkg/domain-errors.
var (
	// ErrUnavailable marks a backing service that could not be reached.
	ErrUnavailable = errors.New("unavailable")
)
