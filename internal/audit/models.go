package audit

import "time"

// Actions emitted by the decision service.
const (
	ActionDecisionEvaluated = "decision.evaluated"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out. CodeHash is a
// pseudonym; raw personal codes never enter the audit trail.
type Event struct {
	Timestamp time.Time
	CodeHash  string
	Action    string
	Decision  string
	Reason    string
	Amount    int
	Period    int
	RequestID string
	ClientIP  string

	// UserAgent is the raw header as received; the publisher replaces it
	// with the parsed Browser/OS pair before the event leaves the process.
	UserAgent string
	Browser   string
	OS        string
}
