package decision

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"otsus/internal/audit"
	"otsus/internal/decision/metrics"
	dErrors "otsus/pkg/domain-errors"
	"otsus/pkg/platform/pseudonym"
	"otsus/pkg/requestcontext"
)

const tracerName = "otsus/internal/decision"

// Auditor receives decision events. Implementations must not block the
// request path.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service wraps the pure engine with the ambient concerns: request-scoped
// evaluation time, tracing, metrics, and best-effort record persistence and
// audit emission. The decision itself is entirely the engine's; nothing here
// changes the outcome.
type Service struct {
	engine  *Engine
	store   Store
	auditor Auditor
	hasher  *pseudonym.Hasher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewService constructs a decision service. store and auditor may be nil when
// the trail is not configured; hasher is required because records and events
// must never carry raw personal codes.
func NewService(engine *Engine, store Store, auditor Auditor, hasher *pseudonym.Hasher, m *metrics.Metrics, logger *slog.Logger) (*Service, error) {
	if engine == nil {
		return nil, fmt.Errorf("decision engine is required")
	}
	if hasher == nil {
		return nil, fmt.Errorf("pseudonym hasher is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{
		engine:  engine,
		store:   store,
		auditor: auditor,
		hasher:  hasher,
		metrics: m,
		logger:  logger,
	}, nil
}

// Evaluate runs one loan decision. The evaluation instant comes from the
// request-scoped time in ctx so a single request observes a single "now" and
// tests can pin it.
func (s *Service) Evaluate(ctx context.Context, req LoanRequest) (*Decision, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "decision.evaluate",
		trace.WithAttributes(attribute.Int("loan.requested_amount", req.LoanAmount)),
	)
	defer span.End()

	asOf := requestcontext.Now(ctx)
	start := time.Now()

	decision, err := s.engine.Decide(req, asOf)

	segment := s.engine.Segment(req.PersonalCode)
	status := StatusApproved
	reason := ""
	if err != nil {
		status = StatusRejected
		reason = string(dErrors.CodeOf(err))
	}

	span.SetAttributes(
		attribute.String("decision.status", status),
		attribute.String("decision.segment", segment.String()),
	)
	s.metrics.IncrementOutcome(status, segment.String())
	s.metrics.ObserveEvaluateLatency(time.Since(start))
	if err == nil {
		s.metrics.ObserveApprovedAmount(decision.LoanAmount)
	}

	s.record(ctx, req, decision, status, reason, asOf)

	if err != nil {
		return nil, err
	}
	// Fresh value per call; never reuse or cache decisions across requests.
	out := decision
	return &out, nil
}

// record persists the pseudonymized trail entry and emits the audit event.
// Failures are logged and swallowed: the caller's decision does not depend on
// the trail being writable.
func (s *Service) record(ctx context.Context, req LoanRequest, decision Decision, status, reason string, asOf time.Time) {
	codeHash := s.hasher.Hash(req.PersonalCode)

	if s.store != nil {
		rec := Record{
			ID:              uuid.New(),
			CodeHash:        codeHash,
			RequestedAmount: req.LoanAmount,
			RequestedPeriod: req.LoanPeriod,
			ApprovedAmount:  decision.LoanAmount,
			ApprovedPeriod:  decision.LoanPeriod,
			Status:          status,
			Reason:          reason,
			CreatedAt:       asOf,
		}
		if err := s.store.Save(ctx, rec); err != nil {
			s.logger.WarnContext(ctx, "decision record save failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
	}

	if s.auditor != nil {
		s.auditor.Emit(ctx, audit.Event{
			Timestamp: asOf,
			CodeHash:  codeHash,
			Action:    audit.ActionDecisionEvaluated,
			Decision:  status,
			Reason:    reason,
			Amount:    decision.LoanAmount,
			Period:    decision.LoanPeriod,
			RequestID: requestcontext.RequestID(ctx),
			ClientIP:  requestcontext.ClientIP(ctx),
			UserAgent: requestcontext.UserAgent(ctx),
		})
	}
}
