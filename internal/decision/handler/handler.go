package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"otsus/internal/decision"
	dErrors "otsus/pkg/domain-errors"
	"otsus/pkg/platform/httputil"
	"otsus/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/decision-mocks.go -package=mocks Service

// Service defines the interface for decision operations.
type Service interface {
	Evaluate(ctx context.Context, req decision.LoanRequest) (*decision.Decision, error)
}

// Handler wires decision endpoints to the decision service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a decision handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts decision endpoints on the router. The legacy path is kept
// for clients of the original backend.
func (h *Handler) Register(r chi.Router) {
	r.Post("/decision/evaluate", h.HandleEvaluate)
	r.Post("/loan/decision", h.HandleEvaluate)
}

// HandleEvaluate handles a loan decision request. All outcomes use the
// decision envelope: approved requests carry the amount and period, named
// rejections carry their message with 400 or 404, and anything unexpected
// collapses to a generic 500 with no internal detail.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			h.logger.ErrorContext(ctx, "decision evaluation panicked",
				"request_id", requestID,
				"panic", rec,
			)
			httputil.WriteJSON(w, http.StatusInternalServerError, FromErrorMessage("An unexpected error occurred"))
		}
	}()

	req, ok := httputil.DecodeAndPrepare[DecisionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Evaluate(ctx, req.ToDomain())
	if err != nil {
		code := dErrors.CodeOf(err)
		if code == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "decision evaluation failed",
				"request_id", requestID,
				"error", err,
			)
		} else {
			h.logger.InfoContext(ctx, "decision rejected",
				"request_id", requestID,
				"reason", code,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}
		httputil.WriteJSON(w, dErrors.ToHTTPStatus(code), FromErrorMessage(dErrors.MessageOf(err)))
		return
	}

	h.logger.InfoContext(ctx, "decision approved",
		"request_id", requestID,
		"amount", result.LoanAmount,
		"period", result.LoanPeriod,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromDecision(result))
}
