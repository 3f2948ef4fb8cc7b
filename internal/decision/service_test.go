package decision_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"otsus/internal/audit"
	"otsus/internal/decision"
	"otsus/internal/decision/mocks"
	dErrors "otsus/pkg/domain-errors"
	"otsus/pkg/platform/pseudonym"
	"otsus/pkg/requestcontext"
)

const (
	segment2Code = "49002010987"
	debtorCode   = "49002010965"
	underageCode = "61502200230"
)

var evalDate = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

type captureAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *captureAuditor) Emit(_ context.Context, event audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

func (a *captureAuditor) last() audit.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.events[len(a.events)-1]
}

type DecisionServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	auditor *captureAuditor
	service *decision.Service
	ctx     context.Context
}

func TestDecisionServiceSuite(t *testing.T) {
	suite.Run(t, new(DecisionServiceSuite))
}

func (s *DecisionServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.auditor = &captureAuditor{}

	hasher, err := pseudonym.NewHasher("test-pseudonym-key")
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service, err = decision.NewService(decision.NewEngine(decision.DefaultConfig()), s.store, s.auditor, hasher, nil, logger)
	s.Require().NoError(err)

	s.ctx = requestcontext.WithTime(context.Background(), evalDate)
	s.ctx = requestcontext.WithRequestID(s.ctx, "req-123")
}

func (s *DecisionServiceSuite) TestNewService() {
	hasher, err := pseudonym.NewHasher("k")
	s.Require().NoError(err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err = decision.NewService(nil, nil, nil, hasher, nil, logger)
	s.Error(err)

	_, err = decision.NewService(decision.NewEngine(decision.DefaultConfig()), nil, nil, nil, nil, logger)
	s.Error(err)

	_, err = decision.NewService(decision.NewEngine(decision.DefaultConfig()), nil, nil, hasher, nil, nil)
	s.Error(err)
}

func (s *DecisionServiceSuite) TestEvaluateApproved() {
	var saved decision.Record
	s.store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record decision.Record) error {
			saved = record
			return nil
		})

	d, err := s.service.Evaluate(s.ctx, decision.LoanRequest{PersonalCode: segment2Code, LoanAmount: 4000, LoanPeriod: 12})
	s.Require().NoError(err)
	s.Equal(3600, d.LoanAmount)
	s.Equal(12, d.LoanPeriod)

	s.Equal(decision.StatusApproved, saved.Status)
	s.Equal(4000, saved.RequestedAmount)
	s.Equal(3600, saved.ApprovedAmount)
	s.Equal(evalDate, saved.CreatedAt)
	s.NotEqual(segment2Code, saved.CodeHash, "raw code must never be persisted")
	s.NotContains(saved.CodeHash, segment2Code)

	event := s.auditor.last()
	s.Equal(audit.ActionDecisionEvaluated, event.Action)
	s.Equal(decision.StatusApproved, event.Decision)
	s.Equal(saved.CodeHash, event.CodeHash)
	s.Equal("req-123", event.RequestID)
}

func (s *DecisionServiceSuite) TestEvaluateRejected() {
	var saved decision.Record
	s.store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record decision.Record) error {
			saved = record
			return nil
		})

	_, err := s.service.Evaluate(s.ctx, decision.LoanRequest{PersonalCode: debtorCode, LoanAmount: 4000, LoanPeriod: 12})
	s.True(dErrors.HasCode(err, dErrors.CodeNoValidLoan))

	s.Equal(decision.StatusRejected, saved.Status)
	s.Equal("no_valid_loan", saved.Reason)
	s.Zero(saved.ApprovedAmount)

	event := s.auditor.last()
	s.Equal(decision.StatusRejected, event.Decision)
	s.Equal("no_valid_loan", event.Reason)
}

func (s *DecisionServiceSuite) TestEvaluateSurvivesStoreFailure() {
	s.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("pq: connection refused"))

	d, err := s.service.Evaluate(s.ctx, decision.LoanRequest{PersonalCode: segment2Code, LoanAmount: 4000, LoanPeriod: 12})
	s.Require().NoError(err, "trail persistence must not affect the decision")
	s.Equal(3600, d.LoanAmount)
}

func (s *DecisionServiceSuite) TestEvaluateUsesRequestScopedTime() {
	s.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	// Born 2015-02-20. At 2030 the applicant is 15: rejected for age.
	ctx := requestcontext.WithTime(context.Background(), time.Date(2030, 7, 1, 0, 0, 0, 0, time.UTC))
	_, err := s.service.Evaluate(ctx, decision.LoanRequest{PersonalCode: underageCode, LoanAmount: 4000, LoanPeriod: 12})
	s.True(dErrors.HasCode(err, dErrors.CodeIneligibleAge))

	// At 2035 the same applicant is 20; the age gate passes and the debt
	// segment becomes the rejection reason instead.
	ctx = requestcontext.WithTime(context.Background(), time.Date(2035, 7, 1, 0, 0, 0, 0, time.UTC))
	_, err = s.service.Evaluate(ctx, decision.LoanRequest{PersonalCode: underageCode, LoanAmount: 4000, LoanPeriod: 12})
	s.True(dErrors.HasCode(err, dErrors.CodeNoValidLoan))
}

func (s *DecisionServiceSuite) TestEvaluateWithoutTrail() {
	hasher, err := pseudonym.NewHasher("test-pseudonym-key")
	s.Require().NoError(err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := decision.NewService(decision.NewEngine(decision.DefaultConfig()), nil, nil, hasher, nil, logger)
	s.Require().NoError(err)

	d, err := svc.Evaluate(s.ctx, decision.LoanRequest{PersonalCode: segment2Code, LoanAmount: 4000, LoanPeriod: 12})
	s.Require().NoError(err)
	s.Equal(3600, d.LoanAmount)
}

func (s *DecisionServiceSuite) TestEvaluateReturnsFreshDecision() {
	s.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	req := decision.LoanRequest{PersonalCode: segment2Code, LoanAmount: 4000, LoanPeriod: 12}
	first, err := s.service.Evaluate(s.ctx, req)
	s.Require().NoError(err)
	second, err := s.service.Evaluate(s.ctx, req)
	s.Require().NoError(err)

	s.Equal(*first, *second)
	s.NotSame(first, second, "decision values must be freshly constructed per call")
}
