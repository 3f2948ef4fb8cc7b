package handler

import (
	"strings"

	"otsus/internal/decision"
	dErrors "otsus/pkg/domain-errors"
)

// DecisionRequest is the HTTP request body for POST /decision/evaluate.
// Amount and period are pointers so an absent field is distinguishable from
// an explicit zero in logs; both map to zero for the engine, which rejects
// them by the same bound checks.
type DecisionRequest struct {
	PersonalCode string `json:"personalCode"`
	LoanAmount   *int   `json:"loanAmount"`
	LoanPeriod   *int   `json:"loanPeriod"`
}

// Validate normalizes the request. Field semantics (code structure and
// length, amount and period bounds, their ordering) are deliberately left to
// the decision engine so every named rejection flows through the decision
// envelope and the taxonomy has a single owner.
func (r *DecisionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.PersonalCode = strings.TrimSpace(r.PersonalCode)
	return nil
}

// ToDomain converts the DTO into the engine's request shape.
func (r *DecisionRequest) ToDomain() decision.LoanRequest {
	req := decision.LoanRequest{PersonalCode: r.PersonalCode}
	if r.LoanAmount != nil {
		req.LoanAmount = *r.LoanAmount
	}
	if r.LoanPeriod != nil {
		req.LoanPeriod = *r.LoanPeriod
	}
	return req
}
