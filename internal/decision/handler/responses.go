package handler

import "otsus/internal/decision"

// DecisionResponse is the HTTP response envelope for decision requests.
// Exactly one of (loanAmount, loanPeriod) or errorMessage is populated; the
// other side is an explicit null.
type DecisionResponse struct {
	LoanAmount   *int    `json:"loanAmount"`
	LoanPeriod   *int    `json:"loanPeriod"`
	ErrorMessage *string `json:"errorMessage"`
}

// FromDecision converts an approved decision to an HTTP response.
func FromDecision(d *decision.Decision) *DecisionResponse {
	amount := d.LoanAmount
	period := d.LoanPeriod
	return &DecisionResponse{
		LoanAmount: &amount,
		LoanPeriod: &period,
	}
}

// FromErrorMessage builds the rejection envelope.
func FromErrorMessage(message string) *DecisionResponse {
	return &DecisionResponse{ErrorMessage: &message}
}
