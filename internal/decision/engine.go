package decision

import (
	"time"

	dErrors "otsus/pkg/domain-errors"
	"otsus/pkg/personalcode"
)

// Caller-facing rejection messages, surfaced verbatim in the response
// envelope.
const (
	msgInvalidPersonalCode = "Invalid personal ID code!"
	msgInvalidLoanAmount   = "Invalid loan amount!"
	msgInvalidLoanPeriod   = "Invalid loan period!"
	msgIneligibleAge       = "Age is not eligible for a loan!"
	msgNoValidLoan         = "No valid loan found!"
)

// Engine computes loan decisions. It is pure: no I/O, no shared mutable
// state, safe for concurrent use. All tunables come from the injected Config.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the constants the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Decide evaluates a loan request as of the given instant. The pipeline order
// is fixed: structural validation, amount bounds, period bounds, age
// eligibility, credit segmentation, period search. The first violation wins,
// so an applicant with a malformed code is always rejected for the code, never
// for age.
//
// On approval it returns the earliest qualifying period at or after the
// requested one and the maximum approvable amount for that period. On
// rejection it returns a typed domain error.
func (e *Engine) Decide(req LoanRequest, asOf time.Time) (Decision, error) {
	code, err := e.validate(req)
	if err != nil {
		return Decision{}, err
	}

	if err := e.checkAge(code, asOf); err != nil {
		return Decision{}, err
	}

	modifier, _, err := e.creditModifier(code)
	if err != nil {
		return Decision{}, err
	}

	period, err := e.earliestEligiblePeriod(modifier, req.LoanPeriod)
	if err != nil {
		return Decision{}, err
	}

	return Decision{
		LoanAmount: e.maxAmount(modifier, period),
		LoanPeriod: period,
	}, nil
}

// Segment classifies the applicant without running the full pipeline. Used
// for observability labels; the evaluation itself goes through Decide.
func (e *Engine) Segment(personalCode string) Segment {
	code, err := personalcode.Parse(personalCode)
	if err != nil {
		return SegmentDebt
	}
	_, segment, err := e.creditModifier(code)
	if err != nil {
		return SegmentDebt
	}
	return segment
}

// validate checks personal code structure and amount/period bounds, in that
// order, and reports only the first violation.
func (e *Engine) validate(req LoanRequest) (personalcode.Code, error) {
	code, err := personalcode.Parse(req.PersonalCode)
	if err != nil {
		return personalcode.Code{}, dErrors.Wrap(dErrors.CodeInvalidPersonalCode, msgInvalidPersonalCode, err)
	}

	if req.LoanAmount < e.cfg.MinLoanAmount || req.LoanAmount > e.cfg.MaxLoanAmount {
		return personalcode.Code{}, dErrors.New(dErrors.CodeInvalidLoanAmount, msgInvalidLoanAmount)
	}

	if req.LoanPeriod < e.cfg.MinLoanPeriod || req.LoanPeriod > e.cfg.MaxLoanPeriod {
		return personalcode.Code{}, dErrors.New(dErrors.CodeInvalidLoanPeriod, msgInvalidLoanPeriod)
	}

	return code, nil
}

// checkAge enforces the eligibility window. The upper bound is the country's
// life expectancy minus the maximum loan period in years, so a loan can run
// to full term within the applicant's expected lifetime.
func (e *Engine) checkAge(code personalcode.Code, asOf time.Time) error {
	age := code.AgeAt(asOf)
	maxAge := e.cfg.lifeExpectancy(countryOf(code)) - e.cfg.MaxLoanPeriod/12

	if age < e.cfg.MinAge || age > maxAge {
		return dErrors.New(dErrors.CodeIneligibleAge, msgIneligibleAge)
	}
	return nil
}

// countryOf maps the first digit of the code to its country of issue.
// Unrecognized digits default to Estonia.
func countryOf(code personalcode.Code) Country {
	switch code.CenturyDigit {
	case 4:
		return CountryLatvia
	case 5:
		return CountryLithuania
	default:
		return CountryEstonia
	}
}

// creditModifier maps the last digit of the code to the applicant's segment
// modifier. Digits 0, 1, 2 and 5 mark the debt segment, which is never
// approved.
func (e *Engine) creditModifier(code personalcode.Code) (int, Segment, error) {
	switch code.LastDigit {
	case 4, 6:
		return e.cfg.Segment1Modifier, Segment1, nil
	case 3, 7:
		return e.cfg.Segment2Modifier, Segment2, nil
	case 8, 9:
		return e.cfg.Segment3Modifier, Segment3, nil
	default:
		return 0, SegmentDebt, dErrors.New(dErrors.CodeNoValidLoan, msgNoValidLoan)
	}
}

// earliestEligiblePeriod scans ascending from the requested period for the
// first period whose credit score at the minimum loan amount meets the
// threshold. The scan never wraps or restarts; running past the maximum
// period is the terminal rejection.
func (e *Engine) earliestEligiblePeriod(modifier, startingPeriod int) (int, error) {
	for period := startingPeriod; period <= e.cfg.MaxLoanPeriod; period++ {
		if e.creditScore(modifier, e.cfg.MinLoanAmount, period) >= e.cfg.ScoreThreshold {
			return period, nil
		}
	}
	return 0, dErrors.New(dErrors.CodeNoValidLoan, msgNoValidLoan)
}

// creditScore is the approval score for a modifier/amount/period combination,
// evaluated in floating point.
func (e *Engine) creditScore(modifier, amount, period int) float64 {
	return (float64(modifier) / float64(amount)) * float64(period) / 10
}

// maxAmount sizes the approved amount as the modifier-scaled linear cap,
// bounded by the system ceiling. This is a different equation from the score
// used in the period search; the two are not interchangeable.
func (e *Engine) maxAmount(modifier, period int) int {
	if amount := modifier * period; amount < e.cfg.MaxLoanAmount {
		return amount
	}
	return e.cfg.MaxLoanAmount
}
