package decision

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "otsus/pkg/domain-errors"
)

// Applicant codes by segment (the last digit drives segmentation).
const (
	debtorCode   = "49002010965"
	segment1Code = "49002010976"
	segment2Code = "49002010987"
	segment3Code = "49002010998"

	underageCode = "61502200230" // born 2015, Estonia
	elderlyCode  = "43912090313" // born 1939, first digit 4 -> Latvia table
)

// evalDate pins the evaluation instant so age checks are deterministic.
var evalDate = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(DefaultConfig())
}

func TestDecideSegments(t *testing.T) {
	e := newTestEngine()

	t.Run("segment 1 extends the period", func(t *testing.T) {
		// Score at the requested 12 months is below threshold; 20 is the
		// first qualifying period, and the amount is the modifier-scaled cap.
		d, err := e.Decide(LoanRequest{PersonalCode: segment1Code, LoanAmount: 4000, LoanPeriod: 12}, evalDate)
		require.NoError(t, err)
		assert.Equal(t, 2000, d.LoanAmount)
		assert.Equal(t, 20, d.LoanPeriod)
	})

	t.Run("segment 2 approves at the requested period", func(t *testing.T) {
		d, err := e.Decide(LoanRequest{PersonalCode: segment2Code, LoanAmount: 4000, LoanPeriod: 12}, evalDate)
		require.NoError(t, err)
		assert.Equal(t, 3600, d.LoanAmount)
		assert.Equal(t, 12, d.LoanPeriod)
	})

	t.Run("segment 3 hits the system ceiling", func(t *testing.T) {
		// Raw modifier*period is 12000; the offer is capped at 10000.
		d, err := e.Decide(LoanRequest{PersonalCode: segment3Code, LoanAmount: 4000, LoanPeriod: 12}, evalDate)
		require.NoError(t, err)
		assert.Equal(t, 10000, d.LoanAmount)
		assert.Equal(t, 12, d.LoanPeriod)
	})

	t.Run("debt segment is rejected before any period search", func(t *testing.T) {
		_, err := e.Decide(LoanRequest{PersonalCode: debtorCode, LoanAmount: 4000, LoanPeriod: 12}, evalDate)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNoValidLoan))

		_, err = e.Decide(LoanRequest{PersonalCode: debtorCode, LoanAmount: 10000, LoanPeriod: 48}, evalDate)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNoValidLoan))
	})
}

func TestDecideValidation(t *testing.T) {
	e := newTestEngine()
	cfg := e.Config()

	t.Run("invalid personal code wins regardless of other fields", func(t *testing.T) {
		for _, req := range []LoanRequest{
			{PersonalCode: "12345678901", LoanAmount: 4000, LoanPeriod: 12},
			{PersonalCode: "", LoanAmount: 4000, LoanPeriod: 12},
			{PersonalCode: "12345678901", LoanAmount: 1, LoanPeriod: 1},
			{PersonalCode: "4900201097", LoanAmount: 4000, LoanPeriod: 12},
		} {
			_, err := e.Decide(req, evalDate)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidPersonalCode), "req %+v", req)
		}
	})

	t.Run("amount bounds are inclusive", func(t *testing.T) {
		_, err := e.Decide(LoanRequest{PersonalCode: segment1Code, LoanAmount: cfg.MinLoanAmount - 1, LoanPeriod: 12}, evalDate)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidLoanAmount))

		_, err = e.Decide(LoanRequest{PersonalCode: segment1Code, LoanAmount: cfg.MaxLoanAmount + 1, LoanPeriod: 12}, evalDate)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidLoanAmount))

		_, err = e.Decide(LoanRequest{PersonalCode: segment3Code, LoanAmount: cfg.MinLoanAmount, LoanPeriod: 12}, evalDate)
		assert.NoError(t, err)

		_, err = e.Decide(LoanRequest{PersonalCode: segment3Code, LoanAmount: cfg.MaxLoanAmount, LoanPeriod: 12}, evalDate)
		assert.NoError(t, err)
	})

	t.Run("period bounds are inclusive", func(t *testing.T) {
		_, err := e.Decide(LoanRequest{PersonalCode: segment1Code, LoanAmount: 4000, LoanPeriod: cfg.MinLoanPeriod - 1}, evalDate)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidLoanPeriod))

		_, err = e.Decide(LoanRequest{PersonalCode: segment1Code, LoanAmount: 4000, LoanPeriod: cfg.MaxLoanPeriod + 1}, evalDate)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidLoanPeriod))

		_, err = e.Decide(LoanRequest{PersonalCode: segment2Code, LoanAmount: 4000, LoanPeriod: cfg.MinLoanPeriod}, evalDate)
		assert.NoError(t, err)

		_, err = e.Decide(LoanRequest{PersonalCode: segment2Code, LoanAmount: 4000, LoanPeriod: cfg.MaxLoanPeriod}, evalDate)
		assert.NoError(t, err)
	})

	t.Run("absent fields map to zero and fail the same bound check", func(t *testing.T) {
		_, err := e.Decide(LoanRequest{PersonalCode: segment1Code, LoanPeriod: 12}, evalDate)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidLoanAmount))

		_, err = e.Decide(LoanRequest{PersonalCode: segment1Code, LoanAmount: 4000}, evalDate)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidLoanPeriod))
	})

	t.Run("amount is checked before period", func(t *testing.T) {
		_, err := e.Decide(LoanRequest{PersonalCode: segment1Code, LoanAmount: 1, LoanPeriod: 1}, evalDate)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidLoanAmount))
	})
}

func TestDecideAgeEligibility(t *testing.T) {
	e := newTestEngine()

	t.Run("under minimum age", func(t *testing.T) {
		_, err := e.Decide(LoanRequest{PersonalCode: underageCode, LoanAmount: 4000, LoanPeriod: 12}, evalDate)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeIneligibleAge))
	})

	t.Run("over country maximum", func(t *testing.T) {
		// Latvia table: 82 - 48/12 = 78; the applicant is 85 at evalDate.
		_, err := e.Decide(LoanRequest{PersonalCode: elderlyCode, LoanAmount: 4000, LoanPeriod: 12}, evalDate)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeIneligibleAge))
	})

	t.Run("age check runs before segmentation", func(t *testing.T) {
		// The underage code also ends in a debt-segment digit; age wins.
		_, err := e.Decide(LoanRequest{PersonalCode: underageCode, LoanAmount: 4000, LoanPeriod: 12}, evalDate)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeIneligibleAge))
		assert.False(t, dErrors.HasCode(err, dErrors.CodeNoValidLoan))
	})

	t.Run("boundary ages pass", func(t *testing.T) {
		// Estonia table: eligible window is [18, 80] at the default config.
		// Born 1990 -> 35 at evalDate.
		_, err := e.Decide(LoanRequest{PersonalCode: segment2Code, LoanAmount: 4000, LoanPeriod: 12}, evalDate)
		assert.NoError(t, err)
	})
}

func TestDecideNoQualifyingPeriod(t *testing.T) {
	// With a raised threshold, segment 1's score never reaches it within the
	// period range, so the scan exhausts and rejects.
	cfg := DefaultConfig()
	cfg.ScoreThreshold = 0.3
	e := NewEngine(cfg)

	_, err := e.Decide(LoanRequest{PersonalCode: segment1Code, LoanAmount: 4000, LoanPeriod: 12}, evalDate)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNoValidLoan))

	// Segment 2 still clears it: (300/2000)*20/10 = 0.3 at 20 months.
	d, err := e.Decide(LoanRequest{PersonalCode: segment2Code, LoanAmount: 4000, LoanPeriod: 12}, evalDate)
	require.NoError(t, err)
	assert.Equal(t, 20, d.LoanPeriod)
	assert.Equal(t, 6000, d.LoanAmount)
}

func TestDecideIsIdempotent(t *testing.T) {
	e := newTestEngine()
	req := LoanRequest{PersonalCode: segment1Code, LoanAmount: 4000, LoanPeriod: 12}

	first, err1 := e.Decide(req, evalDate)
	second, err2 := e.Decide(req, evalDate)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestSegment(t *testing.T) {
	e := newTestEngine()

	assert.Equal(t, Segment1, e.Segment(segment1Code))
	assert.Equal(t, Segment2, e.Segment(segment2Code))
	assert.Equal(t, Segment3, e.Segment(segment3Code))
	assert.Equal(t, SegmentDebt, e.Segment(debtorCode))
	assert.Equal(t, SegmentDebt, e.Segment("not-a-code"))
}
