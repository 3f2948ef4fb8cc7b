package decision

import (
	"time"

	"github.com/google/uuid"
)

// LoanRequest is the input to a single evaluation. Absent amount or period in
// the external request map to zero, which falls outside the configured ranges
// and is rejected the same way as any other out-of-range value.
type LoanRequest struct {
	PersonalCode string
	LoanAmount   int
	LoanPeriod   int
}

// Decision is an approved loan offer. A fresh value is constructed for every
// evaluation; decisions are never shared or cached across calls.
type Decision struct {
	LoanAmount int
	LoanPeriod int
}

// Segment is the applicant risk tier derived from the personal code.
type Segment int

const (
	SegmentDebt Segment = iota
	Segment1
	Segment2
	Segment3
)

func (s Segment) String() string {
	switch s {
	case Segment1:
		return "segment_1"
	case Segment2:
		return "segment_2"
	case Segment3:
		return "segment_3"
	default:
		return "debt"
	}
}

// Record statuses.
const (
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Record is the pseudonymized trail entry written after every evaluation.
// CodeHash is a keyed hash of the personal code; the raw code is never
// persisted.
type Record struct {
	ID              uuid.UUID
	CodeHash        string
	RequestedAmount int
	RequestedPeriod int
	ApprovedAmount  int
	ApprovedPeriod  int
	Status          string
	Reason          string
	CreatedAt       time.Time
}
