// Package personalcode validates and parses Estonian-format national
// identification codes (isikukood). A code is eleven digits: a century/gender
// digit, six digits of birth date (YYMMDD), a three-digit sequence number, and
// a mod-11 check digit.
package personalcode

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformed is returned when a code does not satisfy the national format.
var ErrMalformed = errors.New("malformed personal code")

const codeLength = 11

// Code is a structurally valid personal code with its derived fields.
type Code struct {
	raw string

	// BirthDate is the date of birth encoded in the code, at UTC midnight.
	BirthDate time.Time

	// CenturyDigit is the first digit. It encodes birth century (and gender,
	// which this package does not expose).
	CenturyDigit int

	// LastDigit is the final digit of the code, used by callers for
	// segmentation.
	LastDigit int
}

// String returns the raw code.
func (c Code) String() string { return c.raw }

// AgeAt returns the age in whole years at the given date.
func (c Code) AgeAt(at time.Time) int {
	at = at.UTC()
	years := at.Year() - c.BirthDate.Year()
	// Not yet had this year's birthday.
	anniversary := c.BirthDate.AddDate(years, 0, 0)
	if at.Before(anniversary) {
		years--
	}
	return years
}

// Valid reports whether code is structurally valid: eleven digits, a known
// century digit, a real calendar date, and a correct check digit.
func Valid(code string) bool {
	_, err := Parse(code)
	return err == nil
}

// Parse validates code and returns its derived fields.
func Parse(code string) (Code, error) {
	if len(code) != codeLength {
		return Code{}, fmt.Errorf("%w: expected %d digits, got %d", ErrMalformed, codeLength, len(code))
	}

	digits := make([]int, codeLength)
	for i, r := range code {
		if r < '0' || r > '9' {
			return Code{}, fmt.Errorf("%w: non-digit character", ErrMalformed)
		}
		digits[i] = int(r - '0')
	}

	century, ok := centuries[digits[0]]
	if !ok {
		return Code{}, fmt.Errorf("%w: unknown century digit %d", ErrMalformed, digits[0])
	}

	year := century + digits[1]*10 + digits[2]
	month := digits[3]*10 + digits[4]
	day := digits[5]*10 + digits[6]

	birth := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components, so 1990-02-31 silently
	// becomes 1990-03-03. Reject anything that does not round-trip.
	if birth.Year() != year || birth.Month() != time.Month(month) || birth.Day() != day {
		return Code{}, fmt.Errorf("%w: invalid birth date %02d%02d%02d", ErrMalformed, digits[1]*10+digits[2], month, day)
	}

	if checkDigit(digits) != digits[10] {
		return Code{}, fmt.Errorf("%w: check digit mismatch", ErrMalformed)
	}

	return Code{
		raw:          code,
		BirthDate:    birth,
		CenturyDigit: digits[0],
		LastDigit:    digits[10],
	}, nil
}

// centuries maps the first digit to the birth century base year.
var centuries = map[int]int{
	1: 1800, 2: 1800,
	3: 1900, 4: 1900,
	5: 2000, 6: 2000,
	7: 2100, 8: 2100,
}

var (
	checksumWeights1 = [10]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 1}
	checksumWeights2 = [10]int{3, 4, 5, 6, 7, 8, 9, 1, 2, 3}
)

// checkDigit computes the mod-11 check digit over the first ten digits.
// If the first round yields 10 the weights shift by two; if the second round
// also yields 10 the check digit is 0.
func checkDigit(digits []int) int {
	sum := 0
	for i, w := range checksumWeights1 {
		sum += digits[i] * w
	}
	if r := sum % 11; r < 10 {
		return r
	}

	sum = 0
	for i, w := range checksumWeights2 {
		sum += digits[i] * w
	}
	if r := sum % 11; r < 10 {
		return r
	}
	return 0
}
