package kernel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"atelier/internal/pkg/errs"
)

// lotCodePrefix is the fixed marker every lot code starts with.
const lotCodePrefix = "OP"

// ErrLotCodeIsNotConstructed indicates a zero-value LotCode.
var ErrLotCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"LotCode must be created via NewLotCode or ParseLotCode",
)

// LotCode is the human-readable order identifier in the form
// "OP-<year>-<month>-<day>-<N>", with zero-padded month and day and N being
// the per-day sequence number starting at 1. The date part groups orders by
// the calendar day they were created; N makes the code unique within the day.
//
// LotCode is immutable. The zero value is invalid.
type LotCode struct {
	year     int
	month    time.Month
	day      int
	sequence int
}

// NewLotCode builds a lot code for the calendar day of t with the given
// sequence number. The sequence must be at least 1.
func NewLotCode(t time.Time, sequence int) (LotCode, error) {
	if sequence < 1 {
		return LotCode{}, errs.NewValueIsInvalidErrorWithCause(
			"sequence",
			fmt.Errorf("%d is not greater than 0", sequence),
		)
	}

	year, month, day := t.Date()
	return LotCode{year: year, month: month, day: day, sequence: sequence}, nil
}

// ParseLotCode parses the string form "OP-2026-08-30-3" back into a LotCode.
func ParseLotCode(s string) (LotCode, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 5 || parts[0] != lotCodePrefix {
		return LotCode{}, errs.NewValueIsInvalidErrorWithCause(
			"lot code",
			fmt.Errorf("%q does not match OP-<year>-<month>-<day>-<N>", s),
		)
	}

	numbers := make([]int, 0, 4)
	for _, part := range parts[1:] {
		n, err := strconv.Atoi(part)
		if err != nil {
			return LotCode{}, errs.NewValueIsInvalidErrorWithCause("lot code", err)
		}
		numbers = append(numbers, n)
	}

	date := time.Date(numbers[0], time.Month(numbers[1]), numbers[2], 0, 0, 0, 0, time.UTC)
	if date.Year() != numbers[0] || int(date.Month()) != numbers[1] || date.Day() != numbers[2] {
		return LotCode{}, errs.NewValueIsInvalidErrorWithCause(
			"lot code",
			fmt.Errorf("%q contains an invalid calendar date", s),
		)
	}

	return NewLotCode(date, numbers[3])
}

// LotCodeDayPrefix returns the "OP-<year>-<month>-<day>-" prefix shared by all
// lot codes allocated on the calendar day of t. The allocator uses it to find
// the highest sequence number already taken.
func LotCodeDayPrefix(t time.Time) string {
	year, month, day := t.Date()
	return fmt.Sprintf("%s-%d-%02d-%02d-", lotCodePrefix, year, month, day)
}

// String returns the full code, e.g. "OP-2026-08-30-3".
func (c LotCode) String() string {
	return fmt.Sprintf("%s-%d-%02d-%02d-%d", lotCodePrefix, c.year, c.month, c.day, c.sequence)
}

// Sequence returns the per-day sequence number N.
func (c LotCode) Sequence() int {
	return c.sequence
}

// DayPrefix returns the day prefix this code belongs to.
func (c LotCode) DayPrefix() string {
	return fmt.Sprintf("%s-%d-%02d-%02d-", lotCodePrefix, c.year, c.month, c.day)
}

// IsEqual reports whether two lot codes are the same code.
func (c LotCode) IsEqual(other LotCode) bool {
	return c == other
}

// Validate returns ErrLotCodeIsNotConstructed for a zero-value code.
func (c LotCode) Validate() error {
	if c.sequence < 1 {
		return ErrLotCodeIsNotConstructed
	}
	return nil
}
