package order

import (
	"fmt"

	"atelier/internal/pkg/errs"
)

// Status is the operational state of an order, independent of its pipeline
// stage. Most status changes are free-form (an order can be paused, stopped,
// resumed, cancelled at any stage); the two hard rules live on the aggregate:
// Completed is only reachable from the Packaging stage, and once Completed no
// further status change is accepted.
type Status int

const (
	// UnknownStatus catches uninitialized Status values.
	UnknownStatus Status = iota

	// Pending marks an order that is registered but not being worked on.
	Pending

	// InProduction marks active work. Time spent in this status is what the
	// cost calculation counts as effective working hours.
	InProduction

	// Paused marks a temporary hold. Paused intervals are excluded from
	// effective hours.
	Paused

	// Stopped marks a longer interruption, also excluded from effective hours.
	Stopped

	// Completed is the terminal state. It triggers the final cost calculation
	// and no transition ever leaves it.
	Completed

	// Cancelled marks an order that will not be produced.
	Cancelled

	// Finished marks post-completion administrative closure used by reporting.
	Finished
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Pending:       "Pending",
		InProduction:  "InProduction",
		Paused:        "Paused",
		Stopped:       "Stopped",
		Completed:     "Completed",
		Cancelled:     "Cancelled",
		Finished:      "Finished",
	}
}

// ParseStatus converts a string such as "Paused" into a Status.
// Returns an error for anything outside the closed set.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != UnknownStatus && name == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks that the value is one of the defined statuses.
func (s Status) Validate() error {
	if s < Pending || s > Finished {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the human-readable status name.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
// Only Completed is terminal; Cancelled and Finished orders can still be
// corrected by a supervisor.
func (s Status) IsTerminal() bool {
	return s == Completed
}
