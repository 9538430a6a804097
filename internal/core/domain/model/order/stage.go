package order

import (
	"fmt"

	"atelier/internal/pkg/errs"
)

// Stage is the position of an order in the manufacturing pipeline.
// Stages form a total order:
//
//	Cutting < Sewing < Review < Packaging
//
// AdvanceStage moves exactly one step forward along this order; arbitrary
// moves (including backward, with a note) go through ChangeStage. There is no
// stage after Packaging: finishing an order is a status transition, not a
// stage transition.
type Stage int

const (
	// UnknownStage catches uninitialized Stage values.
	UnknownStage Stage = iota

	// Cutting is the first stage; every order starts here.
	Cutting

	// Sewing follows cutting.
	Sewing

	// Review is the quality inspection stage.
	Review

	// Packaging is the last stage; completion is only legal from here.
	Packaging
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		UnknownStage: "Unknown",
		Cutting:      "Cutting",
		Sewing:       "Sewing",
		Review:       "Review",
		Packaging:    "Packaging",
	}
}

// ParseStage converts a string such as "Sewing" into a Stage.
// Returns an error for anything outside the closed set.
func ParseStage(s string) (Stage, error) {
	for stage, name := range getStageStrings() {
		if stage != UnknownStage && name == s {
			return stage, nil
		}
	}
	return UnknownStage, errs.NewValueIsInvalidErrorWithCause(
		"stage",
		fmt.Errorf("%q is not a valid stage", s),
	)
}

// Validate checks that the value is one of the four pipeline stages.
func (s Stage) Validate() error {
	if s < Cutting || s > Packaging {
		return errs.NewValueIsInvalidErrorWithCause(
			"stage",
			fmt.Errorf("%d is not a valid stage", s),
		)
	}
	return nil
}

// String returns the human-readable stage name.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Next returns the following stage in the pipeline.
//
// Returns ErrNoFurtherStage when called on Packaging: the pipeline ends there
// and the caller must complete the order through a status update instead.
func (s Stage) Next() (Stage, error) {
	if err := s.Validate(); err != nil {
		return UnknownStage, err
	}
	if s == Packaging {
		return UnknownStage, ErrNoFurtherStage
	}
	return s + 1, nil
}

// Precedes reports whether s comes strictly before other in the pipeline.
// Used to detect backward moves, which require a documenting note.
func (s Stage) Precedes(other Stage) bool {
	return s < other
}
