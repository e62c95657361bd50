package saver

import (
	"errors"
	"fmt"
)

var (
	// ErrExtraction matches every *ExtractionError via errors.Is.
	ErrExtraction = errors.New("extraction failed")
	// ErrSanitization matches every *SanitizationError via errors.Is.
	ErrSanitization = errors.New("sanitization failed")
)

// Step names the unit operation that failed.
type Step string

const (
	StepSave     Step = "save"
	StepValidate Step = "validate"
	// StepJoin marks a cycle stopped before any unit failed, e.g. by ctx.
	StepJoin Step = "join"
)

// ExtractionError reports a failed Save or Validate of one unit. It aborts
// the whole save cycle.
type ExtractionError struct {
	UnitID string
	Index  int
	Step   Step
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Step == StepJoin {
		return fmt.Sprintf("extraction: %v", e.Err)
	}
	if e.Index < 0 {
		return fmt.Sprintf("extraction: unit %q %s: %v", e.UnitID, e.Step, e.Err)
	}
	return fmt.Sprintf("extraction: unit %q (#%d) %s: %v", e.UnitID, e.Index, e.Step, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

// SanitizationError reports a failed sanitizer call or a batch that does not
// line up with its input.
type SanitizationError struct {
	Reason string
	Err    error
}

func (e *SanitizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sanitization: %s: %v", e.Reason, e.Err)
	}
	return "sanitization: " + e.Reason
}

func (e *SanitizationError) Unwrap() error { return e.Err }

func (e *SanitizationError) Is(target error) bool { return target == ErrSanitization }
