package segment

import (
	"errors"
	"fmt"
)

var (
	// ErrInput is returned for page lists that cannot be segmented:
	// empty, non-positive, duplicate, or non-contiguous page numbers.
	ErrInput = errors.New("invalid input")

	// ErrConfiguration is returned for invalid settings or heading patterns,
	// and when no pass (including synthetic fallback) can satisfy the
	// configuration for the given page count.
	ErrConfiguration = errors.New("configuration error")
)

// ViolationKind classifies why the Validator rejected a chapter list.
type ViolationKind string

const (
	// ViolationStructural covers ordering, contiguity, and range errors.
	ViolationStructural ViolationKind = "structural"
	// ViolationCount means the chapter count is outside [min, max].
	ViolationCount ViolationKind = "count"
	// ViolationLength means a non-final chapter is shorter than the minimum.
	ViolationLength ViolationKind = "length"
)

// Violation describes a rejected chapter list. It never reaches callers of
// Segment except as a warning string.
type Violation struct {
	Kind    ViolationKind
	Message string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s violation: %s", v.Kind, v.Message)
}

func violationf(kind ViolationKind, format string, args ...any) *Violation {
	return &Violation{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
