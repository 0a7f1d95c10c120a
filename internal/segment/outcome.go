package segment

import "github.com/jackzampolin/folio/internal/types"

// Outcome is the result of one pass: either Accepted or Rejected.
type Outcome interface {
	outcome()
}

// Accepted carries a validated chapter list.
type Accepted struct {
	Chapters []types.Chapter
}

// Rejected means the pass produced nothing usable. Violation is nil when the
// pass gave up before validation (e.g. no heading matches).
type Rejected struct {
	Reason    string
	Violation *Violation
}

func (Accepted) outcome() {}
func (Rejected) outcome() {}

func rejectf(v *Violation, reason string) Rejected {
	if v != nil && reason == "" {
		reason = v.Error()
	}
	return Rejected{Reason: reason, Violation: v}
}
