package segment

import "fmt"

// Boundary is a topic-shift chapter start: the first page after a drop in
// similarity between adjacent units.
type Boundary struct {
	Page       int
	Similarity float64
}

// Drop is how far similarity fell at the boundary.
func (b Boundary) Drop() float64 {
	return 1 - b.Similarity
}

// MergePolicy picks which of two boundaries closer than MinChapterPages
// survives. earlier always precedes later.
type MergePolicy func(earlier, later Boundary) Boundary

// StrongestDrop keeps the boundary with the larger similarity drop,
// preferring the earlier one on ties.
func StrongestDrop(earlier, later Boundary) Boundary {
	if later.Drop() > earlier.Drop() {
		return later
	}
	return earlier
}

// KeepEarliest always keeps the earlier boundary.
func KeepEarliest(earlier, _ Boundary) Boundary {
	return earlier
}

func mergePolicyFor(s MergeStrategy) (MergePolicy, error) {
	switch s {
	case MergeStrongestDrop, "":
		return StrongestDrop, nil
	case MergeEarliest:
		return KeepEarliest, nil
	default:
		return nil, fmt.Errorf("%w: unknown merge_strategy %q", ErrConfiguration, s)
	}
}

// mergeBoundaries drops boundaries that would leave the chapter before them
// shorter than minPages. Candidates must be sorted by page. A candidate too
// close to the document start is discarded; a candidate too close to the
// previous survivor competes with it under policy.
func mergeBoundaries(candidates []Boundary, first, minPages int, policy MergePolicy) []Boundary {
	var kept []Boundary
	for _, c := range candidates {
		if c.Page-first < minPages {
			continue
		}
		if n := len(kept); n > 0 && c.Page-kept[n-1].Page < minPages {
			kept[n-1] = policy(kept[n-1], c)
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
