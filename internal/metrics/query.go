package metrics

import "time"

// Filter specifies query filters.
type Filter struct {
	RunID      string
	DocumentID string
	Method     string
	ErrorType  string
	After      time.Time
	Before     time.Time
	Success    *bool // nil = any, true = success only, false = errors only
}

// matches reports whether m passes every set field of f.
func (f Filter) matches(m Metric) bool {
	if f.RunID != "" && m.RunID != f.RunID {
		return false
	}
	if f.DocumentID != "" && m.DocumentID != f.DocumentID {
		return false
	}
	if f.Method != "" && m.Method != f.Method {
		return false
	}
	if f.ErrorType != "" && m.ErrorType != f.ErrorType {
		return false
	}
	if !f.After.IsZero() && !m.CreatedAt.After(f.After) {
		return false
	}
	if !f.Before.IsZero() && !m.CreatedAt.Before(f.Before) {
		return false
	}
	if f.Success != nil && m.Success != *f.Success {
		return false
	}
	return true
}

// List returns metrics matching the filter in recording order.
// A limit of 0 returns all matches.
func (r *Recorder) List(f Filter, limit int) []Metric {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var metrics []Metric
	for _, m := range r.metrics {
		if limit > 0 && len(metrics) >= limit {
			break
		}
		if f.matches(m) {
			metrics = append(metrics, m)
		}
	}
	return metrics
}
