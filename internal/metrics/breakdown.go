package metrics

// PagesByMethod returns total pages segmented by each detection method.
func (r *Recorder) PagesByMethod(f Filter) map[string]int {
	breakdown := make(map[string]int)
	for _, m := range r.List(f, 0) {
		if m.Success {
			breakdown[m.Method] += m.Pages
		}
	}
	return breakdown
}

// ChaptersByMethod returns total chapters produced by each detection method.
func (r *Recorder) ChaptersByMethod(f Filter) map[string]int {
	breakdown := make(map[string]int)
	for _, m := range r.List(f, 0) {
		if m.Success {
			breakdown[m.Method] += m.Chapters
		}
	}
	return breakdown
}

// AttemptsByMethod returns the average number of pass attempts for documents
// settled by each method. Higher values mean more relaxation was needed.
func (r *Recorder) AttemptsByMethod(f Filter) map[string]float64 {
	totals := make(map[string]int)
	counts := make(map[string]int)
	for _, m := range r.List(f, 0) {
		if m.Success {
			totals[m.Method] += m.Attempts
			counts[m.Method]++
		}
	}

	breakdown := make(map[string]float64, len(totals))
	for method, total := range totals {
		breakdown[method] = float64(total) / float64(counts[method])
	}
	return breakdown
}
