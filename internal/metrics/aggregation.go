package metrics

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jackzampolin/folio/internal/api"
)

// Summary provides a summary of metrics for a filter.
type Summary struct {
	Count          int            `json:"count" yaml:"count"`
	SuccessCount   int            `json:"success_count" yaml:"success_count"`
	ErrorCount     int            `json:"error_count" yaml:"error_count"`
	TotalPages     int            `json:"total_pages" yaml:"total_pages"`
	TotalChapters  int            `json:"total_chapters" yaml:"total_chapters"`
	TotalTime      time.Duration  `json:"total_time" yaml:"total_time"`
	AvgTimeSeconds float64        `json:"avg_time_seconds" yaml:"avg_time_seconds"`
	AvgChapters    float64        `json:"avg_chapters" yaml:"avg_chapters"`
	LatencyP50     float64        `json:"latency_p50" yaml:"latency_p50"`
	LatencyP95     float64        `json:"latency_p95" yaml:"latency_p95"`
	LatencyMax     float64        `json:"latency_max" yaml:"latency_max"`
	ByMethod       map[string]int `json:"by_method" yaml:"by_method"`
	ByErrorType    map[string]int `json:"by_error_type,omitempty" yaml:"by_error_type,omitempty"`
}

// GetSummary returns a summary of metrics matching the filter.
func (r *Recorder) GetSummary(f Filter) *Summary {
	metrics := r.List(f, 0)

	s := &Summary{
		Count:       len(metrics),
		ByMethod:    make(map[string]int),
		ByErrorType: make(map[string]int),
	}

	var latencies []float64
	for _, m := range metrics {
		s.TotalTime += time.Duration(m.TotalSeconds * float64(time.Second))
		s.TotalPages += m.Pages
		if m.Success {
			s.SuccessCount++
			s.TotalChapters += m.Chapters
			s.ByMethod[m.Method]++
		} else {
			s.ErrorCount++
			s.ByErrorType[m.ErrorType]++
		}

		// Collect latency for percentile calc
		if m.TotalSeconds > 0 {
			latencies = append(latencies, m.TotalSeconds)
		}
	}

	if s.Count > 0 {
		s.AvgTimeSeconds = s.TotalTime.Seconds() / float64(s.Count)
	}
	if s.SuccessCount > 0 {
		s.AvgChapters = float64(s.TotalChapters) / float64(s.SuccessCount)
	}

	if len(latencies) > 0 {
		sort.Float64s(latencies)
		s.LatencyMax = latencies[len(latencies)-1]
		s.LatencyP50 = percentile(latencies, 50)
		s.LatencyP95 = percentile(latencies, 95)
	}

	return s
}

// RenderText renders the summary as a terminal box.
func (s *Summary) RenderText(w io.Writer) error {
	rows := [][2]string{
		{"Documents", fmt.Sprintf("%d  %s %d  %s %d", s.Count, api.Status(true), s.SuccessCount, api.Status(false), s.ErrorCount)},
		{"Pages", fmt.Sprint(s.TotalPages)},
		{"Chapters", fmt.Sprintf("%d (avg %.1f)", s.TotalChapters, s.AvgChapters)},
		{"Time", fmt.Sprintf("%.2fs (avg %.2fs, p95 %.2fs)", s.TotalTime.Seconds(), s.AvgTimeSeconds, s.LatencyP95)},
	}
	for _, method := range sortedKeys(s.ByMethod) {
		rows = append(rows, [2]string{"Method " + method, fmt.Sprint(s.ByMethod[method])})
	}
	for _, errType := range sortedKeys(s.ByErrorType) {
		rows = append(rows, [2]string{"Error " + errType, fmt.Sprint(s.ByErrorType[errType])})
	}
	return api.FormatKeyValues(w, "Segmentation Summary", rows)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// percentile calculates the p-th percentile from a sorted slice of values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	// Calculate the index
	n := float64(len(sorted))
	idx := (p / 100.0) * (n - 1)

	// Interpolate between floor and ceil indices
	lower := int(idx)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	// Linear interpolation
	weight := idx - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
