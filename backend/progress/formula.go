// Package progress holds the completion and scoring formulas shared by
// every consumer: the playback guard, the quiz scorer, the unlock
// resolver and the dashboards. Keeping them here means the 90%
// threshold and the rounding rule exist exactly once.
package progress

import "math"

// CompletionThreshold is the watched-ratio at which a chapter counts
// as completed.
const CompletionThreshold = 0.90

// Percentage returns round(completed/total*100) clamped to [0,100].
// A course with no chapters reports 0.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(float64(completed) / float64(total) * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Score returns the quiz score as round(100*correct/total).
func Score(correct, total int) int {
	return Percentage(correct, total)
}

// IsCompleted reports whether a watched duration crosses the
// completion threshold. Unknown total duration never completes.
func IsCompleted(watched, total float64) bool {
	if total <= 0 {
		return false
	}
	return watched/total >= CompletionThreshold
}

// Band maps a quiz score to its feedback label. Purely presentational.
func Band(score int) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 60:
		return "good"
	default:
		return "keep trying"
	}
}
