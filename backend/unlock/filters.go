package unlock

import "strings"

const (
	StatusCompleted  = "completed"
	StatusInProgress = "in-progress"
	StatusNotStarted = "not-started"
)

// Filters is the display-side filtering contract. Zero values mean
// "no filter"; filters compose with AND semantics.
type Filters struct {
	Search string
	Level  int
	Status string
}

// Filter narrows an annotated course list. Input order is preserved.
func Filter(courses []AnnotatedCourse, f Filters) []AnnotatedCourse {
	term := strings.ToLower(strings.TrimSpace(f.Search))

	filtered := make([]AnnotatedCourse, 0, len(courses))
	for _, course := range courses {
		if term != "" && !matchesSearch(course, term) {
			continue
		}
		if f.Level != 0 && course.LevelNumber != f.Level {
			continue
		}
		if f.Status != "" && !matchesStatus(course, f.Status) {
			continue
		}
		filtered = append(filtered, course)
	}
	return filtered
}

func matchesSearch(c AnnotatedCourse, term string) bool {
	return strings.Contains(strings.ToLower(c.Course.Title), term) ||
		strings.Contains(strings.ToLower(c.Course.Description), term)
}

func matchesStatus(c AnnotatedCourse, status string) bool {
	switch status {
	case StatusCompleted:
		return c.ProgressPercentage == 100
	case StatusInProgress:
		return c.ProgressPercentage > 0 && c.ProgressPercentage < 100
	case StatusNotStarted:
		return c.ProgressPercentage == 0
	default:
		return true
	}
}
