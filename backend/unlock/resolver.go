// Package unlock derives accessibility flags for levels, courses and
// chapters. Everything here is a pure function of its inputs: identical
// inputs always produce identical annotations, which keeps the flags
// testable and lets every caller share one source of truth.
package unlock

import (
	"sort"

	"github.com/Developersbbs/key-system-client-sub001/backend/models"
)

// CourseProgress is the per-course progress summary the resolver
// consumes. A missing entry means the member never started the course.
type CourseProgress struct {
	CompletedChapters  int
	TotalChapters      int
	ProgressPercentage int
}

type AnnotatedCourse struct {
	Course             models.Course
	LevelNumber        int
	IsUnlocked         bool
	IsCompleted        bool
	ProgressPercentage int
}

type AnnotatedChapter struct {
	Chapter     models.Chapter
	IsUnlocked  bool
	IsCompleted bool
}

// LevelAccessible reports whether levelNumber is in the member's
// accessible-levels set. The set itself is decided server-side when
// accounts are administered; the resolver only consumes it.
func LevelAccessible(accessible []int, levelNumber int) bool {
	for _, n := range accessible {
		if n == levelNumber {
			return true
		}
	}
	return false
}

// AnnotateCourses flags one level's courses. Courses unlock
// sequentially: the first course of an accessible level is open, each
// later course opens once the previous one is fully completed. In an
// inaccessible level everything stays locked.
func AnnotateCourses(courses []models.Course, levelNumber int, accessible bool, byCourse map[uint]CourseProgress) []AnnotatedCourse {
	ordered := make([]models.Course, len(courses))
	copy(ordered, courses)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SequenceOrder < ordered[j].SequenceOrder
	})

	annotated := make([]AnnotatedCourse, 0, len(ordered))
	prevCompleted := true
	for _, course := range ordered {
		pct := byCourse[course.ID].ProgressPercentage
		completed := pct == 100
		annotated = append(annotated, AnnotatedCourse{
			Course:             course,
			LevelNumber:        levelNumber,
			IsUnlocked:         accessible && prevCompleted,
			IsCompleted:        completed,
			ProgressPercentage: pct,
		})
		prevCompleted = prevCompleted && completed
	}
	return annotated
}

// AnnotateChapters flags one course's chapters with the same
// sequential rule. A locked course keeps all of its chapters locked.
func AnnotateChapters(chapters []models.Chapter, courseUnlocked bool, completedByChapter map[uint]bool) []AnnotatedChapter {
	ordered := make([]models.Chapter, len(chapters))
	copy(ordered, chapters)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SequenceOrder < ordered[j].SequenceOrder
	})

	annotated := make([]AnnotatedChapter, 0, len(ordered))
	prevCompleted := true
	for _, chapter := range ordered {
		completed := completedByChapter[chapter.ID]
		annotated = append(annotated, AnnotatedChapter{
			Chapter:     chapter,
			IsUnlocked:  courseUnlocked && prevCompleted,
			IsCompleted: completed,
		})
		prevCompleted = prevCompleted && completed
	}
	return annotated
}

// Action labels the call-to-action for a course card: untouched courses
// start, finished ones are reviewed, everything in between continues.
func Action(progressPercentage int) string {
	switch {
	case progressPercentage == 0:
		return "Start"
	case progressPercentage == 100:
		return "Review"
	default:
		return "Continue"
	}
}
