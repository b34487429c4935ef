package models

import "gorm.io/gorm"

// UserChapterProgress is the per-user watch state of one chapter.
// WatchedDuration never decreases and Completed never flips back to
// false once the 90% threshold has been crossed.
type UserChapterProgress struct {
	gorm.Model
	UserID          uint `gorm:"uniqueIndex:idx_user_chapter_progress"`
	CourseID        uint
	ChapterID       uint    `gorm:"uniqueIndex:idx_user_chapter_progress"`
	WatchedDuration float64 // seconds
	TotalDuration   float64 // seconds, set once video metadata is known
	Completed       bool
}

// ChapterProgressSummary is the per-chapter slice of a course progress
// report.
type ChapterProgressSummary struct {
	ChapterID       uint    `json:"chapterId"`
	WatchedDuration float64 `json:"watchedDuration"`
	TotalDuration   float64 `json:"totalDuration"`
	Completed       bool    `json:"completed"`
}

type CourseProgressReport struct {
	CourseID           uint                     `json:"courseId"`
	CompletedChapters  int                      `json:"completedChapters"`
	TotalChapters      int                      `json:"totalChapters"`
	ProgressPercentage int                      `json:"progressPercentage"`
	ChaptersProgress   []ChapterProgressSummary `json:"chaptersProgress"`
}

// UserProgressRow is one element of the overall user-progress report,
// one row per enrolled course.
type UserProgressRow struct {
	CourseID           uint   `json:"courseId"`
	CourseTitle        string `json:"courseTitle"`
	LevelNumber        int    `json:"levelNumber"`
	CompletedChapters  int    `json:"completedChapters"`
	TotalChapters      int    `json:"totalChapters"`
	ProgressPercentage int    `json:"progressPercentage"`
	CompletedCourses   int    `json:"completedCourses"`
	TotalCourses       int    `json:"totalCourses"`
}
