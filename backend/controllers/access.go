package controllers

import (
	"sort"

	"gorm.io/gorm"

	"github.com/Developersbbs/key-system-client-sub001/backend/models"
	"github.com/Developersbbs/key-system-client-sub001/backend/progress"
	"github.com/Developersbbs/key-system-client-sub001/backend/unlock"
)

// progressByCourse builds the per-course summaries the resolver
// consumes, from the member's completed chapter rows.
func progressByCourse(db *gorm.DB, userID uint, courses []models.Course) map[uint]unlock.CourseProgress {
	var rows []models.UserChapterProgress
	db.Where("user_id = ? AND completed = ?", userID, true).Find(&rows)

	completedByCourse := make(map[uint]int)
	for _, row := range rows {
		completedByCourse[row.CourseID]++
	}

	byCourse := make(map[uint]unlock.CourseProgress, len(courses))
	for _, course := range courses {
		total := len(course.Chapters)
		done := completedByCourse[course.ID]
		if done > total {
			done = total
		}
		byCourse[course.ID] = unlock.CourseProgress{
			CompletedChapters:  done,
			TotalChapters:      total,
			ProgressPercentage: progress.Percentage(done, total),
		}
	}
	return byCourse
}

// annotatedCoursesFor returns every course, level by level, flagged for
// the member.
func annotatedCoursesFor(db *gorm.DB, user *models.User) ([]unlock.AnnotatedCourse, error) {
	var levels []models.Level
	if err := db.Preload("Courses.Chapters").Order("level_number").Find(&levels).Error; err != nil {
		return nil, err
	}

	accessible := user.AccessibleLevelNumbers()
	var all []unlock.AnnotatedCourse
	for _, level := range levels {
		byCourse := progressByCourse(db, user.ID, level.Courses)
		all = append(all, unlock.AnnotateCourses(
			level.Courses,
			level.LevelNumber,
			user.IsAdmin() || unlock.LevelAccessible(accessible, level.LevelNumber),
			byCourse,
		)...)
	}
	return all, nil
}

// completedChapterSet lists which of a course's chapters the member has
// completed.
func completedChapterSet(db *gorm.DB, userID, courseID uint) map[uint]bool {
	var rows []models.UserChapterProgress
	db.Where("user_id = ? AND course_id = ? AND completed = ?", userID, courseID, true).Find(&rows)

	set := make(map[uint]bool, len(rows))
	for _, row := range rows {
		set[row.ChapterID] = true
	}
	return set
}

// chapterUnlocked resolves whether one chapter is open for the member.
// Admins bypass the gate. No progress or quiz call is served for a
// locked chapter.
func chapterUnlocked(db *gorm.DB, user *models.User, course models.Course, chapterID uint) (bool, error) {
	if user.IsAdmin() {
		return true, nil
	}

	var level models.Level
	if err := db.Preload("Courses.Chapters").First(&level, course.LevelID).Error; err != nil {
		return false, err
	}

	byCourse := progressByCourse(db, user.ID, level.Courses)
	annotated := unlock.AnnotateCourses(
		level.Courses,
		level.LevelNumber,
		unlock.LevelAccessible(user.AccessibleLevelNumbers(), level.LevelNumber),
		byCourse,
	)

	courseOpen := false
	for _, ac := range annotated {
		if ac.Course.ID == course.ID {
			courseOpen = ac.IsUnlocked
			break
		}
	}

	chapters := unlock.AnnotateChapters(course.Chapters, courseOpen, completedChapterSet(db, user.ID, course.ID))
	for _, ch := range chapters {
		if ch.Chapter.ID == chapterID {
			return ch.IsUnlocked, nil
		}
	}
	return false, nil
}

// buildCourseProgress assembles the per-course progress report, one
// summary per chapter in sequence order.
func buildCourseProgress(db *gorm.DB, userID uint, course models.Course) models.CourseProgressReport {
	var rows []models.UserChapterProgress
	db.Where("user_id = ? AND course_id = ?", userID, course.ID).Find(&rows)

	byChapter := make(map[uint]models.UserChapterProgress, len(rows))
	for _, row := range rows {
		byChapter[row.ChapterID] = row
	}

	chapters := make([]models.Chapter, len(course.Chapters))
	copy(chapters, course.Chapters)
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].SequenceOrder < chapters[j].SequenceOrder
	})

	report := models.CourseProgressReport{
		CourseID:      course.ID,
		TotalChapters: len(chapters),
	}
	for _, chapter := range chapters {
		row := byChapter[chapter.ID]
		if row.Completed {
			report.CompletedChapters++
		}
		report.ChaptersProgress = append(report.ChaptersProgress, models.ChapterProgressSummary{
			ChapterID:       chapter.ID,
			WatchedDuration: row.WatchedDuration,
			TotalDuration:   row.TotalDuration,
			Completed:       row.Completed,
		})
	}
	report.ProgressPercentage = progress.Percentage(report.CompletedChapters, report.TotalChapters)
	return report
}
