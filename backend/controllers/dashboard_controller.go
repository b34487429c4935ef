package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Developersbbs/key-system-client-sub001/backend/config"
	"github.com/Developersbbs/key-system-client-sub001/backend/middleware"
	"github.com/Developersbbs/key-system-client-sub001/backend/models"
	"github.com/Developersbbs/key-system-client-sub001/backend/utils"
)

// DashboardController serves the read-only aggregations rendered on the
// admin and member dashboards.
type DashboardController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewDashboardController(db *gorm.DB, cfg *config.Config) *DashboardController {
	return &DashboardController{DB: db, Cfg: cfg}
}

func (dc *DashboardController) GetAdminDashboard(c *fiber.Ctx) error {
	var summary models.PlatformSummary
	dc.DB.Model(&models.User{}).Where("role = ?", "member").Count(&summary.TotalMembers)
	dc.DB.Model(&models.User{}).Where("role = ? AND is_active = ?", "member", true).Count(&summary.ActiveMembers)
	dc.DB.Model(&models.Level{}).Count(&summary.TotalLevels)
	dc.DB.Model(&models.Course{}).Count(&summary.TotalCourses)
	dc.DB.Model(&models.Chapter{}).Count(&summary.TotalChapters)
	dc.DB.Model(&models.McqSubmission{}).Count(&summary.QuizSubmissions)

	var courses []models.Course
	if err := dc.DB.Preload("Chapters").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	engagement := make([]models.CourseEngagement, 0, len(courses))
	for _, course := range courses {
		row := models.CourseEngagement{CourseID: course.ID, Title: course.Title}

		dc.DB.Model(&models.UserChapterProgress{}).
			Where("course_id = ?", course.ID).
			Distinct("user_id").
			Count(&row.EnrolledMembers)

		total := len(course.Chapters)
		if total > 0 {
			dc.DB.Model(&models.UserChapterProgress{}).
				Where("course_id = ? AND completed = ?", course.ID, true).
				Group("user_id").
				Having("COUNT(*) >= ?", total).
				Count(&row.CompletedMembers)

			var completedRows int64
			dc.DB.Model(&models.UserChapterProgress{}).
				Where("course_id = ? AND completed = ?", course.ID, true).
				Count(&completedRows)
			if row.EnrolledMembers > 0 {
				row.AvgProgress = float64(completedRows) * 100 / float64(row.EnrolledMembers*int64(total))
			}
		}

		chapterIDs := make([]uint, 0, total)
		for _, chapter := range course.Chapters {
			chapterIDs = append(chapterIDs, chapter.ID)
		}
		if len(chapterIDs) > 0 {
			dc.DB.Model(&models.McqSubmission{}).
				Where("chapter_id IN ?", chapterIDs).
				Count(&row.QuizSubmissions)
			dc.DB.Model(&models.McqSubmission{}).
				Where("chapter_id IN ?", chapterIDs).
				Select("COALESCE(AVG(score), 0)").
				Scan(&row.AvgQuizScore)
		}

		engagement = append(engagement, row)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"summary":    summary,
		"engagement": engagement,
	})
}

func (dc *DashboardController) GetMemberOverview(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var overview models.MemberOverview
	dc.DB.Model(&models.UserChapterProgress{}).
		Where("user_id = ?", user.ID).
		Distinct("course_id").
		Count(&overview.CoursesStarted)
	dc.DB.Model(&models.UserChapterProgress{}).
		Where("user_id = ? AND completed = ?", user.ID, true).
		Count(&overview.ChaptersWatched)
	dc.DB.Model(&models.McqSubmission{}).
		Where("user_id = ?", user.ID).
		Count(&overview.QuizzesTaken)
	if overview.QuizzesTaken > 0 {
		dc.DB.Model(&models.McqSubmission{}).
			Where("user_id = ?", user.ID).
			Select("COALESCE(AVG(score), 0)").
			Scan(&overview.AverageScore)
	}

	annotated, err := annotatedCoursesFor(dc.DB, user)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	for _, ac := range annotated {
		if ac.IsCompleted {
			overview.CoursesCompleted++
		}
	}

	return utils.Success(c, fiber.StatusOK, overview)
}
