package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Developersbbs/key-system-client-sub001/backend/config"
	"github.com/Developersbbs/key-system-client-sub001/backend/middleware"
	"github.com/Developersbbs/key-system-client-sub001/backend/models"
	"github.com/Developersbbs/key-system-client-sub001/backend/unlock"
	"github.com/Developersbbs/key-system-client-sub001/backend/utils"
)

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

// GetMyCourses returns every course annotated with isUnlocked and
// isCompleted for the member, optionally narrowed by the search, level
// and status query filters.
func (cc *CoursesController) GetMyCourses(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	annotated, err := annotatedCoursesFor(cc.DB, user)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	levelFilter, _ := strconv.Atoi(c.Query("level"))
	filtered := unlock.Filter(annotated, unlock.Filters{
		Search: c.Query("search"),
		Level:  levelFilter,
		Status: c.Query("status"),
	})

	result := make([]fiber.Map, 0, len(filtered))
	for _, ac := range filtered {
		result = append(result, fiber.Map{
			"id":                 ac.Course.ID,
			"title":              ac.Course.Title,
			"description":        ac.Course.Description,
			"category":           ac.Course.Category,
			"thumbnailUrl":       ac.Course.ThumbnailURL,
			"levelNumber":        ac.LevelNumber,
			"chapters":           len(ac.Course.Chapters),
			"isUnlocked":         ac.IsUnlocked,
			"isCompleted":        ac.IsCompleted,
			"progressPercentage": ac.ProgressPercentage,
			"action":             unlock.Action(ac.ProgressPercentage),
		})
	}

	return c.JSON(result)
}

// GetUserProgress returns the overall per-course progress report with
// per-level course completion aggregates.
func (cc *CoursesController) GetUserProgress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	annotated, err := annotatedCoursesFor(cc.DB, user)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	completedByLevel := make(map[int]int)
	totalByLevel := make(map[int]int)
	for _, ac := range annotated {
		totalByLevel[ac.LevelNumber]++
		if ac.IsCompleted {
			completedByLevel[ac.LevelNumber]++
		}
	}

	rows := make([]models.UserProgressRow, 0, len(annotated))
	for _, ac := range annotated {
		summary := progressByCourse(cc.DB, user.ID, []models.Course{ac.Course})[ac.Course.ID]

		rows = append(rows, models.UserProgressRow{
			CourseID:           ac.Course.ID,
			CourseTitle:        ac.Course.Title,
			LevelNumber:        ac.LevelNumber,
			CompletedChapters:  summary.CompletedChapters,
			TotalChapters:      summary.TotalChapters,
			ProgressPercentage: ac.ProgressPercentage,
			CompletedCourses:   completedByLevel[ac.LevelNumber],
			TotalCourses:       totalByLevel[ac.LevelNumber],
		})
	}

	return c.JSON(rows)
}

func (cc *CoursesController) CreateLevel(c *fiber.Ctx) error {
	var input struct {
		LevelNumber int    `json:"levelNumber" validate:"required,gte=1"`
		Title       string `json:"title" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if failures := utils.ValidateStruct(input); failures != nil {
		return utils.ValidationError(c, failures)
	}

	level := models.Level{LevelNumber: input.LevelNumber, Title: input.Title}
	if err := cc.DB.Create(&level).Error; err != nil {
		return utils.InternalServerError(c, "Could not create level")
	}

	return utils.Created(c, level)
}

func (cc *CoursesController) DeleteLevel(c *fiber.Ctx) error {
	levelID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid level ID")
	}

	var count int64
	cc.DB.Model(&models.Course{}).Where("level_id = ?", levelID).Count(&count)
	if count > 0 {
		return utils.BadRequest(c, "Level still has courses")
	}

	if err := cc.DB.Delete(&models.Level{}, levelID).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete level")
	}
	return c.JSON(fiber.Map{"message": "Level deleted"})
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var input struct {
		LevelID      uint   `json:"levelId" validate:"required"`
		Title        string `json:"title" validate:"required"`
		Description  string `json:"description"`
		Category     string `json:"category"`
		ThumbnailURL string `json:"thumbnailUrl"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if failures := utils.ValidateStruct(input); failures != nil {
		return utils.ValidationError(c, failures)
	}

	var level models.Level
	if err := cc.DB.First(&level, input.LevelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Level not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var courseCount int64
	cc.DB.Model(&models.Course{}).Where("level_id = ?", input.LevelID).Count(&courseCount)

	course := models.Course{
		LevelID:       input.LevelID,
		Title:         input.Title,
		Description:   input.Description,
		Category:      input.Category,
		ThumbnailURL:  input.ThumbnailURL,
		SequenceOrder: int(courseCount) + 1,
	}
	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	return utils.Created(c, course)
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		Category      string `json:"category"`
		ThumbnailURL  string `json:"thumbnailUrl"`
		SequenceOrder int    `json:"sequenceOrder"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Category != "" {
		course.Category = input.Category
	}
	if input.ThumbnailURL != "" {
		course.ThumbnailURL = input.ThumbnailURL
	}
	if input.SequenceOrder != 0 {
		course.SequenceOrder = input.SequenceOrder
	}

	if err := cc.DB.Save(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}
	return c.JSON(fiber.Map{"message": "Course updated", "course": course})
}

func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	if err := cc.DB.Where("course_id = ?", courseID).Delete(&models.Chapter{}).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete chapters")
	}
	if err := cc.DB.Delete(&models.Course{}, courseID).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}
	return c.JSON(fiber.Map{"message": "Course deleted"})
}
