package controllers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Developersbbs/key-system-client-sub001/backend/config"
	"github.com/Developersbbs/key-system-client-sub001/backend/middleware"
	"github.com/Developersbbs/key-system-client-sub001/backend/models"
	"github.com/Developersbbs/key-system-client-sub001/backend/progress"
	"github.com/Developersbbs/key-system-client-sub001/backend/utils"
)

type ChaptersController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewChaptersController(db *gorm.DB, cfg *config.Config) *ChaptersController {
	return &ChaptersController{DB: db, Cfg: cfg}
}

// applyProgressSave is the single write path for chapter progress, used
// by the progress endpoint and the playback guard alike. Watched
// duration only moves forward and completion never un-marks, so
// overlapping last-write-wins saves stay safe.
func applyProgressSave(db *gorm.DB, userID, courseID, chapterID uint, watched, total float64) (models.UserChapterProgress, error) {
	var row models.UserChapterProgress
	err := db.Where("user_id = ? AND chapter_id = ?", userID, chapterID).First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return row, err
		}
		row = models.UserChapterProgress{UserID: userID, CourseID: courseID, ChapterID: chapterID}
	}

	if watched > row.WatchedDuration {
		row.WatchedDuration = watched
	}
	if total > 0 {
		row.TotalDuration = total
	}
	if !row.Completed && progress.IsCompleted(row.WatchedDuration, row.TotalDuration) {
		row.Completed = true
	}

	return row, db.Save(&row).Error
}

func (ch *ChaptersController) loadChapter(c *fiber.Ctx) (models.Course, models.Chapter, error) {
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil {
		return models.Course{}, models.Chapter{}, fiber.NewError(fiber.StatusBadRequest, "Invalid course ID")
	}
	chapterID, err := strconv.Atoi(c.Params("chapterId"))
	if err != nil {
		return models.Course{}, models.Chapter{}, fiber.NewError(fiber.StatusBadRequest, "Invalid chapter ID")
	}

	var course models.Course
	if err := ch.DB.Preload("Chapters").First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return course, models.Chapter{}, fiber.NewError(fiber.StatusNotFound, "Course not found")
		}
		return course, models.Chapter{}, fiber.NewError(fiber.StatusInternalServerError, "Could not query database")
	}

	for _, chapter := range course.Chapters {
		if chapter.ID == uint(chapterID) {
			return course, chapter, nil
		}
	}
	return course, models.Chapter{}, fiber.NewError(fiber.StatusNotFound, "Chapter not found")
}

// GetChapterProgress returns the saved watch state. A member that never
// played the chapter gets zeros, never an error: a failed or missing
// fetch must not block playback.
func (ch *ChaptersController) GetChapterProgress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	course, chapter, err := ch.loadChapter(c)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.Error(c, fe.Code, fe.Message)
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	open, err := chapterUnlocked(ch.DB, user, course, chapter.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if !open {
		return utils.Forbidden(c, "Chapter is locked")
	}

	var row models.UserChapterProgress
	ch.DB.Where("user_id = ? AND chapter_id = ?", user.ID, chapter.ID).First(&row)

	return c.JSON(fiber.Map{
		"watchedDuration": row.WatchedDuration,
		"totalDuration":   row.TotalDuration,
		"completed":       row.Completed,
	})
}

// SaveChapterProgress persists one watch-progress write.
func (ch *ChaptersController) SaveChapterProgress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	course, chapter, err := ch.loadChapter(c)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.Error(c, fe.Code, fe.Message)
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	open, err := chapterUnlocked(ch.DB, user, course, chapter.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if !open {
		return utils.Forbidden(c, "Chapter is locked")
	}

	var input struct {
		WatchedDuration float64 `json:"watchedDuration"`
		TotalDuration   float64 `json:"totalDuration"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.WatchedDuration < 0 || input.TotalDuration < 0 {
		return utils.BadRequest(c, "Durations must be non-negative")
	}

	row, err := applyProgressSave(ch.DB, user.ID, course.ID, chapter.ID, input.WatchedDuration, input.TotalDuration)
	if err != nil {
		return utils.InternalServerError(c, "Could not save progress")
	}

	return c.JSON(fiber.Map{
		"message":         "Progress saved",
		"watchedDuration": row.WatchedDuration,
		"totalDuration":   row.TotalDuration,
		"completed":       row.Completed,
	})
}

// GetCourseProgress returns the aggregated per-chapter report for one
// course.
func (ch *ChaptersController) GetCourseProgress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := ch.DB.Preload("Chapters").First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(buildCourseProgress(ch.DB, user.ID, course))
}

func (ch *ChaptersController) AddChapter(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		Duration    int    `json:"duration" validate:"gte=0"`
		VideoURL    string `json:"videoUrl"`
		DocumentURL string `json:"documentUrl"`
		IsTimed     bool   `json:"isTimed"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if failures := utils.ValidateStruct(input); failures != nil {
		return utils.ValidationError(c, failures)
	}

	var course models.Course
	if err := ch.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var chapterCount int64
	ch.DB.Model(&models.Chapter{}).Where("course_id = ?", courseID).Count(&chapterCount)

	chapter := models.Chapter{
		CourseID:      uint(courseID),
		Title:         input.Title,
		Description:   input.Description,
		SequenceOrder: int(chapterCount) + 1,
		Duration:      input.Duration,
		VideoURL:      input.VideoURL,
		DocumentURL:   input.DocumentURL,
		IsTimed:       input.IsTimed,
	}
	if err := ch.DB.Create(&chapter).Error; err != nil {
		return utils.InternalServerError(c, "Could not create chapter")
	}

	return utils.Created(c, chapter)
}

func (ch *ChaptersController) UpdateChapter(c *fiber.Ctx) error {
	chapterID, err := strconv.Atoi(c.Params("chapterId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	var input struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		Duration      int    `json:"duration"`
		VideoURL      string `json:"videoUrl"`
		DocumentURL   string `json:"documentUrl"`
		SequenceOrder int    `json:"sequenceOrder"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var chapter models.Chapter
	if err := ch.DB.First(&chapter, chapterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Chapter not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Title != "" {
		chapter.Title = input.Title
	}
	if input.Description != "" {
		chapter.Description = input.Description
	}
	if input.Duration != 0 {
		chapter.Duration = input.Duration
	}
	if input.VideoURL != "" {
		chapter.VideoURL = input.VideoURL
	}
	if input.DocumentURL != "" {
		chapter.DocumentURL = input.DocumentURL
	}
	if input.SequenceOrder != 0 {
		chapter.SequenceOrder = input.SequenceOrder
	}

	if err := ch.DB.Save(&chapter).Error; err != nil {
		return utils.InternalServerError(c, "Could not update chapter")
	}
	return c.JSON(fiber.Map{"message": "Chapter updated", "chapter": chapter})
}

func (ch *ChaptersController) DeleteChapter(c *fiber.Ctx) error {
	chapterID, err := strconv.Atoi(c.Params("chapterId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	if err := ch.DB.Where("chapter_id = ?", chapterID).Delete(&models.MCQ{}).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete questions")
	}
	if err := ch.DB.Delete(&models.Chapter{}, chapterID).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete chapter")
	}
	return c.JSON(fiber.Map{"message": "Chapter deleted"})
}

// GetChapterDetails returns one chapter with its questions, correct
// answers stripped for members that have not submitted yet.
func (ch *ChaptersController) GetChapterDetails(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	course, chapter, err := ch.loadChapter(c)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.Error(c, fe.Code, fe.Message)
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	open, err := chapterUnlocked(ch.DB, user, course, chapter.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if !open {
		return utils.Forbidden(c, "Chapter is locked")
	}

	var mcqs []models.MCQ
	ch.DB.Where("chapter_id = ?", chapter.ID).Order("sequence_order").Find(&mcqs)

	questions := make([]fiber.Map, 0, len(mcqs))
	for _, q := range mcqs {
		var options []string
		json.Unmarshal([]byte(q.Options), &options)
		questions = append(questions, fiber.Map{
			"id":       q.ID,
			"question": q.Question,
			"options":  options,
			"order":    q.SequenceOrder,
		})
	}

	return c.JSON(fiber.Map{
		"chapter": fiber.Map{
			"id":          chapter.ID,
			"courseId":    course.ID,
			"title":       chapter.Title,
			"description": chapter.Description,
			"duration":    chapter.Duration,
			"videoUrl":    chapter.VideoURL,
			"documentUrl": chapter.DocumentURL,
			"isTimed":     chapter.IsTimed,
			"mcqs":        questions,
		},
	})
}
