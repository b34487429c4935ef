package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Developersbbs/key-system-client-sub001/backend/config"
	"github.com/Developersbbs/key-system-client-sub001/backend/middleware"
	"github.com/Developersbbs/key-system-client-sub001/backend/models"
	"github.com/Developersbbs/key-system-client-sub001/backend/playback"
	"github.com/Developersbbs/key-system-client-sub001/backend/utils"
)

// gormProgressSaver routes the guard's throttled saves through the same
// monotonic write path as the progress endpoint.
type gormProgressSaver struct {
	db *gorm.DB
}

func (s gormProgressSaver) SaveProgress(req playback.SaveRequest) error {
	_, err := applyProgressSave(s.db, req.UserID, req.CourseID, req.ChapterID, req.WatchedDuration, req.TotalDuration)
	return err
}

type PlaybackController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Sessions *playback.SessionStore
	chapters *ChaptersController
}

func NewPlaybackController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *PlaybackController {
	return &PlaybackController{
		DB:       db,
		Cfg:      cfg,
		Sessions: playback.NewSessionStore(gormProgressSaver{db: db}, logger),
		chapters: NewChaptersController(db, cfg),
	}
}

func (pc *PlaybackController) openChapter(c *fiber.Ctx) (models.Course, models.Chapter, bool, error) {
	user := middleware.CurrentUser(c)

	course, chapter, err := pc.chapters.loadChapter(c)
	if err != nil {
		return course, chapter, false, err
	}

	open, err := chapterUnlocked(pc.DB, user, course, chapter.ID)
	if err != nil {
		return course, chapter, false, fiber.NewError(fiber.StatusInternalServerError, "Could not query database")
	}
	return course, chapter, open, nil
}

func (pc *PlaybackController) session(userID uint, course models.Course, chapter models.Chapter) *playback.Guard {
	return pc.Sessions.Get(userID, course.ID, chapter.ID, func() (float64, float64, bool) {
		var row models.UserChapterProgress
		pc.DB.Where("user_id = ? AND chapter_id = ?", userID, chapter.ID).First(&row)
		return row.WatchedDuration, row.TotalDuration, row.Completed
	})
}

// StartSession opens (or resumes) a playback session and tells the
// player where to start from.
func (pc *PlaybackController) StartSession(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	course, chapter, open, err := pc.openChapter(c)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.Error(c, fe.Code, fe.Message)
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if !open {
		return utils.Forbidden(c, "Chapter is locked")
	}

	guard := pc.session(user.ID, course, chapter)

	return c.JSON(fiber.Map{
		"resumeFrom": guard.MaxWatched(),
		"completed":  guard.Completed(),
	})
}

// Tick validates one playback time update against the guard.
func (pc *PlaybackController) Tick(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	course, chapter, open, err := pc.openChapter(c)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.Error(c, fe.Code, fe.Message)
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if !open {
		return utils.Forbidden(c, "Chapter is locked")
	}

	var input struct {
		Position      float64 `json:"position"`
		TotalDuration float64 `json:"totalDuration"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Position < 0 {
		return utils.BadRequest(c, "Position must be non-negative")
	}

	guard := pc.session(user.ID, course, chapter)
	if input.TotalDuration > 0 {
		guard.SetTotalDuration(input.TotalDuration)
	}

	return c.JSON(guard.Tick(input.Position))
}

// EndSession flushes the final watched interval and drops the session.
// Writes already in flight are left to finish on their own.
func (pc *PlaybackController) EndSession(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	_, chapter, open, err := pc.openChapter(c)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.Error(c, fe.Code, fe.Message)
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if !open {
		return utils.Forbidden(c, "Chapter is locked")
	}

	pc.Sessions.Close(user.ID, chapter.ID)
	return c.JSON(fiber.Map{"message": "Session closed"})
}
