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

type QuizzesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewQuizzesController(db *gorm.DB, cfg *config.Config) *QuizzesController {
	return &QuizzesController{DB: db, Cfg: cfg}
}

func (qc *QuizzesController) loadChapterWithCourse(chapterID int) (models.Course, models.Chapter, error) {
	var chapter models.Chapter
	if err := qc.DB.First(&chapter, chapterID).Error; err != nil {
		return models.Course{}, chapter, err
	}

	var course models.Course
	if err := qc.DB.Preload("Chapters").First(&course, chapter.CourseID).Error; err != nil {
		return course, chapter, err
	}
	return course, chapter, nil
}

// quizResponse rebuilds the full submit/result payload from a stored
// submission so first submission and rehydration render identically.
func quizResponse(submission models.McqSubmission, mcqs []models.MCQ) fiber.Map {
	correctAnswers := make([]fiber.Map, 0, len(mcqs))
	for _, q := range mcqs {
		correctAnswers = append(correctAnswers, fiber.Map{
			"mcqId":       q.ID,
			"answer":      q.CorrectAnswer,
			"explanation": q.Explanation,
		})
	}

	return fiber.Map{
		"result": fiber.Map{
			"chapterId":      submission.ChapterID,
			"score":          submission.Score,
			"correctCount":   submission.CorrectCount,
			"totalQuestions": submission.TotalQuestions,
			"answers":        submission.AnswerMap(),
			"feedback":       progress.Band(submission.Score),
		},
		"correctAnswers": correctAnswers,
	}
}

// SubmitQuiz scores one answer map against the chapter's questions.
// Submission is terminal per chapter per member: a second call replays
// the stored result without rescoring. Partial answer maps are
// accepted; unanswered questions count as wrong.
func (qc *QuizzesController) SubmitQuiz(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	chapterID, err := strconv.Atoi(c.Params("chapterId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	course, chapter, err := qc.loadChapterWithCourse(chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Chapter not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	open, err := chapterUnlocked(qc.DB, user, course, chapter.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if !open {
		return utils.Forbidden(c, "Chapter is locked")
	}

	var mcqs []models.MCQ
	qc.DB.Where("chapter_id = ?", chapter.ID).Order("sequence_order").Find(&mcqs)
	if len(mcqs) == 0 {
		return utils.NotFound(c, "Chapter has no questions")
	}

	var existing models.McqSubmission
	if err := qc.DB.Where("user_id = ? AND chapter_id = ?", user.ID, chapter.ID).First(&existing).Error; err == nil {
		return c.JSON(quizResponse(existing, mcqs))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	var input struct {
		Answers map[string]int `json:"answers"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if len(input.Answers) == 0 {
		return utils.BadRequest(c, "No answers submitted")
	}

	correct := 0
	for _, q := range mcqs {
		selected, answered := input.Answers[strconv.Itoa(int(q.ID))]
		if !answered {
			continue
		}
		if selected < 0 || selected >= len(q.OptionList()) {
			return utils.BadRequest(c, "Invalid option index")
		}
		if selected == q.CorrectAnswer {
			correct++
		}
	}

	encodedAnswers, err := json.Marshal(input.Answers)
	if err != nil {
		return utils.InternalServerError(c, "Could not encode answers")
	}

	submission := models.McqSubmission{
		UserID:         user.ID,
		ChapterID:      chapter.ID,
		Answers:        string(encodedAnswers),
		Score:          progress.Score(correct, len(mcqs)),
		CorrectCount:   correct,
		TotalQuestions: len(mcqs),
	}
	if err := qc.DB.Create(&submission).Error; err != nil {
		return utils.InternalServerError(c, "Could not save submission")
	}

	return c.JSON(quizResponse(submission, mcqs))
}

// GetQuizResult rehydrates a stored result without resubmitting.
func (qc *QuizzesController) GetQuizResult(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	chapterID, err := strconv.Atoi(c.Params("chapterId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	course, chapter, err := qc.loadChapterWithCourse(chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Chapter not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	open, err := chapterUnlocked(qc.DB, user, course, chapter.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if !open {
		return utils.Forbidden(c, "Chapter is locked")
	}

	var submission models.McqSubmission
	if err := qc.DB.Where("user_id = ? AND chapter_id = ?", user.ID, chapter.ID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "No submission for this chapter")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var mcqs []models.MCQ
	qc.DB.Where("chapter_id = ?", chapterID).Order("sequence_order").Find(&mcqs)

	return c.JSON(quizResponse(submission, mcqs))
}

func (qc *QuizzesController) AddMCQ(c *fiber.Ctx) error {
	chapterID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid chapter ID")
	}

	var input struct {
		Question      string   `json:"question" validate:"required"`
		Options       []string `json:"options" validate:"required,min=2"`
		CorrectAnswer int      `json:"correctAnswer"`
		Explanation   string   `json:"explanation"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if failures := utils.ValidateStruct(input); failures != nil {
		return utils.ValidationError(c, failures)
	}
	if input.CorrectAnswer < 0 || input.CorrectAnswer >= len(input.Options) {
		return utils.BadRequest(c, "Invalid correct answer index")
	}

	var chapter models.Chapter
	if err := qc.DB.First(&chapter, chapterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Chapter not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	optionsJSON, err := json.Marshal(input.Options)
	if err != nil {
		return utils.InternalServerError(c, "Could not encode options")
	}

	var questionCount int64
	qc.DB.Model(&models.MCQ{}).Where("chapter_id = ?", chapterID).Count(&questionCount)

	mcq := models.MCQ{
		ChapterID:     uint(chapterID),
		Question:      input.Question,
		Options:       string(optionsJSON),
		CorrectAnswer: input.CorrectAnswer,
		Explanation:   input.Explanation,
		SequenceOrder: int(questionCount) + 1,
	}
	if err := qc.DB.Create(&mcq).Error; err != nil {
		return utils.InternalServerError(c, "Could not create question")
	}

	return utils.Created(c, mcq)
}

func (qc *QuizzesController) UpdateMCQ(c *fiber.Ctx) error {
	mcqID, err := strconv.Atoi(c.Params("mcqId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid question ID")
	}

	var input struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer *int     `json:"correctAnswer"`
		Explanation   string   `json:"explanation"`
		SequenceOrder int      `json:"sequenceOrder"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var mcq models.MCQ
	if err := qc.DB.First(&mcq, mcqID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Question not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Question != "" {
		mcq.Question = input.Question
	}
	if input.Options != nil {
		optionsJSON, err := json.Marshal(input.Options)
		if err != nil {
			return utils.InternalServerError(c, "Could not encode options")
		}
		mcq.Options = string(optionsJSON)
	}
	if input.CorrectAnswer != nil {
		if *input.CorrectAnswer < 0 || *input.CorrectAnswer >= len(mcq.OptionList()) {
			return utils.BadRequest(c, "Invalid correct answer index")
		}
		mcq.CorrectAnswer = *input.CorrectAnswer
	}
	if input.Explanation != "" {
		mcq.Explanation = input.Explanation
	}
	if input.SequenceOrder != 0 {
		mcq.SequenceOrder = input.SequenceOrder
	}

	if err := qc.DB.Save(&mcq).Error; err != nil {
		return utils.InternalServerError(c, "Could not update question")
	}
	return c.JSON(fiber.Map{"message": "Question updated", "mcq": mcq})
}

func (qc *QuizzesController) DeleteMCQ(c *fiber.Ctx) error {
	mcqID, err := strconv.Atoi(c.Params("mcqId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid question ID")
	}

	if err := qc.DB.Delete(&models.MCQ{}, mcqID).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete question")
	}
	return c.JSON(fiber.Map{"message": "Question deleted"})
}
