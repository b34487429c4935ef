package models

import (
	"encoding/json"
	"strconv"

	"gorm.io/gorm"
)

type MCQ struct {
	gorm.Model
	ChapterID     uint
	Question      string `gorm:"not null"`
	Options       string // JSON array of options, commonly 4
	CorrectAnswer int    // 0-based index into Options
	Explanation   string
	SequenceOrder int
}

// OptionList decodes the stored options column.
func (m *MCQ) OptionList() []string {
	var options []string
	json.Unmarshal([]byte(m.Options), &options)
	return options
}

// McqSubmission is a member's one-shot quiz result for a chapter.
// There is at most one row per (user, chapter); resubmission replays
// the stored row instead of rescoring.
type McqSubmission struct {
	gorm.Model
	UserID         uint `gorm:"uniqueIndex:idx_user_chapter_submission"`
	ChapterID      uint `gorm:"uniqueIndex:idx_user_chapter_submission"`
	Answers        string // JSON map of mcqId -> selected option index
	Score          int    // 0-100, rounded
	CorrectCount   int
	TotalQuestions int
}

// AnswerMap decodes the stored answers column.
func (s *McqSubmission) AnswerMap() map[uint]int {
	raw := map[string]int{}
	json.Unmarshal([]byte(s.Answers), &raw)
	answers := make(map[uint]int, len(raw))
	for id, idx := range raw {
		key, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			continue
		}
		answers[uint(key)] = idx
	}
	return answers
}
