package models

import "gorm.io/gorm"

type Level struct {
	gorm.Model
	LevelNumber int    `gorm:"unique;not null"`
	Title       string `gorm:"not null"`
	Courses     []Course
}

type Course struct {
	gorm.Model
	LevelID       uint
	Title         string `gorm:"not null"`
	Description   string
	Category      string
	ThumbnailURL  string
	SequenceOrder int
	Chapters      []Chapter
}

type Chapter struct {
	gorm.Model
	CourseID      uint
	Title         string `gorm:"not null"`
	Description   string
	SequenceOrder int
	Duration      int // declared length in minutes
	VideoURL      string
	DocumentURL   string
	IsTimed       bool
	MCQs          []MCQ
}
