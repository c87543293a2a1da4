package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Mcq struct {
	Id          uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InterviewId uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_mcqs_interview_content"`
	ContentKey  string                      `gorm:"type:text;not null;uniqueIndex:idx_mcqs_interview_content"`
	Question    string                      `gorm:"type:text;not null"`
	Options     datatypes.JSONSlice[string] `gorm:"type:jsonb;not null"`
	AnswerIndex int                         `gorm:"not null"`
	Explanation string                      `gorm:"type:text"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime"`
}

func (Mcq) TableName() string {
	return "mcqs"
}

type Question struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InterviewId uuid.UUID `gorm:"type:uuid;not null;index"`
	ContentKey  string    `gorm:"type:text;not null"`
	Prompt      string    `gorm:"type:text;not null"`
	Guidance    string    `gorm:"type:text"`
	Category    string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Question) TableName() string {
	return "questions"
}

type Flashcard struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InterviewId uuid.UUID `gorm:"type:uuid;not null;index"`
	ContentKey  string    `gorm:"type:text;not null"`
	Front       string    `gorm:"type:text;not null"`
	Back        string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Flashcard) TableName() string {
	return "flashcards"
}

type Brief struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InterviewId uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"` // one brief per interview
	Sections    datatypes.JSON `gorm:"type:jsonb;not null"`
	Model       string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (Brief) TableName() string {
	return "briefs"
}
