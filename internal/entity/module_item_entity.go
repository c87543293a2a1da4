package entity

import (
	"time"

	"github.com/google/uuid"
)

// ContentKey is the generator-issued slug used for exact-identifier dedup.
// It is stable across regenerate calls for the same item.

type Mcq struct {
	Id          uuid.UUID
	InterviewId uuid.UUID
	ContentKey  string
	Question    string
	Options     []string
	AnswerIndex int
	Explanation string
	CreatedAt   time.Time
}

type Question struct {
	Id          uuid.UUID
	InterviewId uuid.UUID
	ContentKey  string
	Prompt      string
	Guidance    string
	Category    string
	CreatedAt   time.Time
}

type Flashcard struct {
	Id          uuid.UUID
	InterviewId uuid.UUID
	ContentKey  string
	Front       string
	Back        string
	CreatedAt   time.Time
}

type BriefSection struct {
	Id    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Brief is the one-per-interview prep document; regeneration replaces it.
type Brief struct {
	Id          uuid.UUID
	InterviewId uuid.UUID
	Sections    []BriefSection
	Model       string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
