package entity

import (
	"time"

	"github.com/google/uuid"
)

// CreditTransaction records one quota decrement together with the provenance
// of the generation that consumed it.
type CreditTransaction struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	InterviewId      uuid.UUID
	Module           string
	Amount           float64
	Model            string
	PromptTokens     int
	CompletionTokens int
	LatencyMs        int64
	ItemCount        int
	CreatedAt        time.Time
}
