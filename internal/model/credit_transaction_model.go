package model

import (
	"time"

	"github.com/google/uuid"
)

type CreditTransaction struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID `gorm:"type:uuid;not null;index"`
	InterviewId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Module           string    `gorm:"type:text;not null"`
	Amount           float64   `gorm:"type:numeric(10,2);not null"`
	Model            string    `gorm:"type:text"`
	PromptTokens     int       `gorm:"not null;default:0"`
	CompletionTokens int       `gorm:"not null;default:0"`
	LatencyMs        int64     `gorm:"not null;default:0"`
	ItemCount        int       `gorm:"not null;default:0"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}
