package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Interview struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID      `gorm:"type:uuid;not null;index"` // User ownership for data isolation
	Role           string         `gorm:"type:text;not null"`
	Company        string         `gorm:"type:text"`
	JobDescription string         `gorm:"type:text"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Interview) TableName() string {
	return "interviews"
}
