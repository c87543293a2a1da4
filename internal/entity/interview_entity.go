package entity

import (
	"time"

	"github.com/google/uuid"
)

type Interview struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	Role           string
	Company        string
	JobDescription string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
