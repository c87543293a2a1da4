package entity

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the profile the external auth service provisions; this
// backend only reads identity and mutates the generation credit balance.
type User struct {
	Id        uuid.UUID
	Email     string
	Name      string
	Credits   float64
	CreatedAt time.Time
	UpdatedAt *time.Time
}
