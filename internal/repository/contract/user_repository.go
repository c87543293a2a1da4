package contract

import (
	"context"

	"ai-interviewprep-be/internal/entity"
	"ai-interviewprep-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	// DecrementCredits atomically subtracts amount when the balance covers
	// it; returns false without mutating when it does not.
	DecrementCredits(ctx context.Context, userId uuid.UUID, amount float64) (bool, error)
}
