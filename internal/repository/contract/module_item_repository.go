package contract

import (
	"context"

	"ai-interviewprep-be/internal/entity"
	"ai-interviewprep-be/internal/repository/specification"

	"github.com/google/uuid"
)

// Module item repositories expose the append/find operations the
// orchestrator commits final batches through. Appends are batch-level so a
// generation lands atomically.

type McqRepository interface {
	CreateBatch(ctx context.Context, mcqs []*entity.Mcq) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Mcq, error)
	FindContentKeys(ctx context.Context, interviewId uuid.UUID) ([]string, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type QuestionRepository interface {
	CreateBatch(ctx context.Context, questions []*entity.Question) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Question, error)
	FindContentKeys(ctx context.Context, interviewId uuid.UUID) ([]string, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type FlashcardRepository interface {
	CreateBatch(ctx context.Context, cards []*entity.Flashcard) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Flashcard, error)
	FindContentKeys(ctx context.Context, interviewId uuid.UUID) ([]string, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type BriefRepository interface {
	// Upsert replaces the interview's brief; there is at most one.
	Upsert(ctx context.Context, brief *entity.Brief) error
	FindByInterviewId(ctx context.Context, interviewId uuid.UUID) (*entity.Brief, error)
}
