package unitofwork

import (
	"context"

	"ai-interviewprep-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	InterviewRepository() contract.InterviewRepository
	McqRepository() contract.McqRepository
	QuestionRepository() contract.QuestionRepository
	FlashcardRepository() contract.FlashcardRepository
	BriefRepository() contract.BriefRepository
	CreditTransactionRepository() contract.CreditTransactionRepository
}
