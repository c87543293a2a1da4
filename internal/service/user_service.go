package service

import (
	"context"

	"ai-interviewprep-be/internal/dto"
	"ai-interviewprep-be/internal/pkg/apperr"
	"ai-interviewprep-be/internal/repository/specification"
	"ai-interviewprep-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	Profile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	CreditTransactions(ctx context.Context, userId uuid.UUID) (*dto.ListCreditTransactionsResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

func (s *userService) Profile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	return &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.Name,
		Credits:   user.Credits,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *userService) CreditTransactions(ctx context.Context, userId uuid.UUID) (*dto.ListCreditTransactionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	txs, err := uow.CreditTransactionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CreditTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, dto.CreditTransactionResponse{
			Id:        tx.Id,
			Module:    tx.Module,
			Amount:    tx.Amount,
			Model:     tx.Model,
			CreatedAt: tx.CreatedAt,
		})
	}
	return &dto.ListCreditTransactionsResponse{
		Transactions: responses,
		Total:        int64(len(responses)),
	}, nil
}
