package implementation

import (
	"context"

	"ai-interviewprep-be/internal/entity"
	"ai-interviewprep-be/internal/mapper"
	"ai-interviewprep-be/internal/model"
	"ai-interviewprep-be/internal/repository/contract"
	"ai-interviewprep-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CreditTransactionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CreditTransactionMapper
}

func NewCreditTransactionRepository(db *gorm.DB) contract.CreditTransactionRepository {
	return &CreditTransactionRepositoryImpl{
		db:     db,
		mapper: mapper.NewCreditTransactionMapper(),
	}
}

func (r *CreditTransactionRepositoryImpl) Create(ctx context.Context, tx *entity.CreditTransaction) error {
	m := r.mapper.ToModel(tx)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tx = *r.mapper.ToEntity(m)
	return nil
}

func (r *CreditTransactionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	var models []*model.CreditTransaction
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.CreditTransaction, 0, len(models))
	for _, m := range models {
		entities = append(entities, r.mapper.ToEntity(m))
	}
	return entities, nil
}
