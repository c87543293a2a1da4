package implementation

import (
	"context"

	"ai-interviewprep-be/internal/entity"
	"ai-interviewprep-be/internal/mapper"
	"ai-interviewprep-be/internal/model"
	"ai-interviewprep-be/internal/repository/contract"
	"ai-interviewprep-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type McqRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ModuleItemMapper
}

func NewMcqRepository(db *gorm.DB) contract.McqRepository {
	return &McqRepositoryImpl{
		db:     db,
		mapper: mapper.NewModuleItemMapper(),
	}
}

func (r *McqRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *McqRepositoryImpl) CreateBatch(ctx context.Context, mcqs []*entity.Mcq) error {
	if len(mcqs) == 0 {
		return nil
	}
	models := make([]*model.Mcq, 0, len(mcqs))
	for _, m := range mcqs {
		models = append(models, r.mapper.McqToModel(m))
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*mcqs[i] = *r.mapper.McqToEntity(m)
	}
	return nil
}

func (r *McqRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Mcq, error) {
	var models []*model.Mcq
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.McqsToEntities(models), nil
}

func (r *McqRepositoryImpl) FindContentKeys(ctx context.Context, interviewId uuid.UUID) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).
		Model(&model.Mcq{}).
		Where("interview_id = ?", interviewId).
		Pluck("content_key", &keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *McqRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Mcq{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
