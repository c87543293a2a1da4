package implementation

import (
	"context"
	"errors"

	"ai-interviewprep-be/internal/entity"
	"ai-interviewprep-be/internal/mapper"
	"ai-interviewprep-be/internal/model"
	"ai-interviewprep-be/internal/repository/contract"
	"ai-interviewprep-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InterviewRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InterviewMapper
}

func NewInterviewRepository(db *gorm.DB) contract.InterviewRepository {
	return &InterviewRepositoryImpl{
		db:     db,
		mapper: mapper.NewInterviewMapper(),
	}
}

func (r *InterviewRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InterviewRepositoryImpl) Create(ctx context.Context, interview *entity.Interview) error {
	m := r.mapper.ToModel(interview)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*interview = *r.mapper.ToEntity(m)
	return nil
}

func (r *InterviewRepositoryImpl) Update(ctx context.Context, interview *entity.Interview) error {
	m := r.mapper.ToModel(interview)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*interview = *r.mapper.ToEntity(m)
	return nil
}

func (r *InterviewRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Interview{}, id).Error
}

func (r *InterviewRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Interview, error) {
	var m model.Interview
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *InterviewRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Interview, error) {
	var models []*model.Interview
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *InterviewRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Interview{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
