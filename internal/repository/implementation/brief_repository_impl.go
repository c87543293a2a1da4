package implementation

import (
	"context"
	"errors"

	"ai-interviewprep-be/internal/entity"
	"ai-interviewprep-be/internal/mapper"
	"ai-interviewprep-be/internal/model"
	"ai-interviewprep-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BriefRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ModuleItemMapper
}

func NewBriefRepository(db *gorm.DB) contract.BriefRepository {
	return &BriefRepositoryImpl{
		db:     db,
		mapper: mapper.NewModuleItemMapper(),
	}
}

func (r *BriefRepositoryImpl) Upsert(ctx context.Context, brief *entity.Brief) error {
	m, err := r.mapper.BriefToModel(brief)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "interview_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"sections", "model", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*brief = *r.mapper.BriefToEntity(m)
	return nil
}

func (r *BriefRepositoryImpl) FindByInterviewId(ctx context.Context, interviewId uuid.UUID) (*entity.Brief, error) {
	var m model.Brief
	err := r.db.WithContext(ctx).Where("interview_id = ?", interviewId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.BriefToEntity(&m), nil
}
