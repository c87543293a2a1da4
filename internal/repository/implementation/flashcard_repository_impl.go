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

type FlashcardRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ModuleItemMapper
}

func NewFlashcardRepository(db *gorm.DB) contract.FlashcardRepository {
	return &FlashcardRepositoryImpl{
		db:     db,
		mapper: mapper.NewModuleItemMapper(),
	}
}

func (r *FlashcardRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FlashcardRepositoryImpl) CreateBatch(ctx context.Context, cards []*entity.Flashcard) error {
	if len(cards) == 0 {
		return nil
	}
	models := make([]*model.Flashcard, 0, len(cards))
	for _, c := range cards {
		models = append(models, r.mapper.FlashcardToModel(c))
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*cards[i] = *r.mapper.FlashcardToEntity(m)
	}
	return nil
}

func (r *FlashcardRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Flashcard, error) {
	var models []*model.Flashcard
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.FlashcardsToEntities(models), nil
}

func (r *FlashcardRepositoryImpl) FindContentKeys(ctx context.Context, interviewId uuid.UUID) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).
		Model(&model.Flashcard{}).
		Where("interview_id = ?", interviewId).
		Pluck("content_key", &keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *FlashcardRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Flashcard{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
