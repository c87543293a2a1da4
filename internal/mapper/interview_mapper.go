package mapper

import (
	"time"

	"ai-interviewprep-be/internal/entity"
	"ai-interviewprep-be/internal/model"

	"gorm.io/gorm"
)

type InterviewMapper struct{}

func NewInterviewMapper() *InterviewMapper {
	return &InterviewMapper{}
}

func (m *InterviewMapper) ToEntity(i *model.Interview) *entity.Interview {
	if i == nil {
		return nil
	}

	var deletedAt *time.Time
	if i.DeletedAt.Valid {
		t := i.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !i.UpdatedAt.IsZero() {
		t := i.UpdatedAt
		updatedAt = &t
	}

	return &entity.Interview{
		Id:             i.Id,
		UserId:         i.UserId,
		Role:           i.Role,
		Company:        i.Company,
		JobDescription: i.JobDescription,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      i.DeletedAt.Valid,
	}
}

func (m *InterviewMapper) ToModel(i *entity.Interview) *model.Interview {
	if i == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if i.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *i.DeletedAt, Valid: true}
	} else if i.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if i.UpdatedAt != nil {
		updatedAt = *i.UpdatedAt
	}

	return &model.Interview{
		Id:             i.Id,
		UserId:         i.UserId,
		Role:           i.Role,
		Company:        i.Company,
		JobDescription: i.JobDescription,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *InterviewMapper) ToEntities(models []*model.Interview) []*entity.Interview {
	entities := make([]*entity.Interview, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
