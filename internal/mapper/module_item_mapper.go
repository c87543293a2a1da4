package mapper

import (
	"encoding/json"
	"time"

	"ai-interviewprep-be/internal/entity"
	"ai-interviewprep-be/internal/model"

	"gorm.io/datatypes"
)

type ModuleItemMapper struct{}

func NewModuleItemMapper() *ModuleItemMapper {
	return &ModuleItemMapper{}
}

// Mcq Mappers

func (m *ModuleItemMapper) McqToEntity(mdl *model.Mcq) *entity.Mcq {
	if mdl == nil {
		return nil
	}
	return &entity.Mcq{
		Id:          mdl.Id,
		InterviewId: mdl.InterviewId,
		ContentKey:  mdl.ContentKey,
		Question:    mdl.Question,
		Options:     mdl.Options,
		AnswerIndex: mdl.AnswerIndex,
		Explanation: mdl.Explanation,
		CreatedAt:   mdl.CreatedAt,
	}
}

func (m *ModuleItemMapper) McqToModel(e *entity.Mcq) *model.Mcq {
	if e == nil {
		return nil
	}
	return &model.Mcq{
		Id:          e.Id,
		InterviewId: e.InterviewId,
		ContentKey:  e.ContentKey,
		Question:    e.Question,
		Options:     datatypes.NewJSONSlice(e.Options),
		AnswerIndex: e.AnswerIndex,
		Explanation: e.Explanation,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *ModuleItemMapper) McqsToEntities(models []*model.Mcq) []*entity.Mcq {
	entities := make([]*entity.Mcq, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.McqToEntity(mdl))
	}
	return entities
}

// Question Mappers

func (m *ModuleItemMapper) QuestionToEntity(mdl *model.Question) *entity.Question {
	if mdl == nil {
		return nil
	}
	return &entity.Question{
		Id:          mdl.Id,
		InterviewId: mdl.InterviewId,
		ContentKey:  mdl.ContentKey,
		Prompt:      mdl.Prompt,
		Guidance:    mdl.Guidance,
		Category:    mdl.Category,
		CreatedAt:   mdl.CreatedAt,
	}
}

func (m *ModuleItemMapper) QuestionToModel(e *entity.Question) *model.Question {
	if e == nil {
		return nil
	}
	return &model.Question{
		Id:          e.Id,
		InterviewId: e.InterviewId,
		ContentKey:  e.ContentKey,
		Prompt:      e.Prompt,
		Guidance:    e.Guidance,
		Category:    e.Category,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *ModuleItemMapper) QuestionsToEntities(models []*model.Question) []*entity.Question {
	entities := make([]*entity.Question, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.QuestionToEntity(mdl))
	}
	return entities
}

// Flashcard Mappers

func (m *ModuleItemMapper) FlashcardToEntity(mdl *model.Flashcard) *entity.Flashcard {
	if mdl == nil {
		return nil
	}
	return &entity.Flashcard{
		Id:          mdl.Id,
		InterviewId: mdl.InterviewId,
		ContentKey:  mdl.ContentKey,
		Front:       mdl.Front,
		Back:        mdl.Back,
		CreatedAt:   mdl.CreatedAt,
	}
}

func (m *ModuleItemMapper) FlashcardToModel(e *entity.Flashcard) *model.Flashcard {
	if e == nil {
		return nil
	}
	return &model.Flashcard{
		Id:          e.Id,
		InterviewId: e.InterviewId,
		ContentKey:  e.ContentKey,
		Front:       e.Front,
		Back:        e.Back,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *ModuleItemMapper) FlashcardsToEntities(models []*model.Flashcard) []*entity.Flashcard {
	entities := make([]*entity.Flashcard, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.FlashcardToEntity(mdl))
	}
	return entities
}

// Brief Mappers

func (m *ModuleItemMapper) BriefToEntity(mdl *model.Brief) *entity.Brief {
	if mdl == nil {
		return nil
	}

	var sections []entity.BriefSection
	// Malformed stored JSON yields an empty brief rather than an error;
	// the column is written from validated entities only.
	_ = json.Unmarshal(mdl.Sections, &sections)

	var updatedAt *time.Time
	if !mdl.UpdatedAt.IsZero() {
		t := mdl.UpdatedAt
		updatedAt = &t
	}

	return &entity.Brief{
		Id:          mdl.Id,
		InterviewId: mdl.InterviewId,
		Sections:    sections,
		Model:       mdl.Model,
		CreatedAt:   mdl.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *ModuleItemMapper) BriefToModel(e *entity.Brief) (*model.Brief, error) {
	if e == nil {
		return nil, nil
	}

	sections, err := json.Marshal(e.Sections)
	if err != nil {
		return nil, err
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Brief{
		Id:          e.Id,
		InterviewId: e.InterviewId,
		Sections:    datatypes.JSON(sections),
		Model:       e.Model,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
	}, nil
}
