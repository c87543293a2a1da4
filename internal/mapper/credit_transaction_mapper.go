package mapper

import (
	"ai-interviewprep-be/internal/entity"
	"ai-interviewprep-be/internal/model"
)

type CreditTransactionMapper struct{}

func NewCreditTransactionMapper() *CreditTransactionMapper {
	return &CreditTransactionMapper{}
}

func (m *CreditTransactionMapper) ToEntity(t *model.CreditTransaction) *entity.CreditTransaction {
	if t == nil {
		return nil
	}
	return &entity.CreditTransaction{
		Id:               t.Id,
		UserId:           t.UserId,
		InterviewId:      t.InterviewId,
		Module:           t.Module,
		Amount:           t.Amount,
		Model:            t.Model,
		PromptTokens:     t.PromptTokens,
		CompletionTokens: t.CompletionTokens,
		LatencyMs:        t.LatencyMs,
		ItemCount:        t.ItemCount,
		CreatedAt:        t.CreatedAt,
	}
}

func (m *CreditTransactionMapper) ToModel(t *entity.CreditTransaction) *model.CreditTransaction {
	if t == nil {
		return nil
	}
	return &model.CreditTransaction{
		Id:               t.Id,
		UserId:           t.UserId,
		InterviewId:      t.InterviewId,
		Module:           t.Module,
		Amount:           t.Amount,
		Model:            t.Model,
		PromptTokens:     t.PromptTokens,
		CompletionTokens: t.CompletionTokens,
		LatencyMs:        t.LatencyMs,
		ItemCount:        t.ItemCount,
		CreatedAt:        t.CreatedAt,
	}
}
