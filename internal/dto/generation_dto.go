package dto

import (
	"time"

	"github.com/google/uuid"
)

// ModuleRequest selects one prep module to (re)generate. Count falls back to
// the module's default when zero.
type ModuleRequest struct {
	Module       string `json:"module" validate:"required,oneof=brief mcqs questions flashcards"`
	Count        int    `json:"count" validate:"omitempty,min=1,max=25"`
	Instructions string `json:"instructions" validate:"max=2000"` // optional steering, e.g. "focus on system design"
}

type GenerateModulesRequest struct {
	Modules []ModuleRequest `json:"modules" validate:"required,min=1,max=4,dive"`
	ApiKey  string          `json:"api_key"` // bring-your-own key; skips credit deduction
	Model   string          `json:"model" validate:"max=100"`
}

// StreamStatusResponse is the poll target for reconnecting clients. Status is
// one of none|active|completed|error.
type StreamStatusResponse struct {
	Module    string     `json:"module"`
	Status    string     `json:"status"`
	StreamId  string     `json:"stream_id,omitempty"`
	StartedAt *time.Time `json:"started_at,omitempty"`
}

// PublishGenerationUsageMessage rides the in-process bus from the generation
// orchestrator to the usage consumer that writes credit transaction rows.
type PublishGenerationUsageMessage struct {
	UserId           uuid.UUID `json:"user_id"`
	InterviewId      uuid.UUID `json:"interview_id"`
	Module           string    `json:"module"`
	Amount           float64   `json:"amount"`
	Model            string    `json:"model"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	LatencyMs        int64     `json:"latency_ms"`
	ItemCount        int       `json:"item_count"`
}

type ModuleContentResponse struct {
	Module string      `json:"module"`
	Items  interface{} `json:"items"`
}
