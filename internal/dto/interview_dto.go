package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateInterviewRequest struct {
	Role           string `json:"role" validate:"required,min=2,max=200"`
	Company        string `json:"company" validate:"max=200"`
	JobDescription string `json:"job_description" validate:"required,min=20"`
}

type CreateInterviewResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateInterviewRequest struct {
	Id             uuid.UUID
	Role           string `json:"role" validate:"required,min=2,max=200"`
	Company        string `json:"company" validate:"max=200"`
	JobDescription string `json:"job_description" validate:"required,min=20"`
}

type UpdateInterviewResponse struct {
	Id uuid.UUID `json:"id"`
}

type InterviewResponse struct {
	Id             uuid.UUID  `json:"id"`
	Role           string     `json:"role"`
	Company        string     `json:"company,omitempty"`
	JobDescription string     `json:"job_description"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

type ListInterviewsRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

type ListInterviewsResponse struct {
	Interviews []InterviewResponse `json:"interviews"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
}
