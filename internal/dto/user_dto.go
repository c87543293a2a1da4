package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Credits   float64   `json:"credits"`
	CreatedAt time.Time `json:"created_at"`
}

type CreditTransactionResponse struct {
	Id        uuid.UUID `json:"id"`
	Module    string    `json:"module"`
	Amount    float64   `json:"amount"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

type ListCreditTransactionsResponse struct {
	Transactions []CreditTransactionResponse `json:"transactions"`
	Total        int64                       `json:"total"`
}
