package transaction

import (
	"time"
)

type Transaction struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	CategoryID      int64     `json:"categoryId"`
	Amount          float64   `json:"amount"`
	Type            string    `json:"type"` // "income" or "expense"
	Description     string    `json:"description"`
	Notes           *string   `json:"notes,omitempty"`
	TransactionDate time.Time `json:"transactionDate"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type CreateParams struct {
	UserID          int64
	CategoryID      int64
	Amount          float64
	Type            string
	Description     string
	Notes           *string
	TransactionDate time.Time
}

type UpdateParams struct {
	CategoryID      *int64
	Amount          *float64
	Type            *string
	Description     *string
	Notes           *string
	TransactionDate *time.Time
}
