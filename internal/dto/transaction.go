package dto

import (
	"fmt"
	"strings"

	"personal-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest represents the request payload for recording a transaction.
// Amount is a decimal string so no precision is lost in transit.
type CreateTransactionRequest struct {
	UserID          *uint   `json:"user_id,omitempty"`
	CategoryID      *uint   `json:"category_id,omitempty"`
	Amount          string  `json:"amount" validate:"required,ledger_amount"`
	TransactionType string  `json:"transaction_type" validate:"required,transaction_type"`
	TransactionDate string  `json:"transaction_date,omitempty" validate:"omitempty,iso_date"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// ToModel converts the request into a transaction ready for the store
func (r *CreateTransactionRequest) ToModel() (*models.Transaction, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", r.Amount, err)
	}

	txn := &models.Transaction{
		UserID:          r.UserID,
		CategoryID:      r.CategoryID,
		Amount:          amount,
		TransactionType: r.TransactionType,
		Description:     r.Description,
	}

	if r.TransactionDate != "" {
		date, err := models.ParseDate(r.TransactionDate)
		if err != nil {
			return nil, fmt.Errorf("invalid transaction date %q: %w", r.TransactionDate, err)
		}
		txn.TransactionDate = &date
	}

	return txn, nil
}

// TransactionResponse represents a single transaction in API responses
type TransactionResponse struct {
	ID              uint    `json:"id"`
	UserID          *uint   `json:"user_id,omitempty"`
	CategoryID      *uint   `json:"category_id,omitempty"`
	Amount          string  `json:"amount"`
	TransactionType string  `json:"transaction_type"`
	TransactionDate string  `json:"transaction_date,omitempty"`
	Description     *string `json:"description,omitempty"`
}

// NewTransactionResponse renders amounts with two decimals and dates as YYYY-MM-DD
func NewTransactionResponse(txn *models.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:              txn.ID,
		UserID:          txn.UserID,
		CategoryID:      txn.CategoryID,
		Amount:          txn.Amount.StringFixed(models.AmountScale),
		TransactionType: txn.TransactionType,
		Description:     txn.Description,
	}
	if txn.TransactionDate != nil {
		response.TransactionDate = txn.TransactionDate.Format(models.DateLayout)
	}
	return response
}

// NewTransactionResponses converts a slice of transactions
func NewTransactionResponses(txns []models.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		responses = append(responses, NewTransactionResponse(&txns[i]))
	}
	return responses
}

// TransactionListResponse represents a filtered, paginated list of transactions
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationMeta        `json:"pagination"`
}

// PaginationMeta represents offset pagination metadata
type PaginationMeta struct {
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
	Total  int64 `json:"total"`
}
