package dto

import (
	"personal-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// AmountResponse carries a single aggregate
type AmountResponse struct {
	Amount decimal.Decimal `json:"amount"`
}

// CategoryBreakdownResponse lists expense totals per category, largest first
type CategoryBreakdownResponse struct {
	Categories []models.CategoryTotal `json:"categories"`
}

// BootstrapResponse reports what the demo bootstrap created
type BootstrapResponse struct {
	User         *models.User          `json:"user"`
	Categories   []models.Category     `json:"categories"`
	Transactions []TransactionResponse `json:"transactions"`
}

// NewBootstrapResponse converts a bootstrap result for the API
func NewBootstrapResponse(result *models.BootstrapResult) BootstrapResponse {
	return BootstrapResponse{
		User:         result.User,
		Categories:   result.Categories,
		Transactions: NewTransactionResponses(result.Transactions),
	}
}
