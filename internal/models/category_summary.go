package models

import "github.com/shopspring/decimal"

// CategoryTotal is one line of the expense breakdown
type CategoryTotal struct {
	CategoryID       uint            `json:"category_id"`
	Name             string          `json:"category"`
	Total            decimal.Decimal `json:"total"`
	TransactionCount int64           `json:"transaction_count"`

	// FirstTransactionID orders categories with equal totals
	FirstTransactionID uint `json:"-"`
}

// LedgerSummary bundles the four aggregate queries
type LedgerSummary struct {
	TotalIncome       decimal.Decimal `json:"total_income"`
	TotalExpense      decimal.Decimal `json:"total_expense"`
	RemainingBalance  decimal.Decimal `json:"remaining_balance"`
	CategoryBreakdown []CategoryTotal `json:"category_breakdown"`
}

// CategoryShare is a breakdown line with its share of total spending
type CategoryShare struct {
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Percentage decimal.Decimal `json:"percentage"`
}

// SpendingSummary describes where the money went
type SpendingSummary struct {
	TotalSpending    decimal.Decimal `json:"total_spending"`
	TransactionCount int64           `json:"transaction_count"`
	AverageExpense   decimal.Decimal `json:"average_expense"`
	TopCategory      string          `json:"top_category,omitempty"`
	Categories       []CategoryShare `json:"categories"`
}

// Advice is the rule-based guidance derived from the dominant expense category
type Advice struct {
	TopCategory string          `json:"top_category"`
	TopAmount   decimal.Decimal `json:"top_amount"`
	Share       decimal.Decimal `json:"share"`
	Tips        []string        `json:"tips"`
	General     []string        `json:"general"`
}
