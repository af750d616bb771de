package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"

	// DateLayout is the calendar date format used for transaction_date
	DateLayout = "2006-01-02"

	// AmountScale is the number of fractional digits stored for amounts
	AmountScale = 2
)

// Transaction is a single income or expense entry. The sign of Amount is
// stored as given; direction is carried by TransactionType alone.
type Transaction struct {
	ID              uint            `gorm:"column:transaction_id;primaryKey;autoIncrement" json:"id"`
	UserID          *uint           `gorm:"column:user_id;index" json:"user_id,omitempty"`
	CategoryID      *uint           `gorm:"column:category_id;index" json:"category_id,omitempty"`
	Amount          decimal.Decimal `gorm:"column:amount;type:decimal(15,2);not null" json:"amount"`
	TransactionType string          `gorm:"column:transaction_type;type:varchar(10);not null;check:chk_transactions_type,transaction_type IN ('income','expense')" json:"transaction_type"`
	TransactionDate *time.Time      `gorm:"column:transaction_date;type:date" json:"transaction_date,omitempty"`
	Description     *string         `gorm:"column:description;type:text" json:"description,omitempty"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.TransactionDate != nil {
		date := truncateToDate(*t.TransactionDate)
		t.TransactionDate = &date
	}
	return t.Validate()
}

// Validate validates the transaction fields. References are checked by the
// repository because they need the store.
func (t *Transaction) Validate() error {
	if !IsValidTransactionType(t.TransactionType) {
		return ErrInvalidTransactionType
	}
	return nil
}

// IsCategorized reports whether the transaction references a category
func (t *Transaction) IsCategorized() bool {
	return t.CategoryID != nil
}

func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
