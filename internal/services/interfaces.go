package services

import (
	"time"

	"personal-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// LedgerServiceInterface covers record creation and the read paths used by
// the presentation layer
type LedgerServiceInterface interface {
	CreateUser(name string, email *string) (*models.User, error)
	GetUser(id uint) (*models.User, error)
	ListUsers(offset, limit int) ([]models.User, int64, error)
	DeleteUser(id uint) error

	CreateCategory(name string) (*models.Category, error)
	GetCategory(id uint) (*models.Category, error)
	ListCategories() ([]models.Category, error)
	DeleteCategory(id uint) error

	CreateTransaction(transaction *models.Transaction) (*models.Transaction, error)
	GetTransaction(id uint) (*models.Transaction, error)
	ListTransactions(filters models.TransactionFilters) ([]models.Transaction, int64, error)
	DeleteTransaction(id uint) error
}

// SummaryServiceInterface is the aggregation engine. Every call aggregates
// the store afresh.
type SummaryServiceInterface interface {
	GetTotalIncome() (decimal.Decimal, error)
	GetTotalExpense() (decimal.Decimal, error)
	GetCategoryBreakdown() ([]models.CategoryTotal, error)
	GetRemainingBalance() (decimal.Decimal, error)
	GetSummary() (*models.LedgerSummary, error)
}

// BootstrapServiceInterface seeds an empty store with demo data
type BootstrapServiceInterface interface {
	Bootstrap() (*models.BootstrapResult, error)
}

// InsightsServiceInterface derives spending analysis and advice from the aggregates
type InsightsServiceInterface interface {
	GetSpendingSummary() (*models.SpendingSummary, error)
	GetAdvice() (*models.Advice, error)
}

// MetricsRecorderInterface defines methods for recording metrics
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
