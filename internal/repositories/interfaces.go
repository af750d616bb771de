package repositories

import (
	"personal-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List(offset, limit int) ([]models.User, int64, error)
	Count() (int64, error)
	Delete(id uint) error
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	List() ([]models.Category, error)
	Count() (int64, error)
	Delete(id uint) error
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByID(id uint) (*models.Transaction, error)
	List(filters models.TransactionFilters) ([]models.Transaction, int64, error)
	Count() (int64, error)
	Delete(id uint) error

	// Aggregates
	SumByType(transactionType string) (decimal.Decimal, error)
	CountByType(transactionType string) (int64, error)
	ExpenseTotalsByCategory() ([]models.CategoryTotal, error)
}

// StoreInterface hands out repositories that share one database handle.
// WithinTransaction runs fn against a store bound to a single database
// transaction; any error returned by fn rolls every write back.
type StoreInterface interface {
	Users() UserRepositoryInterface
	Categories() CategoryRepositoryInterface
	Transactions() TransactionRepositoryInterface
	WithinTransaction(fn func(store StoreInterface) error) error
}
