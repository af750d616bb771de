package repositories

import (
	"errors"
	"fmt"

	"personal-ledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{db: db}
}

// Create validates the kind, checks that the referenced user and category
// exist, and inserts the row. All of it runs in one database transaction.
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}

	if err := transaction.Validate(); err != nil {
		return err
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if transaction.UserID != nil {
			if err := ensureExists(tx, &models.User{}, "user_id", "user", *transaction.UserID); err != nil {
				return err
			}
		}

		if transaction.CategoryID != nil {
			if err := ensureExists(tx, &models.Category{}, "category_id", "category", *transaction.CategoryID); err != nil {
				return err
			}
		}

		return tx.Create(transaction).Error
	})

	return translateError("create transaction", err)
}

func ensureExists(tx *gorm.DB, model interface{}, column, entity string, id uint) error {
	var count int64
	if err := tx.Model(model).Where(column+" = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: %s %d", ErrDanglingReference, entity, id)
	}
	return nil
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, storageError("get transaction by ID", err)
	}

	return &transaction, nil
}

// List retrieves transactions matching the filters in creation order
func (r *transactionRepository) List(filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := r.db.Model(&models.Transaction{})

	if filters.Type != "" {
		query = query.Where("transaction_type = ?", filters.Type)
	}
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.StartDate != nil {
		query = query.Where("transaction_date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("transaction_date <= ?", *filters.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, storageError("count filtered transactions", err)
	}

	query = query.Order("transaction_id ASC").Offset(filters.Offset)
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	if err := query.Find(&transactions).Error; err != nil {
		return nil, 0, storageError("list transactions", err)
	}

	return transactions, total, nil
}

func (r *transactionRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		return 0, storageError("count transactions", err)
	}
	return count, nil
}

func (r *transactionRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Transaction{}, id)
	if result.Error != nil {
		return storageError("delete transaction", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// SumByType returns the sum of amount over every transaction of the given
// kind, zero when there are none.
func (r *transactionRepository) SumByType(transactionType string) (decimal.Decimal, error) {
	if !models.IsValidTransactionType(transactionType) {
		return decimal.Zero, models.ErrInvalidTransactionType
	}

	var total decimal.Decimal
	row := r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("transaction_type = ?", transactionType).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, storageError(fmt.Sprintf("sum %s transactions", transactionType), err)
	}

	return total.Round(models.AmountScale), nil
}

func (r *transactionRepository) CountByType(transactionType string) (int64, error) {
	if !models.IsValidTransactionType(transactionType) {
		return 0, models.ErrInvalidTransactionType
	}

	var count int64
	if err := r.db.Model(&models.Transaction{}).Where("transaction_type = ?", transactionType).Count(&count).Error; err != nil {
		return 0, storageError(fmt.Sprintf("count %s transactions", transactionType), err)
	}
	return count, nil
}

// ExpenseTotalsByCategory groups expense transactions by their category.
// Transactions without a category are left out. Groups come back in order of
// their first expense transaction.
func (r *transactionRepository) ExpenseTotalsByCategory() ([]models.CategoryTotal, error) {
	var totals []models.CategoryTotal

	query := `
		SELECT
			c.category_id AS category_id,
			c.category_name AS name,
			SUM(t.amount) AS total,
			COUNT(*) AS transaction_count,
			MIN(t.transaction_id) AS first_transaction_id
		FROM transactions t
		INNER JOIN categories c ON c.category_id = t.category_id
		WHERE t.transaction_type = ?
		GROUP BY c.category_id, c.category_name
		ORDER BY first_transaction_id ASC
	`

	if err := r.db.Raw(query, models.TransactionTypeExpense).Scan(&totals).Error; err != nil {
		return nil, storageError("get expense totals by category", err)
	}

	for i := range totals {
		totals[i].Total = totals[i].Total.Round(models.AmountScale)
	}

	return totals, nil
}
