package services

import (
	"errors"
	"fmt"
	"log/slog"

	"personal-ledger/internal/models"
	"personal-ledger/internal/repositories"
)

type ledgerService struct {
	store   repositories.StoreInterface
	metrics MetricsRecorderInterface
}

// NewLedgerService creates a new LedgerServiceInterface instance
func NewLedgerService(store repositories.StoreInterface, metrics MetricsRecorderInterface) LedgerServiceInterface {
	return &ledgerService{
		store:   store,
		metrics: metricsOrNoop(metrics),
	}
}

func (s *ledgerService) CreateUser(name string, email *string) (*models.User, error) {
	user := &models.User{Name: name, Email: email}

	if err := s.store.Users().Create(user); err != nil {
		if !isClientError(err) {
			slog.Error("failed to create user", "error", err)
		}
		return nil, err
	}

	s.recordCreated("user")
	slog.Info("user created", "user_id", user.ID)

	return user, nil
}

func (s *ledgerService) GetUser(id uint) (*models.User, error) {
	return s.store.Users().GetByID(id)
}

func (s *ledgerService) ListUsers(offset, limit int) ([]models.User, int64, error) {
	return s.store.Users().List(offset, limit)
}

func (s *ledgerService) DeleteUser(id uint) error {
	if err := s.store.Users().Delete(id); err != nil {
		return err
	}
	slog.Info("user deleted", "user_id", id)
	return nil
}

func (s *ledgerService) CreateCategory(name string) (*models.Category, error) {
	category := &models.Category{Name: name}

	if err := s.store.Categories().Create(category); err != nil {
		if !isClientError(err) {
			slog.Error("failed to create category", "error", err)
		}
		return nil, err
	}

	s.recordCreated("category")
	slog.Info("category created", "category_id", category.ID, "name", category.Name)

	return category, nil
}

func (s *ledgerService) GetCategory(id uint) (*models.Category, error) {
	return s.store.Categories().GetByID(id)
}

func (s *ledgerService) ListCategories() ([]models.Category, error) {
	return s.store.Categories().List()
}

func (s *ledgerService) DeleteCategory(id uint) error {
	if err := s.store.Categories().Delete(id); err != nil {
		return err
	}
	slog.Info("category deleted", "category_id", id)
	return nil
}

func (s *ledgerService) CreateTransaction(transaction *models.Transaction) (*models.Transaction, error) {
	if transaction == nil {
		return nil, errors.New("transaction cannot be nil")
	}

	if err := s.store.Transactions().Create(transaction); err != nil {
		if !isClientError(err) {
			slog.Error("failed to create transaction",
				"transaction_type", transaction.TransactionType,
				"error", err)
		}
		return nil, err
	}

	s.recordCreated("transaction")
	slog.Info("transaction created",
		"transaction_id", transaction.ID,
		"transaction_type", transaction.TransactionType,
		"categorized", transaction.IsCategorized(),
		"amount", transaction.Amount.String())

	return transaction, nil
}

func (s *ledgerService) GetTransaction(id uint) (*models.Transaction, error) {
	return s.store.Transactions().GetByID(id)
}

func (s *ledgerService) ListTransactions(filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	if filters.Type != "" && !models.IsValidTransactionType(filters.Type) {
		return nil, 0, fmt.Errorf("%w: %q", models.ErrInvalidTransactionType, filters.Type)
	}
	return s.store.Transactions().List(filters)
}

func (s *ledgerService) DeleteTransaction(id uint) error {
	if err := s.store.Transactions().Delete(id); err != nil {
		return err
	}
	slog.Info("transaction deleted", "transaction_id", id)
	return nil
}

func (s *ledgerService) recordCreated(entity string) {
	s.metrics.IncrementCounter(MetricRecordCreated, map[string]string{"entity": entity})
}

// isClientError reports whether err was caused by the caller's input rather
// than by the store
func isClientError(err error) bool {
	return errors.Is(err, models.ErrValidation) ||
		errors.Is(err, repositories.ErrDanglingReference) ||
		errors.Is(err, repositories.ErrEmailAlreadyExists)
}
