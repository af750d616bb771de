package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"personal-ledger/internal/models"
	"personal-ledger/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	ErrAlreadyBootstrapped = errors.New("ledger already contains data")
)

const (
	DemoUserName  = "Demo User"
	DemoUserEmail = "demo@example.com"
)

type seedTransaction struct {
	transactionType string
	category        string
	amount          int64
	day             int
	description     string
}

// demoTransactions are inserted in this order, which also fixes the
// breakdown order for equal totals
var demoTransactions = []seedTransaction{
	{models.TransactionTypeIncome, models.CategorySalary, 40000, 1, "Monthly salary"},
	{models.TransactionTypeExpense, models.CategoryFood, 3000, 5, "Groceries and dining"},
	{models.TransactionTypeExpense, models.CategoryRent, 12000, 3, "Apartment rent"},
	{models.TransactionTypeExpense, models.CategoryTravel, 1500, 12, "Weekend trip"},
	{models.TransactionTypeExpense, models.CategoryEntertainment, 2000, 20, "Concert tickets"},
}

type bootstrapService struct {
	store   repositories.StoreInterface
	metrics MetricsRecorderInterface
}

// NewBootstrapService creates a new BootstrapServiceInterface instance
func NewBootstrapService(store repositories.StoreInterface, metrics MetricsRecorderInterface) BootstrapServiceInterface {
	return &bootstrapService{
		store:   store,
		metrics: metricsOrNoop(metrics),
	}
}

// Bootstrap creates the demo user, categories and transactions in a single
// database transaction. A store that already holds any record is left
// untouched and ErrAlreadyBootstrapped is returned.
func (s *bootstrapService) Bootstrap() (*models.BootstrapResult, error) {
	var result *models.BootstrapResult

	err := s.store.WithinTransaction(func(tx repositories.StoreInterface) error {
		empty, err := isEmptyStore(tx)
		if err != nil {
			return err
		}
		if !empty {
			return ErrAlreadyBootstrapped
		}

		result, err = seed(tx)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyBootstrapped) {
			s.metrics.IncrementCounter(MetricBootstrap, map[string]string{"status": "skipped"})
			slog.Info("bootstrap skipped, ledger already contains data")
			return nil, err
		}
		s.metrics.IncrementCounter(MetricBootstrap, map[string]string{"status": "failed"})
		slog.Error("failed to bootstrap ledger", "error", err)
		return nil, fmt.Errorf("failed to bootstrap ledger: %w", err)
	}

	s.metrics.IncrementCounter(MetricBootstrap, map[string]string{"status": "success"})
	slog.Info("ledger bootstrapped",
		"user_id", result.User.ID,
		"categories", len(result.Categories),
		"transactions", len(result.Transactions))

	return result, nil
}

// isEmptyStore stops at the first repository that holds a record or fails
func isEmptyStore(store repositories.StoreInterface) (bool, error) {
	counters := []func() (int64, error){
		func() (int64, error) { return store.Users().Count() },
		func() (int64, error) { return store.Categories().Count() },
		func() (int64, error) { return store.Transactions().Count() },
	}

	for _, count := range counters {
		n, err := count()
		if err != nil {
			return false, err
		}
		if n > 0 {
			return false, nil
		}
	}

	return true, nil
}

func seed(store repositories.StoreInterface) (*models.BootstrapResult, error) {
	email := DemoUserEmail
	user := &models.User{Name: DemoUserName, Email: &email}
	if err := store.Users().Create(user); err != nil {
		return nil, fmt.Errorf("failed to create demo user: %w", err)
	}

	names := models.DefaultCategories()
	categories := make([]models.Category, 0, len(names))
	categoryIDs := make(map[string]uint, len(names))
	for _, name := range names {
		category := &models.Category{Name: name}
		if err := store.Categories().Create(category); err != nil {
			return nil, fmt.Errorf("failed to create category %s: %w", name, err)
		}
		categories = append(categories, *category)
		categoryIDs[name] = category.ID
	}

	transactions := make([]models.Transaction, 0, len(demoTransactions))
	for _, st := range demoTransactions {
		categoryID := categoryIDs[st.category]
		date := time.Date(2024, time.January, st.day, 0, 0, 0, 0, time.UTC)
		description := st.description

		txn := &models.Transaction{
			UserID:          &user.ID,
			CategoryID:      &categoryID,
			Amount:          decimal.NewFromInt(st.amount),
			TransactionType: st.transactionType,
			TransactionDate: &date,
			Description:     &description,
		}
		if err := store.Transactions().Create(txn); err != nil {
			return nil, fmt.Errorf("failed to create %s transaction: %w", st.category, err)
		}
		transactions = append(transactions, *txn)
	}

	return &models.BootstrapResult{
		User:         user,
		Categories:   categories,
		Transactions: transactions,
	}, nil
}
