package services

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"personal-ledger/internal/models"
	"personal-ledger/internal/repositories"

	"github.com/shopspring/decimal"
)

type summaryService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	metrics         MetricsRecorderInterface
}

// NewSummaryService creates a new SummaryServiceInterface instance
func NewSummaryService(transactionRepo repositories.TransactionRepositoryInterface, metrics MetricsRecorderInterface) SummaryServiceInterface {
	return &summaryService{
		transactionRepo: transactionRepo,
		metrics:         metricsOrNoop(metrics),
	}
}

func (s *summaryService) GetTotalIncome() (decimal.Decimal, error) {
	return s.sum("total_income", models.TransactionTypeIncome)
}

func (s *summaryService) GetTotalExpense() (decimal.Decimal, error) {
	return s.sum("total_expense", models.TransactionTypeExpense)
}

// GetCategoryBreakdown returns expense totals per category, largest first.
// Equal totals keep the order in which their categories first received an
// expense.
func (s *summaryService) GetCategoryBreakdown() ([]models.CategoryTotal, error) {
	start := time.Now()
	totals, err := s.transactionRepo.ExpenseTotalsByCategory()
	s.observe("category_breakdown", start, err)
	if err != nil {
		slog.Error("failed to compute category breakdown", "error", err)
		return nil, fmt.Errorf("failed to compute category breakdown: %w", err)
	}

	if totals == nil {
		totals = []models.CategoryTotal{}
	}
	sortBreakdown(totals)

	return totals, nil
}

// GetRemainingBalance aggregates income and expense afresh and returns
// their difference
func (s *summaryService) GetRemainingBalance() (decimal.Decimal, error) {
	income, err := s.GetTotalIncome()
	if err != nil {
		return decimal.Zero, err
	}

	expense, err := s.GetTotalExpense()
	if err != nil {
		return decimal.Zero, err
	}

	balance := income.Sub(expense)
	s.metrics.RecordGauge(MetricLedgerBalance, balance.InexactFloat64(), map[string]string{"aggregate": "remaining_balance"})

	return balance, nil
}

// GetSummary runs every aggregate once. The balance is derived from the
// income and expense totals returned in the same summary.
func (s *summaryService) GetSummary() (*models.LedgerSummary, error) {
	income, err := s.GetTotalIncome()
	if err != nil {
		return nil, err
	}

	expense, err := s.GetTotalExpense()
	if err != nil {
		return nil, err
	}

	breakdown, err := s.GetCategoryBreakdown()
	if err != nil {
		return nil, err
	}

	summary := &models.LedgerSummary{
		TotalIncome:       income,
		TotalExpense:      expense,
		RemainingBalance:  income.Sub(expense),
		CategoryBreakdown: breakdown,
	}

	s.metrics.RecordGauge(MetricLedgerBalance, summary.RemainingBalance.InexactFloat64(), map[string]string{"aggregate": "remaining_balance"})

	slog.Info("ledger summary generated",
		"total_income", income.String(),
		"total_expense", expense.String(),
		"categories", len(breakdown))

	return summary, nil
}

func (s *summaryService) sum(query, transactionType string) (decimal.Decimal, error) {
	start := time.Now()
	total, err := s.transactionRepo.SumByType(transactionType)
	s.observe(query, start, err)
	if err != nil {
		slog.Error("failed to aggregate transactions",
			"query", query,
			"error", err)
		return decimal.Zero, fmt.Errorf("failed to compute %s: %w", query, err)
	}

	s.metrics.RecordGauge(MetricLedgerBalance, total.InexactFloat64(), map[string]string{"aggregate": query})

	return total, nil
}

func (s *summaryService) observe(query string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}

	s.metrics.RecordProcessingTime(MetricQuery, time.Since(start))
	s.metrics.IncrementCounter(MetricQuery, map[string]string{
		"query":  query,
		"status": status,
	})
}

func sortBreakdown(totals []models.CategoryTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		if cmp := totals[i].Total.Cmp(totals[j].Total); cmp != 0 {
			return cmp > 0
		}
		return totals[i].FirstTransactionID < totals[j].FirstTransactionID
	})
}
