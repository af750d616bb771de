package services

import (
	"errors"
	"log/slog"

	"personal-ledger/internal/models"
	"personal-ledger/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	ErrNoExpenses = errors.New("no expense transactions recorded")
)

var hundred = decimal.NewFromInt(100)

var categoryTips = map[string][]string{
	models.CategoryFood: {
		"Cook at home more often, it can cost far less than eating out",
		"Plan your meals weekly to reduce impulse purchases",
		"Buy non-perishable groceries in bulk",
		"Drink water instead of paid beverages when dining out",
	},
	models.CategoryRent: {
		"Keep housing costs near 30% of your income where possible",
		"Negotiate the renewal terms before your lease ends",
		"Consider sharing the place with a roommate",
		"Compare utility providers and bundle where it lowers the bill",
	},
	models.CategoryTravel: {
		"Book transport and lodging early and compare fares",
		"Travel off-peak to avoid seasonal price spikes",
		"Use public transport or carpooling for daily trips",
		"Set a trip budget before you leave and track it daily",
	},
	models.CategoryEntertainment: {
		"Share streaming subscriptions with family",
		"Look for free or low-cost entertainment alternatives",
		"Use student or senior discounts if applicable",
		"Host game nights at home instead of going out",
	},
}

var fallbackTips = []string{
	"Track your expenses regularly to identify patterns",
	"Set a monthly budget for this category",
	"Try to reduce spending in this category by 10-15% next month",
	"Use apps to find better deals and discounts",
}

var generalAdvice = []string{
	"Follow the 50/30/20 rule: 50% needs, 30% wants, 20% savings",
	"Build an emergency fund covering 3-6 months of expenses",
	"Review your spending weekly to stay on track",
}

type insightsService struct {
	summaryService  SummaryServiceInterface
	transactionRepo repositories.TransactionRepositoryInterface
}

// NewInsightsService creates a new InsightsServiceInterface instance
func NewInsightsService(summaryService SummaryServiceInterface, transactionRepo repositories.TransactionRepositoryInterface) InsightsServiceInterface {
	return &insightsService{
		summaryService:  summaryService,
		transactionRepo: transactionRepo,
	}
}

// GetSpendingSummary describes expense transactions: total, count, average,
// top category and each category's share of the total
func (s *insightsService) GetSpendingSummary() (*models.SpendingSummary, error) {
	total, err := s.summaryService.GetTotalExpense()
	if err != nil {
		return nil, err
	}

	count, err := s.transactionRepo.CountByType(models.TransactionTypeExpense)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.summaryService.GetCategoryBreakdown()
	if err != nil {
		return nil, err
	}

	summary := &models.SpendingSummary{
		TotalSpending:    total,
		TransactionCount: count,
		AverageExpense:   decimal.Zero,
		Categories:       make([]models.CategoryShare, 0, len(breakdown)),
	}

	if count > 0 {
		summary.AverageExpense = total.Div(decimal.NewFromInt(count)).Round(models.AmountScale)
	}

	if len(breakdown) > 0 {
		summary.TopCategory = breakdown[0].Name
	}

	for _, line := range breakdown {
		summary.Categories = append(summary.Categories, models.CategoryShare{
			Category:   line.Name,
			Total:      line.Total,
			Percentage: percentage(line.Total, total),
		})
	}

	slog.Info("spending summary generated",
		"total_spending", total.String(),
		"transaction_count", count,
		"top_category", summary.TopCategory)

	return summary, nil
}

// GetAdvice picks tips for the dominant expense category
func (s *insightsService) GetAdvice() (*models.Advice, error) {
	breakdown, err := s.summaryService.GetCategoryBreakdown()
	if err != nil {
		return nil, err
	}
	if len(breakdown) == 0 {
		return nil, ErrNoExpenses
	}

	total, err := s.summaryService.GetTotalExpense()
	if err != nil {
		return nil, err
	}

	top := breakdown[0]
	tips, ok := categoryTips[top.Name]
	if !ok {
		tips = fallbackTips
	}

	return &models.Advice{
		TopCategory: top.Name,
		TopAmount:   top.Total,
		Share:       percentage(top.Total, total),
		Tips:        append([]string(nil), tips...),
		General:     append([]string(nil), generalAdvice...),
	}, nil
}

// percentage returns part as a percentage of whole with one decimal place
func percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(1)
}
