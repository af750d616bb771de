package repositories

import (
	"testing"
	"time"

	"personal-ledger/internal/database"
	"personal-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionRepositorySuite struct {
	suite.Suite
	db         *database.DB
	repo       TransactionRepositoryInterface
	user       *models.User
	categories map[string]*models.Category
}

func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositorySuite))
}

func (s *TransactionRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, "Demo User", strPtr("demo@example.com"))

	s.categories = make(map[string]*models.Category)
	for _, name := range models.DefaultCategories() {
		s.categories[name] = database.CreateTestCategory(s.T(), s.db, name)
	}
}

func (s *TransactionRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *TransactionRepositorySuite) create(transactionType, category string, amount decimal.Decimal) *models.Transaction {
	txn := &models.Transaction{
		UserID:          &s.user.ID,
		TransactionType: transactionType,
		Amount:          amount,
	}
	if category != "" {
		txn.CategoryID = &s.categories[category].ID
	}
	s.Require().NoError(s.repo.Create(txn))
	return txn
}

func (s *TransactionRepositorySuite) seedScenario() {
	s.create(models.TransactionTypeIncome, models.CategorySalary, decimal.NewFromInt(40000))
	s.create(models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(3000))
	s.create(models.TransactionTypeExpense, models.CategoryRent, decimal.NewFromInt(12000))
	s.create(models.TransactionTypeExpense, models.CategoryTravel, decimal.NewFromInt(1500))
	s.create(models.TransactionTypeExpense, models.CategoryEntertainment, decimal.NewFromInt(2000))
}

func (s *TransactionRepositorySuite) assertDecimal(expected string, actual decimal.Decimal) {
	s.True(decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

func (s *TransactionRepositorySuite) TestSumByType_KeepsCents() {
	for i := 0; i < 10; i++ {
		s.create(models.TransactionTypeExpense, models.CategoryFood, decimal.RequireFromString("0.10"))
	}
	for i := 0; i < 3; i++ {
		s.create(models.TransactionTypeIncome, models.CategorySalary, decimal.RequireFromString("3333333333333.33"))
	}
	s.create(models.TransactionTypeIncome, models.CategorySalary, decimal.RequireFromString("0.08"))

	expense, err := s.repo.SumByType(models.TransactionTypeExpense)
	s.Require().NoError(err)
	s.assertDecimal("1.00", expense)

	income, err := s.repo.SumByType(models.TransactionTypeIncome)
	s.Require().NoError(err)
	s.assertDecimal("10000000000000.07", income)
}

func (s *TransactionRepositorySuite) TestCreate() {
	date := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	description := "Monthly salary"
	txn := &models.Transaction{
		UserID:          &s.user.ID,
		CategoryID:      &s.categories[models.CategorySalary].ID,
		TransactionType: models.TransactionTypeIncome,
		Amount:          decimal.RequireFromString("40000.50"),
		TransactionDate: &date,
		Description:     &description,
	}

	s.Require().NoError(s.repo.Create(txn))
	s.NotZero(txn.ID)

	found, err := s.repo.GetByID(txn.ID)
	s.Require().NoError(err)
	s.assertDecimal("40000.50", found.Amount)
	s.Equal(models.TransactionTypeIncome, found.TransactionType)
	s.Require().NotNil(found.TransactionDate)
	s.True(date.Equal(*found.TransactionDate))
	s.Require().NotNil(found.Description)
	s.Equal(description, *found.Description)
}

func (s *TransactionRepositorySuite) TestCreateWithoutReferences() {
	txn := &models.Transaction{
		TransactionType: models.TransactionTypeExpense,
		Amount:          decimal.NewFromInt(25),
	}

	s.NoError(s.repo.Create(txn))

	found, err := s.repo.GetByID(txn.ID)
	s.Require().NoError(err)
	s.Nil(found.UserID)
	s.Nil(found.CategoryID)
	s.Nil(found.TransactionDate)
	s.Nil(found.Description)
}

func (s *TransactionRepositorySuite) TestCreateInvalidType() {
	err := s.repo.Create(&models.Transaction{
		TransactionType: "transfer",
		Amount:          decimal.NewFromInt(25),
	})

	s.ErrorIs(err, models.ErrInvalidTransactionType)
	s.ErrorIs(err, models.ErrValidation)

	count, err := s.repo.Count()
	s.NoError(err)
	s.Zero(count)
}

func (s *TransactionRepositorySuite) TestCreateDanglingReferences() {
	missing := uint(9999)

	err := s.repo.Create(&models.Transaction{
		CategoryID:      &missing,
		TransactionType: models.TransactionTypeExpense,
		Amount:          decimal.NewFromInt(25),
	})
	s.ErrorIs(err, ErrDanglingReference)

	err = s.repo.Create(&models.Transaction{
		UserID:          &missing,
		TransactionType: models.TransactionTypeExpense,
		Amount:          decimal.NewFromInt(25),
	})
	s.ErrorIs(err, ErrDanglingReference)

	count, err := s.repo.Count()
	s.NoError(err)
	s.Zero(count)
}

func (s *TransactionRepositorySuite) TestGetByIDNotFound() {
	_, err := s.repo.GetByID(12345)
	s.Equal(ErrTransactionNotFound, err)
}

func (s *TransactionRepositorySuite) TestListWithFilters() {
	s.seedScenario()

	all, total, err := s.repo.List(models.TransactionFilters{})
	s.NoError(err)
	s.Equal(int64(5), total)
	s.Len(all, 5)
	for i := 1; i < len(all); i++ {
		s.Greater(all[i].ID, all[i-1].ID)
	}

	expenses, total, err := s.repo.List(models.TransactionFilters{Type: models.TransactionTypeExpense})
	s.NoError(err)
	s.Equal(int64(4), total)
	s.Len(expenses, 4)

	rentID := s.categories[models.CategoryRent].ID
	rent, _, err := s.repo.List(models.TransactionFilters{CategoryID: &rentID})
	s.NoError(err)
	s.Require().Len(rent, 1)
	s.assertDecimal("12000", rent[0].Amount)

	page, total, err := s.repo.List(models.TransactionFilters{Offset: 1, Limit: 2})
	s.NoError(err)
	s.Equal(int64(5), total)
	s.Len(page, 2)
}

func (s *TransactionRepositorySuite) TestListByDateRange() {
	dates := []time.Time{
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
	for i := range dates {
		s.Require().NoError(s.repo.Create(&models.Transaction{
			TransactionType: models.TransactionTypeExpense,
			Amount:          decimal.NewFromInt(10),
			TransactionDate: &dates[i],
		}))
	}

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	january, total, err := s.repo.List(models.TransactionFilters{StartDate: &start, EndDate: &end})
	s.NoError(err)
	s.Equal(int64(2), total)
	s.Len(january, 2)
}

func (s *TransactionRepositorySuite) TestDelete() {
	txn := s.create(models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(10))

	s.NoError(s.repo.Delete(txn.ID))
	s.Equal(ErrTransactionNotFound, s.repo.Delete(txn.ID))
}

func (s *TransactionRepositorySuite) TestSumByType_Empty() {
	income, err := s.repo.SumByType(models.TransactionTypeIncome)
	s.NoError(err)
	s.True(income.IsZero())

	expense, err := s.repo.SumByType(models.TransactionTypeExpense)
	s.NoError(err)
	s.True(expense.IsZero())
}

func (s *TransactionRepositorySuite) TestSumByType_Scenario() {
	s.seedScenario()

	income, err := s.repo.SumByType(models.TransactionTypeIncome)
	s.NoError(err)
	s.assertDecimal("40000", income)

	expense, err := s.repo.SumByType(models.TransactionTypeExpense)
	s.NoError(err)
	s.assertDecimal("18500", expense)
}

func (s *TransactionRepositorySuite) TestSumByType_FractionalAmounts() {
	s.create(models.TransactionTypeExpense, models.CategoryFood, decimal.RequireFromString("0.10"))
	s.create(models.TransactionTypeExpense, models.CategoryFood, decimal.RequireFromString("0.20"))

	expense, err := s.repo.SumByType(models.TransactionTypeExpense)
	s.NoError(err)
	s.assertDecimal("0.30", expense)
}

func (s *TransactionRepositorySuite) TestSumByType_NegativeAmountsSummedAsStored() {
	s.create(models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(500))
	s.create(models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(-200))

	expense, err := s.repo.SumByType(models.TransactionTypeExpense)
	s.NoError(err)
	s.assertDecimal("300", expense)
}

func (s *TransactionRepositorySuite) TestCountByType() {
	s.seedScenario()
	s.create(models.TransactionTypeExpense, "", decimal.NewFromInt(5))

	expenses, err := s.repo.CountByType(models.TransactionTypeExpense)
	s.NoError(err)
	s.Equal(int64(5), expenses)

	income, err := s.repo.CountByType(models.TransactionTypeIncome)
	s.NoError(err)
	s.Equal(int64(1), income)

	_, err = s.repo.CountByType("other")
	s.ErrorIs(err, models.ErrInvalidTransactionType)
}

func (s *TransactionRepositorySuite) TestSumByType_InvalidType() {
	_, err := s.repo.SumByType("refund")
	s.ErrorIs(err, models.ErrInvalidTransactionType)
}

func (s *TransactionRepositorySuite) TestExpenseTotalsByCategory_Scenario() {
	s.seedScenario()

	totals, err := s.repo.ExpenseTotalsByCategory()
	s.Require().NoError(err)
	s.Require().Len(totals, 4)

	expected := []struct {
		name  string
		total string
	}{
		{models.CategoryFood, "3000"},
		{models.CategoryRent, "12000"},
		{models.CategoryTravel, "1500"},
		{models.CategoryEntertainment, "2000"},
	}
	for i, e := range expected {
		s.Equal(e.name, totals[i].Name)
		s.assertDecimal(e.total, totals[i].Total)
		s.Equal(int64(1), totals[i].TransactionCount)
		s.Equal(s.categories[e.name].ID, totals[i].CategoryID)
	}
}

func (s *TransactionRepositorySuite) TestExpenseTotalsByCategory_ExclusionsAndNetting() {
	// income in an expense category never appears in the breakdown
	s.create(models.TransactionTypeIncome, models.CategoryFood, decimal.NewFromInt(999))
	// uncategorized expenses are excluded
	s.create(models.TransactionTypeExpense, "", decimal.NewFromInt(50))
	// a category whose expenses net to zero is still present
	s.create(models.TransactionTypeExpense, models.CategoryTravel, decimal.NewFromInt(100))
	s.create(models.TransactionTypeExpense, models.CategoryTravel, decimal.NewFromInt(-100))

	totals, err := s.repo.ExpenseTotalsByCategory()
	s.Require().NoError(err)
	s.Require().Len(totals, 1)
	s.Equal(models.CategoryTravel, totals[0].Name)
	s.True(totals[0].Total.IsZero())
	s.Equal(int64(2), totals[0].TransactionCount)

	expense, err := s.repo.SumByType(models.TransactionTypeExpense)
	s.NoError(err)
	s.assertDecimal("50", expense)
}

func (s *TransactionRepositorySuite) TestExpenseTotalsByCategory_DuplicateNamesStaySeparate() {
	other := database.CreateTestCategory(s.T(), s.db, models.CategoryFood)

	s.create(models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(10))
	s.Require().NoError(s.repo.Create(&models.Transaction{
		CategoryID:      &other.ID,
		TransactionType: models.TransactionTypeExpense,
		Amount:          decimal.NewFromInt(20),
	}))

	totals, err := s.repo.ExpenseTotalsByCategory()
	s.Require().NoError(err)
	s.Require().Len(totals, 2)
	s.NotEqual(totals[0].CategoryID, totals[1].CategoryID)
}
