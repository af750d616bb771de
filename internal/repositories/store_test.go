package repositories

import (
	"errors"
	"testing"

	"personal-ledger/internal/database"
	"personal-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StoreSuite struct {
	suite.Suite
	db    *database.DB
	store StoreInterface
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.store = NewStore(s.db.DB)
}

func (s *StoreSuite) TestWithinTransactionCommits() {
	err := s.store.WithinTransaction(func(tx StoreInterface) error {
		category := &models.Category{Name: "Food"}
		if err := tx.Categories().Create(category); err != nil {
			return err
		}
		return tx.Transactions().Create(&models.Transaction{
			CategoryID:      &category.ID,
			TransactionType: models.TransactionTypeExpense,
			Amount:          decimal.NewFromInt(3000),
		})
	})
	s.Require().NoError(err)

	count, err := s.store.Transactions().Count()
	s.NoError(err)
	s.Equal(int64(1), count)
}

func (s *StoreSuite) TestWithinTransactionRollsBack() {
	errStop := errors.New("stop")

	err := s.store.WithinTransaction(func(tx StoreInterface) error {
		if err := tx.Users().Create(&models.User{Name: "Demo User"}); err != nil {
			return err
		}
		if err := tx.Categories().Create(&models.Category{Name: "Food"}); err != nil {
			return err
		}
		return errStop
	})
	s.Equal(errStop, err)

	users, err := s.store.Users().Count()
	s.NoError(err)
	s.Zero(users)

	categories, err := s.store.Categories().Count()
	s.NoError(err)
	s.Zero(categories)
}

func (s *StoreSuite) TestWithinTransactionKeepsDomainErrors() {
	missing := uint(77)

	err := s.store.WithinTransaction(func(tx StoreInterface) error {
		return tx.Transactions().Create(&models.Transaction{
			CategoryID:      &missing,
			TransactionType: models.TransactionTypeExpense,
			Amount:          decimal.NewFromInt(1),
		})
	})

	s.ErrorIs(err, ErrDanglingReference)
	s.NotErrorIs(err, ErrStorageUnavailable)
}
