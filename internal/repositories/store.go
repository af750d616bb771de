package repositories

import (
	"gorm.io/gorm"
)

type store struct {
	db           *gorm.DB
	users        UserRepositoryInterface
	categories   CategoryRepositoryInterface
	transactions TransactionRepositoryInterface
}

// NewStore creates the ledger store on top of an open database handle
func NewStore(db *gorm.DB) StoreInterface {
	return &store{
		db:           db,
		users:        NewUserRepository(db),
		categories:   NewCategoryRepository(db),
		transactions: NewTransactionRepository(db),
	}
}

func (s *store) Users() UserRepositoryInterface {
	return s.users
}

func (s *store) Categories() CategoryRepositoryInterface {
	return s.categories
}

func (s *store) Transactions() TransactionRepositoryInterface {
	return s.transactions
}

// WithinTransaction returns errors from fn unchanged. Only a failure to begin
// or commit is reported as a storage error.
func (s *store) WithinTransaction(fn func(store StoreInterface) error) error {
	var fnErr error
	err := s.db.Transaction(func(tx *gorm.DB) error {
		fnErr = fn(NewStore(tx))
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return storageError("run store transaction", err)
	}
	return nil
}
