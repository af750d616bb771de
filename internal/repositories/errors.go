package repositories

import (
	"errors"
	"fmt"
	"strings"

	"personal-ledger/internal/models"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrDanglingReference   = errors.New("referenced record does not exist")
	ErrRecordInUse         = errors.New("record is referenced by transactions")

	// ErrStorageUnavailable marks failures of the store itself. The driver
	// error stays in the chain next to it.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

var domainErrors = []error{
	models.ErrValidation,
	ErrUserNotFound,
	ErrCategoryNotFound,
	ErrTransactionNotFound,
	ErrEmailAlreadyExists,
	ErrDanglingReference,
	ErrRecordInUse,
	ErrStorageUnavailable,
}

func storageError(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, ErrStorageUnavailable, err)
}

// translateError maps a gorm error to the repository taxonomy. Errors that
// already belong to it pass through untouched.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}
	if isForeignKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDanglingReference, err)
	}
	if isCheckConstraintError(err) {
		return models.ErrInvalidTransactionType
	}
	return storageError(op, err)
}

func isDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "23505")
}

func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "FOREIGN KEY constraint") ||
		strings.Contains(errStr, "violates foreign key constraint") ||
		strings.Contains(errStr, "23503")
}

func isCheckConstraintError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "CHECK constraint") ||
		strings.Contains(errStr, "violates check constraint") ||
		strings.Contains(errStr, "23514")
}
