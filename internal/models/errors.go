package models

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of every field-level rejection. Callers match it
// with errors.Is to tell bad input apart from storage problems.
var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidTransactionType = fmt.Errorf("%w: transaction type must be income or expense", ErrValidation)
	ErrNameRequired           = fmt.Errorf("%w: name is required", ErrValidation)
	ErrInvalidEmail           = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrCategoryNameRequired   = fmt.Errorf("%w: category name is required", ErrValidation)
)
