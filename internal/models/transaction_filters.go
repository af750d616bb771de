package models

import "time"

// TransactionFilters contains filtering options for transaction queries
type TransactionFilters struct {
	Type       string
	CategoryID *uint
	UserID     *uint
	StartDate  *time.Time
	EndDate    *time.Time
	Offset     int
	Limit      int
}
