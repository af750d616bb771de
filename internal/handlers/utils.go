package handlers

import (
	"fmt"
	"strconv"

	"personal-ledger/internal/models"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	var value int
	if _, err := fmt.Sscanf(param, "%d", &value); err != nil {
		return defaultValue
	}

	return value
}

// parseIDParam reads a positive numeric path parameter
func parseIDParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return uint(id), nil
}

// parseOptionalID reads an optional positive numeric query parameter
func parseOptionalID(c echo.Context, name string) (*uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, fmt.Errorf("invalid %s: %q", name, raw)
	}
	value := uint(id)
	return &value, nil
}

// parsePagination reads offset and limit, clamping limit to maxPageLimit
func parsePagination(c echo.Context) (offset, limit int, err error) {
	offset = getIntParam(c, "offset", 0)
	limit = getIntParam(c, "limit", defaultPageLimit)

	if offset < 0 {
		return 0, 0, fmt.Errorf("offset must be non-negative")
	}
	if limit < 1 {
		return 0, 0, fmt.Errorf("limit must be positive")
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return offset, limit, nil
}

// parseTransactionFilters parses and validates transaction filter parameters
func parseTransactionFilters(c echo.Context) (models.TransactionFilters, error) {
	var filters models.TransactionFilters

	if txType := c.QueryParam("type"); txType != "" {
		if !models.IsValidTransactionType(txType) {
			return filters, fmt.Errorf("invalid type: must be one of income, expense")
		}
		filters.Type = txType
	}

	categoryID, err := parseOptionalID(c, "category_id")
	if err != nil {
		return filters, err
	}
	filters.CategoryID = categoryID

	userID, err := parseOptionalID(c, "user_id")
	if err != nil {
		return filters, err
	}
	filters.UserID = userID

	if startDateStr := c.QueryParam("start_date"); startDateStr != "" {
		startDate, err := models.ParseDate(startDateStr)
		if err != nil {
			return filters, fmt.Errorf("invalid start_date format, expected YYYY-MM-DD")
		}
		filters.StartDate = &startDate
	}

	if endDateStr := c.QueryParam("end_date"); endDateStr != "" {
		endDate, err := models.ParseDate(endDateStr)
		if err != nil {
			return filters, fmt.Errorf("invalid end_date format, expected YYYY-MM-DD")
		}
		filters.EndDate = &endDate
	}

	if filters.StartDate != nil && filters.EndDate != nil && filters.StartDate.After(*filters.EndDate) {
		return filters, fmt.Errorf("start_date must not be after end_date")
	}

	offset, limit, err := parsePagination(c)
	if err != nil {
		return filters, err
	}
	filters.Offset = offset
	filters.Limit = limit

	return filters, nil
}
