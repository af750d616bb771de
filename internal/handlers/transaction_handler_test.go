package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"personal-ledger/internal/dto"
	"personal-ledger/internal/errors"
	"personal-ledger/internal/models"
	"personal-ledger/internal/repositories"
	"personal-ledger/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// TransactionHandlerSuite defines the test suite for TransactionHandler
type TransactionHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *service_mocks.MockLedgerServiceInterface
	handler     *TransactionHandler
	echo        *echo.Echo
}

func (s *TransactionHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = service_mocks.NewMockLedgerServiceInterface(s.ctrl)
	s.handler = NewTransactionHandler(s.mockService)
	s.echo = newTestEcho()
}

func (s *TransactionHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerSuite))
}

func (s *TransactionHandlerSuite) TestCreateTransaction_Success() {
	categoryID := uint(gofakeit.Number(1, 50))
	description := gofakeit.Word()
	req := dto.CreateTransactionRequest{
		CategoryID:      &categoryID,
		Amount:          "3000.50",
		TransactionType: models.TransactionTypeExpense,
		TransactionDate: "2024-01-05",
		Description:     &description,
	}

	s.mockService.EXPECT().
		CreateTransaction(gomock.Any()).
		DoAndReturn(func(txn *models.Transaction) (*models.Transaction, error) {
			s.True(txn.Amount.Equal(decimal.RequireFromString("3000.5")))
			s.Equal(models.TransactionTypeExpense, txn.TransactionType)
			s.Equal(&categoryID, txn.CategoryID)
			s.Nil(txn.UserID)
			s.Equal(time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), *txn.TransactionDate)
			txn.ID = 11
			return txn, nil
		})

	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/transactions", req)

	s.NoError(s.handler.CreateTransaction(c))
	s.Equal(http.StatusCreated, rec.Code)

	var resp dto.TransactionResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(uint(11), resp.ID)
	s.Equal("3000.50", resp.Amount)
	s.Equal("2024-01-05", resp.TransactionDate)
	s.Equal(description, *resp.Description)
}

func (s *TransactionHandlerSuite) TestCreateTransaction_NegativeAmountAccepted() {
	s.mockService.EXPECT().
		CreateTransaction(gomock.Any()).
		DoAndReturn(func(txn *models.Transaction) (*models.Transaction, error) {
			s.Equal("-250.75", txn.Amount.String())
			txn.ID = 1
			return txn, nil
		})

	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/transactions",
		`{"amount":"-250.75","transaction_type":"income"}`)

	s.NoError(s.handler.CreateTransaction(c))
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *TransactionHandlerSuite) TestCreateTransaction_RejectedBodies() {
	testCases := []struct {
		name     string
		body     string
		expected errors.ErrorCode
	}{
		{"missing amount", `{"transaction_type":"income"}`, errors.ValidationRequiredField},
		{"refund kind", `{"amount":"10","transaction_type":"refund"}`, errors.TransactionInvalidType},
		{"three decimals", `{"amount":"10.005","transaction_type":"expense"}`, errors.TransactionInvalidAmount},
		{"bad date", `{"amount":"10","transaction_type":"expense","transaction_date":"05/01/2024"}`, errors.ValidationInvalidDate},
		{"numeric amount", `{"amount":10,"transaction_type":"expense"}`, errors.ValidationGeneral},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			c, rec := newContext(s.echo, http.MethodPost, "/api/v1/transactions", tc.body)

			s.NoError(s.handler.CreateTransaction(c))
			s.Equal(http.StatusBadRequest, rec.Code)
			s.Equal(string(tc.expected), decodeError(rec).Error.Code)
		})
	}
}

func (s *TransactionHandlerSuite) TestCreateTransaction_ServiceErrors() {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   errors.ErrorCode
	}{
		{
			name:           "dangling category",
			err:            fmt.Errorf("%w: category 99", repositories.ErrDanglingReference),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   errors.TransactionDanglingReference,
		},
		{
			name:           "invalid kind from store",
			err:            models.ErrInvalidTransactionType,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   errors.TransactionInvalidType,
		},
		{
			name:           "storage unavailable",
			err:            fmt.Errorf("failed to create transaction: %w: database is locked", repositories.ErrStorageUnavailable),
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   errors.SystemDatabaseError,
		},
		{
			name:           "unexpected",
			err:            fmt.Errorf("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   errors.SystemInternalError,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockService.EXPECT().CreateTransaction(gomock.Any()).Return(nil, tc.err)

			c, rec := newContext(s.echo, http.MethodPost, "/api/v1/transactions",
				`{"amount":"10","transaction_type":"expense","category_id":99}`)

			s.NoError(s.handler.CreateTransaction(c))
			s.Equal(tc.expectedStatus, rec.Code)
			s.Equal(string(tc.expectedCode), decodeError(rec).Error.Code)
		})
	}
}

func (s *TransactionHandlerSuite) TestListTransactions_Filters() {
	date := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		{ID: 3, Amount: decimal.NewFromInt(12000), TransactionType: models.TransactionTypeExpense, TransactionDate: &date},
	}

	s.mockService.EXPECT().
		ListTransactions(gomock.Any()).
		DoAndReturn(func(filters models.TransactionFilters) ([]models.Transaction, int64, error) {
			s.Equal(models.TransactionTypeExpense, filters.Type)
			s.Require().NotNil(filters.CategoryID)
			s.Equal(uint(2), *filters.CategoryID)
			s.Nil(filters.UserID)
			s.Equal("2024-01-01", filters.StartDate.Format(models.DateLayout))
			s.Equal("2024-01-31", filters.EndDate.Format(models.DateLayout))
			s.Equal(10, filters.Offset)
			s.Equal(5, filters.Limit)
			return transactions, int64(11), nil
		})

	c, rec := newContext(s.echo, http.MethodGet,
		"/api/v1/transactions?type=expense&category_id=2&start_date=2024-01-01&end_date=2024-01-31&offset=10&limit=5", nil)

	s.NoError(s.handler.ListTransactions(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.TransactionListResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Len(resp.Transactions, 1)
	s.Equal("12000.00", resp.Transactions[0].Amount)
	s.Equal(int64(11), resp.Pagination.Total)
	s.Equal(5, resp.Pagination.Limit)
}

func (s *TransactionHandlerSuite) TestListTransactions_InvalidParameters() {
	for _, query := range []string{
		"type=refund",
		"category_id=abc",
		"user_id=0",
		"start_date=2024-13-01",
		"start_date=2024-02-01&end_date=2024-01-01",
		"limit=0",
	} {
		s.Run(query, func() {
			c, rec := newContext(s.echo, http.MethodGet, "/api/v1/transactions?"+query, nil)

			s.NoError(s.handler.ListTransactions(c))
			s.Equal(http.StatusBadRequest, rec.Code)
		})
	}
}

func (s *TransactionHandlerSuite) TestListTransactions_EmptyListIsArray() {
	s.mockService.EXPECT().ListTransactions(gomock.Any()).Return(nil, int64(0), nil)

	c, rec := newContext(s.echo, http.MethodGet, "/api/v1/transactions", nil)

	s.NoError(s.handler.ListTransactions(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"transactions":[]`)
}

func (s *TransactionHandlerSuite) TestGetAndDeleteTransaction() {
	s.mockService.EXPECT().GetTransaction(uint(5)).Return(nil, repositories.ErrTransactionNotFound)
	c, rec := newContext(s.echo, http.MethodGet, "/api/v1/transactions/5", nil)
	s.NoError(s.handler.GetTransaction(withID(c, "5")))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(errors.TransactionNotFound), decodeError(rec).Error.Code)

	s.mockService.EXPECT().DeleteTransaction(uint(6)).Return(nil)
	c, rec = newContext(s.echo, http.MethodDelete, "/api/v1/transactions/6", nil)
	s.NoError(s.handler.DeleteTransaction(withID(c, "6")))
	s.Equal(http.StatusNoContent, rec.Code)
}
