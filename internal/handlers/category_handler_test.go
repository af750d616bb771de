package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"personal-ledger/internal/dto"
	"personal-ledger/internal/errors"
	"personal-ledger/internal/models"
	"personal-ledger/internal/repositories"
	"personal-ledger/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// CategoryHandlerSuite defines the test suite for CategoryHandler
type CategoryHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *service_mocks.MockLedgerServiceInterface
	handler     *CategoryHandler
	echo        *echo.Echo
}

func (s *CategoryHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = service_mocks.NewMockLedgerServiceInterface(s.ctrl)
	s.handler = NewCategoryHandler(s.mockService)
	s.echo = newTestEcho()
}

func (s *CategoryHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCategoryHandlerSuite(t *testing.T) {
	suite.Run(t, new(CategoryHandlerSuite))
}

func (s *CategoryHandlerSuite) TestCreateCategory_Success() {
	name := gofakeit.Word()
	s.mockService.EXPECT().CreateCategory(name).Return(&models.Category{ID: 6, Name: name}, nil)

	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/categories", dto.CreateCategoryRequest{Name: name})

	s.NoError(s.handler.CreateCategory(c))
	s.Equal(http.StatusCreated, rec.Code)

	var category models.Category
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &category))
	s.Equal(uint(6), category.ID)
	s.Equal(name, category.Name)
}

func (s *CategoryHandlerSuite) TestCreateCategory_MissingName() {
	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/categories", `{}`)

	s.NoError(s.handler.CreateCategory(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.ValidationRequiredField), decodeError(rec).Error.Code)
}

func (s *CategoryHandlerSuite) TestCreateCategory_BlankNameFromModel() {
	s.mockService.EXPECT().CreateCategory("   ").Return(nil, models.ErrCategoryNameRequired)

	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/categories", `{"name":"   "}`)

	s.NoError(s.handler.CreateCategory(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.ValidationGeneral), decodeError(rec).Error.Code)
}

func (s *CategoryHandlerSuite) TestListCategories() {
	categories := []models.Category{
		{ID: 1, Name: models.CategoryFood},
		{ID: 2, Name: models.CategoryFood},
	}
	s.mockService.EXPECT().ListCategories().Return(categories, nil)

	c, rec := newContext(s.echo, http.MethodGet, "/api/v1/categories", nil)

	s.NoError(s.handler.ListCategories(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.CategoryListResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(2, resp.Total)
	s.Equal(categories, resp.Categories)
}

func (s *CategoryHandlerSuite) TestGetCategory_NotFound() {
	s.mockService.EXPECT().GetCategory(uint(42)).Return(nil, repositories.ErrCategoryNotFound)

	c, rec := newContext(s.echo, http.MethodGet, "/api/v1/categories/42", nil)

	s.NoError(s.handler.GetCategory(withID(c, "42")))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(errors.CategoryNotFound), decodeError(rec).Error.Code)
}

func (s *CategoryHandlerSuite) TestDeleteCategory_InUse() {
	s.mockService.EXPECT().DeleteCategory(uint(2)).Return(fmt.Errorf("%w: category 2", repositories.ErrRecordInUse))

	c, rec := newContext(s.echo, http.MethodDelete, "/api/v1/categories/2", nil)

	s.NoError(s.handler.DeleteCategory(withID(c, "2")))
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(string(errors.CategoryInUse), decodeError(rec).Error.Code)
}
