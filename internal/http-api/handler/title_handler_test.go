package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/http-api/apierr"
	"reviewhub/internal/http-api/authz"
	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/handler"
	"reviewhub/internal/http-api/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTitleService struct {
	mock.Mock
}

func (m *MockTitleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]dto.TitleResponse, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]dto.TitleResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockTitleService) GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TitleResponse), args.Error(1)
}

func (m *MockTitleService) Create(ctx context.Context, actor authz.Actor, in dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TitleResponse), args.Error(1)
}

func (m *MockTitleService) Update(ctx context.Context, actor authz.Actor, id int64, in dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TitleResponse), args.Error(1)
}

func (m *MockTitleService) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func setupTitleRouter(svc *MockTitleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewTitleHandler(svc)
	h.RegisterRoutes(r.Group("/api/v1/titles"), noopMiddleware)
	return r
}

func TestTitleList_QueryFiltersForwarded(t *testing.T) {
	svc := new(MockTitleService)
	r := setupTitleRouter(svc)

	year := 1972
	want := repository.TitleFilter{
		GenreSlug:    "sci-fi",
		CategorySlug: "movie",
		Name:         "sol",
		Year:         &year,
	}
	svc.On("List", mock.Anything, want, 2, 5).
		Return([]dto.TitleResponse{}, int64(0), nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/titles/?genre=sci-fi&category=movie&name=sol&year=1972&page=2&page_size=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestTitleList_BadYear(t *testing.T) {
	svc := new(MockTitleService)
	r := setupTitleRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/titles/?year=ninety", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTitleList_PageSizeCapped(t *testing.T) {
	svc := new(MockTitleService)
	r := setupTitleRouter(svc)

	// 500 is over the cap, so the default of 20 applies
	svc.On("List", mock.Anything, repository.TitleFilter{}, 1, 20).
		Return([]dto.TitleResponse{}, int64(0), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/titles/?page_size=500", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestTitleGet_RatingInBody(t *testing.T) {
	svc := new(MockTitleService)
	r := setupTitleRouter(svc)

	rating := 9.0
	svc.On("GetByID", mock.Anything, int64(7)).
		Return(&dto.TitleResponse{ID: 7, Name: "Dune", Year: 1965, Rating: &rating}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/titles/7", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Rating *float64 `json:"rating"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if assert.NotNil(t, resp.Rating) {
		assert.Equal(t, 9.0, *resp.Rating)
	}
}

func TestTitleGet_NotFound(t *testing.T) {
	svc := new(MockTitleService)
	r := setupTitleRouter(svc)

	svc.On("GetByID", mock.Anything, int64(99)).Return(nil, apierr.NotFound("title"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/titles/99", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTitleGet_BadID(t *testing.T) {
	svc := new(MockTitleService)
	r := setupTitleRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/titles/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTitleDelete_PermissionDenied(t *testing.T) {
	svc := new(MockTitleService)
	r := setupTitleRouter(svc)

	svc.On("Delete", mock.Anything, mock.Anything, int64(7)).Return(apierr.PermissionDenied())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/titles/7", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
