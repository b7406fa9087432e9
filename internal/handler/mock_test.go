package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/gaojianqi6/rating-admin-api/internal/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockTemplateService is a mock implementation of TemplateService
type MockTemplateService struct {
	CreateTemplateFunc    func(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	GetTemplateFunc       func(ctx context.Context, id int64) (*dto.TemplateResponse, error)
	UpdateTemplateFunc    func(ctx context.Context, id int64, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error)
	CloneTemplateFunc     func(ctx context.Context, id int64) (*dto.TemplateResponse, error)
	PublishTemplateFunc   func(ctx context.Context, id int64) (*dto.TemplateResponse, error)
	UnpublishTemplateFunc func(ctx context.Context, id int64) (*dto.TemplateResponse, error)
	DeleteTemplateFunc    func(ctx context.Context, id int64) error
	ListTemplatesFunc     func(ctx context.Context, filters dto.TemplateListFilters, pageNo, pageSize int) (*dto.TemplateListResponse, error)
}

func (m *MockTemplateService) CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	if m.CreateTemplateFunc != nil {
		return m.CreateTemplateFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockTemplateService) GetTemplate(ctx context.Context, id int64) (*dto.TemplateResponse, error) {
	if m.GetTemplateFunc != nil {
		return m.GetTemplateFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTemplateService) UpdateTemplate(ctx context.Context, id int64, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	if m.UpdateTemplateFunc != nil {
		return m.UpdateTemplateFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockTemplateService) CloneTemplate(ctx context.Context, id int64) (*dto.TemplateResponse, error) {
	if m.CloneTemplateFunc != nil {
		return m.CloneTemplateFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTemplateService) PublishTemplate(ctx context.Context, id int64) (*dto.TemplateResponse, error) {
	if m.PublishTemplateFunc != nil {
		return m.PublishTemplateFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTemplateService) UnpublishTemplate(ctx context.Context, id int64) (*dto.TemplateResponse, error) {
	if m.UnpublishTemplateFunc != nil {
		return m.UnpublishTemplateFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTemplateService) DeleteTemplate(ctx context.Context, id int64) error {
	if m.DeleteTemplateFunc != nil {
		return m.DeleteTemplateFunc(ctx, id)
	}
	return nil
}

func (m *MockTemplateService) ListTemplates(ctx context.Context, filters dto.TemplateListFilters, pageNo, pageSize int) (*dto.TemplateListResponse, error) {
	if m.ListTemplatesFunc != nil {
		return m.ListTemplatesFunc(ctx, filters, pageNo, pageSize)
	}
	return nil, nil
}

// MockItemService is a mock implementation of ItemService
type MockItemService struct {
	CreateItemFunc  func(ctx context.Context, req *dto.CreateItemRequest) (*dto.ItemResponse, error)
	GetItemFunc     func(ctx context.Context, id int64) (*dto.ItemResponse, error)
	ListItemsFunc   func(ctx context.Context, filters dto.ItemListFilters, pageNo, pageSize int) (*dto.ItemListResponse, error)
	ListRatingsFunc func(ctx context.Context, itemID int64, pageNo, pageSize int) (*dto.RatingListResponse, error)
	DeleteItemFunc  func(ctx context.Context, id int64) error
}

func (m *MockItemService) CreateItem(ctx context.Context, req *dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if m.CreateItemFunc != nil {
		return m.CreateItemFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockItemService) GetItem(ctx context.Context, id int64) (*dto.ItemResponse, error) {
	if m.GetItemFunc != nil {
		return m.GetItemFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockItemService) ListItems(ctx context.Context, filters dto.ItemListFilters, pageNo, pageSize int) (*dto.ItemListResponse, error) {
	if m.ListItemsFunc != nil {
		return m.ListItemsFunc(ctx, filters, pageNo, pageSize)
	}
	return nil, nil
}

func (m *MockItemService) ListRatings(ctx context.Context, itemID int64, pageNo, pageSize int) (*dto.RatingListResponse, error) {
	if m.ListRatingsFunc != nil {
		return m.ListRatingsFunc(ctx, itemID, pageNo, pageSize)
	}
	return nil, nil
}

func (m *MockItemService) DeleteItem(ctx context.Context, id int64) error {
	if m.DeleteItemFunc != nil {
		return m.DeleteItemFunc(ctx, id)
	}
	return nil
}

// MockFieldValueService is a mock implementation of FieldValueService
type MockFieldValueService struct {
	SetFieldValuesFunc func(ctx context.Context, itemID int64, req *dto.SetFieldValuesRequest) ([]dto.FieldValueResponse, error)
	GetFieldValuesFunc func(ctx context.Context, itemID int64) ([]dto.FieldValueResponse, error)
}

func (m *MockFieldValueService) SetFieldValues(ctx context.Context, itemID int64, req *dto.SetFieldValuesRequest) ([]dto.FieldValueResponse, error) {
	if m.SetFieldValuesFunc != nil {
		return m.SetFieldValuesFunc(ctx, itemID, req)
	}
	return nil, nil
}

func (m *MockFieldValueService) GetFieldValues(ctx context.Context, itemID int64) ([]dto.FieldValueResponse, error) {
	if m.GetFieldValuesFunc != nil {
		return m.GetFieldValuesFunc(ctx, itemID)
	}
	return nil, nil
}

// MockDataSourceService is a mock implementation of DataSourceService
type MockDataSourceService struct {
	CreateDataSourceFunc func(ctx context.Context, req *dto.CreateDataSourceRequest) (*dto.DataSourceResponse, error)
	ListDataSourcesFunc  func(ctx context.Context) ([]*dto.DataSourceResponse, error)
}

func (m *MockDataSourceService) CreateDataSource(ctx context.Context, req *dto.CreateDataSourceRequest) (*dto.DataSourceResponse, error) {
	if m.CreateDataSourceFunc != nil {
		return m.CreateDataSourceFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockDataSourceService) ListDataSources(ctx context.Context) ([]*dto.DataSourceResponse, error) {
	if m.ListDataSourcesFunc != nil {
		return m.ListDataSourcesFunc(ctx)
	}
	return nil, nil
}

// MockStatisticsService is a mock implementation of StatisticsService
type MockStatisticsService struct {
	GetStatisticsFunc      func(ctx context.Context) (*dto.StatisticsResponse, error)
	RecalculateRatingsFunc func(ctx context.Context) (int, error)
}

func (m *MockStatisticsService) GetStatistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	if m.GetStatisticsFunc != nil {
		return m.GetStatisticsFunc(ctx)
	}
	return nil, nil
}

func (m *MockStatisticsService) RecalculateRatings(ctx context.Context) (int, error) {
	if m.RecalculateRatingsFunc != nil {
		return m.RecalculateRatingsFunc(ctx)
	}
	return 0, nil
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	LoginFunc          func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	CurrentUserFunc    func(ctx context.Context) (*dto.AdminUserResponse, error)
	LogoutFunc         func(ctx context.Context, token string) error
	IsTokenRevokedFunc func(ctx context.Context, token string) bool
	ResolveAdminFunc   func(ctx context.Context, username string) (int64, error)
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) CurrentUser(ctx context.Context) (*dto.AdminUserResponse, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx)
	}
	return nil, nil
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

func (m *MockAuthService) IsTokenRevoked(ctx context.Context, token string) bool {
	if m.IsTokenRevokedFunc != nil {
		return m.IsTokenRevokedFunc(ctx, token)
	}
	return false
}

func (m *MockAuthService) ResolveAdmin(ctx context.Context, username string) (int64, error) {
	if m.ResolveAdminFunc != nil {
		return m.ResolveAdminFunc(ctx, username)
	}
	return 0, nil
}

// performRequest runs one request through a router and records the response
func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data envelope of a success response into out
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Code string          `json:"code"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("failed to decode response data: %v", err)
	}
}
