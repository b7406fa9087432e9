package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaojianqi6/rating-admin-api/internal/dto"
	"github.com/gaojianqi6/rating-admin-api/internal/response"
)

func itemTestRouter(itemSvc *MockItemService, valueSvc *MockFieldValueService) *gin.Engine {
	h := NewItemHandler(itemSvc, valueSvc)
	r := gin.New()
	r.POST("/items", h.CreateItem)
	r.GET("/items", h.ListItems)
	r.GET("/items/:itemId", h.GetItem)
	r.DELETE("/items/:itemId", h.DeleteItem)
	r.GET("/items/:itemId/ratings", h.ListRatings)
	r.PUT("/items/:itemId/values", h.SetFieldValues)
	r.GET("/items/:itemId/values", h.GetFieldValues)
	return r
}

func TestItemHandler_CreateItem(t *testing.T) {
	svc := &MockItemService{
		CreateItemFunc: func(ctx context.Context, req *dto.CreateItemRequest) (*dto.ItemResponse, error) {
			return &dto.ItemResponse{ID: 10, Title: req.Title, Slug: "dune", TemplateID: req.TemplateID}, nil
		},
	}
	router := itemTestRouter(svc, &MockFieldValueService{})

	w := performRequest(router, http.MethodPost, "/items", dto.CreateItemRequest{
		Title:      "Dune",
		TemplateID: 5,
		FieldValues: []dto.FieldValueInput{
			{FieldID: 1, Value: "Frank Herbert"},
		},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.ItemResponse
	decodeData(t, w, &resp)
	assert.Equal(t, "dune", resp.Slug)
}

func TestItemHandler_CreateItemValidation(t *testing.T) {
	router := itemTestRouter(&MockItemService{}, &MockFieldValueService{})

	// Title missing fails binding before the service is reached
	w := performRequest(router, http.MethodPost, "/items", map[string]interface{}{"templateId": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestItemHandler_GetItemNotFound(t *testing.T) {
	svc := &MockItemService{
		GetItemFunc: func(ctx context.Context, id int64) (*dto.ItemResponse, error) {
			return nil, response.NewNotFoundError("Item not found", "")
		},
	}
	router := itemTestRouter(svc, &MockFieldValueService{})

	w := performRequest(router, http.MethodGet, "/items/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestItemHandler_ListItemsParsesQuery(t *testing.T) {
	var gotFilters dto.ItemListFilters
	svc := &MockItemService{
		ListItemsFunc: func(ctx context.Context, filters dto.ItemListFilters, pageNo, pageSize int) (*dto.ItemListResponse, error) {
			gotFilters = filters
			return &dto.ItemListResponse{List: []*dto.ItemResponse{}}, nil
		},
	}
	router := itemTestRouter(svc, &MockFieldValueService{})

	w := performRequest(router, http.MethodGet,
		"/items?title=dune&templateId=5&createdTimeStart=2024-01-01T00:00:00Z&sortField=avg_rating&sortOrder=asc", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dune", gotFilters.Title)
	require.NotNil(t, gotFilters.TemplateID)
	assert.Equal(t, int64(5), *gotFilters.TemplateID)
	require.NotNil(t, gotFilters.CreatedTimeStart)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), gotFilters.CreatedTimeStart.UTC())
	assert.Nil(t, gotFilters.CreatedTimeEnd)
	assert.Equal(t, "avg_rating", gotFilters.SortField)
	assert.Equal(t, "asc", gotFilters.SortOrder)
}

func TestItemHandler_ListItemsAcceptsDateOnlyWindow(t *testing.T) {
	var gotFilters dto.ItemListFilters
	svc := &MockItemService{
		ListItemsFunc: func(ctx context.Context, filters dto.ItemListFilters, pageNo, pageSize int) (*dto.ItemListResponse, error) {
			gotFilters = filters
			return &dto.ItemListResponse{List: []*dto.ItemResponse{}}, nil
		},
	}
	router := itemTestRouter(svc, &MockFieldValueService{})

	w := performRequest(router, http.MethodGet,
		"/items?createdTimeStart=2024-01-15&createdTimeEnd=2024-01-16", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotFilters.CreatedTimeStart)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), gotFilters.CreatedTimeStart.UTC())
	// A date-only end bound includes the whole day
	require.NotNil(t, gotFilters.CreatedTimeEnd)
	assert.Equal(t,
		time.Date(2024, 1, 16, 23, 59, 59, int(999*time.Millisecond), time.UTC),
		gotFilters.CreatedTimeEnd.UTC())
}

func TestItemHandler_ListItemsDiscardsMalformedWindow(t *testing.T) {
	var gotFilters dto.ItemListFilters
	svc := &MockItemService{
		ListItemsFunc: func(ctx context.Context, filters dto.ItemListFilters, pageNo, pageSize int) (*dto.ItemListResponse, error) {
			gotFilters = filters
			return &dto.ItemListResponse{List: []*dto.ItemResponse{}}, nil
		},
	}
	router := itemTestRouter(svc, &MockFieldValueService{})

	w := performRequest(router, http.MethodGet, "/items?createdTimeStart=15-01-2024", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, gotFilters.CreatedTimeStart)
}

func TestItemHandler_SetFieldValues(t *testing.T) {
	var gotItemID int64
	valueSvc := &MockFieldValueService{
		SetFieldValuesFunc: func(ctx context.Context, itemID int64, req *dto.SetFieldValuesRequest) ([]dto.FieldValueResponse, error) {
			gotItemID = itemID
			return []dto.FieldValueResponse{
				{FieldID: 1, FieldName: "author", FieldType: "text", Value: "Frank Herbert"},
			}, nil
		},
	}
	router := itemTestRouter(&MockItemService{}, valueSvc)

	w := performRequest(router, http.MethodPut, "/items/10/values", dto.SetFieldValuesRequest{
		FieldValues: []dto.FieldValueInput{{FieldID: 1, Value: "Frank Herbert"}},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(10), gotItemID)
	var values []dto.FieldValueResponse
	decodeData(t, w, &values)
	require.Len(t, values, 1)
	assert.Equal(t, "author", values[0].FieldName)
}

func TestItemHandler_SetFieldValuesRejectsForeignField(t *testing.T) {
	valueSvc := &MockFieldValueService{
		SetFieldValuesFunc: func(ctx context.Context, itemID int64, req *dto.SetFieldValuesRequest) ([]dto.FieldValueResponse, error) {
			return nil, response.NewValidationError("Field 9 does not belong to template 5", "")
		},
	}
	router := itemTestRouter(&MockItemService{}, valueSvc)

	w := performRequest(router, http.MethodPut, "/items/10/values", dto.SetFieldValuesRequest{
		FieldValues: []dto.FieldValueInput{{FieldID: 9, Value: "x"}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestItemHandler_ListRatings(t *testing.T) {
	svc := &MockItemService{
		ListRatingsFunc: func(ctx context.Context, itemID int64, pageNo, pageSize int) (*dto.RatingListResponse, error) {
			return &dto.RatingListResponse{
				List:  []*dto.RatingResponse{{ID: 1, ItemID: itemID, Username: "bob", Rating: 5}},
				Total: 1,
			}, nil
		},
	}
	router := itemTestRouter(svc, &MockFieldValueService{})

	w := performRequest(router, http.MethodGet, "/items/10/ratings", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.RatingListResponse
	decodeData(t, w, &resp)
	require.Len(t, resp.List, 1)
	assert.Equal(t, "bob", resp.List[0].Username)
}

func TestItemHandler_DeleteItem(t *testing.T) {
	deleted := map[int64]bool{}
	svc := &MockItemService{
		DeleteItemFunc: func(ctx context.Context, id int64) error {
			if deleted[id] {
				return response.NewNotFoundError("Item not found", "")
			}
			deleted[id] = true
			return nil
		},
	}
	router := itemTestRouter(svc, &MockFieldValueService{})

	w := performRequest(router, http.MethodDelete, "/items/10", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Deleting again reports not found
	w = performRequest(router, http.MethodDelete, "/items/10", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
