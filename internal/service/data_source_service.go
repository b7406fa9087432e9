package service

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/gaojianqi6/rating-admin-api/internal/domain"
	"github.com/gaojianqi6/rating-admin-api/internal/dto"
	"github.com/gaojianqi6/rating-admin-api/internal/repository"
	"github.com/gaojianqi6/rating-admin-api/internal/response"
)

// DataSourceService defines the interface for data source business logic
type DataSourceService interface {
	CreateDataSource(ctx context.Context, req *dto.CreateDataSourceRequest) (*dto.DataSourceResponse, error)
	ListDataSources(ctx context.Context) ([]*dto.DataSourceResponse, error)
}

// dataSourceServiceImpl is the implementation of DataSourceService
type dataSourceServiceImpl struct {
	dataSourceRepo repository.DataSourceRepository
}

// NewDataSourceService creates a new instance of DataSourceService
func NewDataSourceService(dataSourceRepo repository.DataSourceRepository) DataSourceService {
	return &dataSourceServiceImpl{dataSourceRepo: dataSourceRepo}
}

// CreateDataSource creates a data source together with its options. The
// options are attached in the same transaction, so a failure leaves nothing
// behind.
func (s *dataSourceServiceImpl) CreateDataSource(ctx context.Context, req *dto.CreateDataSourceRequest) (*dto.DataSourceResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	sourceType := domain.SourceType(req.SourceType)
	if !sourceType.IsValid() {
		return nil, response.NewValidationError(fmt.Sprintf("Invalid source type: %s", req.SourceType), "")
	}

	existing, err := s.dataSourceRepo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check for duplicate data source name", err.Error())
	}
	if existing != nil {
		return nil, response.NewConflictError(fmt.Sprintf("Data source with name '%s' already exists", req.Name), "")
	}

	configuration, err := toJSONDocument(req.Configuration)
	if err != nil {
		return nil, response.NewValidationError("Configuration is not a valid JSON document", err.Error())
	}

	dataSource := &domain.DataSource{
		Name:          req.Name,
		SourceType:    sourceType,
		Configuration: configuration,
		CreatedBy:     &actorID,
	}
	for _, option := range req.Options {
		dataSource.Options = append(dataSource.Options, domain.DataSourceOption{
			Value:       option.Value,
			DisplayText: option.DisplayText,
		})
	}

	if err := s.dataSourceRepo.CreateWithOptions(ctx, dataSource); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create data source", err.Error())
	}

	return toDataSourceResponse(dataSource), nil
}

// ListDataSources returns every data source with its options populated
func (s *dataSourceServiceImpl) ListDataSources(ctx context.Context) ([]*dto.DataSourceResponse, error) {
	dataSources, err := s.dataSourceRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch data sources", err.Error())
	}

	responses := make([]*dto.DataSourceResponse, len(dataSources))
	for i, dataSource := range dataSources {
		responses[i] = toDataSourceResponse(dataSource)
	}
	return responses, nil
}

// toDataSourceResponse converts a domain data source to its response DTO
func toDataSourceResponse(dataSource *domain.DataSource) *dto.DataSourceResponse {
	resp := &dto.DataSourceResponse{
		ID:            dataSource.ID,
		Name:          dataSource.Name,
		SourceType:    string(dataSource.SourceType),
		Configuration: fromJSONDocument(dataSource.Configuration),
		Options:       make([]dto.DataSourceOptionResponse, 0, len(dataSource.Options)),
	}
	for _, option := range dataSource.Options {
		resp.Options = append(resp.Options, dto.DataSourceOptionResponse{
			OptionID:    option.ID,
			Value:       option.Value,
			DisplayText: option.DisplayText,
		})
	}
	return resp
}

// toJSONDocument marshals an opaque document into a JSONB column value
func toJSONDocument(doc map[string]interface{}) (datatypes.JSON, error) {
	if doc == nil {
		return nil, nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// fromJSONDocument unmarshals a JSONB column value back into an opaque document
func fromJSONDocument(data datatypes.JSON) map[string]interface{} {
	if len(data) == 0 {
		return nil
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return doc
}

// actorFromContext resolves the acting admin user's id placed in the request
// context by the auth middleware.
func actorFromContext(ctx context.Context) (int64, error) {
	actorID, ok := ctx.Value("user_id").(int64)
	if !ok {
		return 0, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}
	return actorID, nil
}
