package dto

// DataSourceOptionInput is one option of a static_list data source
type DataSourceOptionInput struct {
	Value       string `json:"value" binding:"required,max=200"`
	DisplayText string `json:"displayText" binding:"required,max=200"`
}

// CreateDataSourceRequest represents the request to create a data source
type CreateDataSourceRequest struct {
	Name          string                  `json:"name" binding:"required,max=100"`
	SourceType    string                  `json:"sourceType" binding:"required,oneof=static_list range api dynamic"`
	Configuration map[string]interface{}  `json:"configuration"`
	Options       []DataSourceOptionInput `json:"options"`
}

// DataSourceOptionResponse represents one option in a data source response
type DataSourceOptionResponse struct {
	OptionID    int64  `json:"optionId"`
	Value       string `json:"value"`
	DisplayText string `json:"displayText"`
}

// DataSourceResponse represents the data source response
type DataSourceResponse struct {
	ID            int64                      `json:"id"`
	Name          string                     `json:"name"`
	SourceType    string                     `json:"sourceType"`
	Configuration map[string]interface{}     `json:"configuration"`
	Options       []DataSourceOptionResponse `json:"options"`
}
