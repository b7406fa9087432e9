package dto

import "time"

// NewFieldID is the sentinel id clients may send for a field that does not
// exist yet; it is treated the same as omitting the id.
const NewFieldID int64 = -1

// TemplateFieldRequest is one field definition inside a template create or
// update payload. A nil or sentinel ID marks a new field; any other ID must
// reference an existing field of the template.
type TemplateFieldRequest struct {
	ID              *int64                 `json:"id"`
	Name            string                 `json:"name" binding:"required,max=50"`
	DisplayName     string                 `json:"displayName" binding:"required,max=100"`
	Description     string                 `json:"description"`
	FieldType       string                 `json:"fieldType" binding:"required,oneof=text textarea number date boolean select multiselect json"`
	IsRequired      bool                   `json:"isRequired"`
	IsSearchable    bool                   `json:"isSearchable"`
	IsFilterable    bool                   `json:"isFilterable"`
	DisplayOrder    int                    `json:"displayOrder"`
	DataSourceID    *int64                 `json:"dataSourceId"`
	ValidationRules map[string]interface{} `json:"validationRules"`
}

// IsNew reports whether the payload entry describes a field to create
func (r *TemplateFieldRequest) IsNew() bool {
	return r.ID == nil || *r.ID == NewFieldID
}

// CreateTemplateRequest represents the request to create a template
type CreateTemplateRequest struct {
	Name        string                 `json:"name" binding:"required,max=50"`
	DisplayName string                 `json:"displayName" binding:"required,max=100"`
	Description string                 `json:"description"`
	FullMarks   int                    `json:"fullMarks"`
	Fields      []TemplateFieldRequest `json:"fields"`
}

// UpdateTemplateRequest carries the same shape as create; the field list is
// reconciled against the template's current fields.
type UpdateTemplateRequest = CreateTemplateRequest

// TemplateFieldResponse represents one field in a template response
type TemplateFieldResponse struct {
	ID              int64                  `json:"id"`
	Name            string                 `json:"name"`
	DisplayName     string                 `json:"displayName"`
	Description     string                 `json:"description"`
	FieldType       string                 `json:"fieldType"`
	IsRequired      bool                   `json:"isRequired"`
	IsSearchable    bool                   `json:"isSearchable"`
	IsFilterable    bool                   `json:"isFilterable"`
	DisplayOrder    int                    `json:"displayOrder"`
	DataSourceID    *int64                 `json:"dataSourceId"`
	ValidationRules map[string]interface{} `json:"validationRules"`
}

// TemplateResponse represents the full template response
type TemplateResponse struct {
	ID          int64                   `json:"id"`
	Name        string                  `json:"name"`
	DisplayName string                  `json:"displayName"`
	Description string                  `json:"description"`
	FullMarks   int                     `json:"fullMarks"`
	IsPublished bool                    `json:"isPublished"`
	Status      string                  `json:"status"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
	CreatedBy   *int64                  `json:"createdBy"`
	UpdatedBy   *int64                  `json:"updatedBy"`
	CreatorName string                  `json:"creatorName,omitempty"`
	UpdaterName string                  `json:"updaterName,omitempty"`
	FieldCount  int                     `json:"fieldCount"`
	Fields      []TemplateFieldResponse `json:"fields"`
}

// TemplateListFilters are the filters accepted by the template list
type TemplateListFilters struct {
	Search      string
	IsPublished *bool
	Status      string
}

// TemplateListResponse is the paginated template list envelope
type TemplateListResponse struct {
	List     []*TemplateResponse `json:"list"`
	PageNo   int                 `json:"pageNo"`
	PageSize int                 `json:"pageSize"`
	Total    int64               `json:"total"`
}
