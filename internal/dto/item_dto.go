package dto

import "time"

// FieldValueInput sets the value of one field on an item
type FieldValueInput struct {
	FieldID int64       `json:"fieldId" binding:"required"`
	Value   interface{} `json:"value"`
}

// CreateItemRequest represents the request to create an item against a template
type CreateItemRequest struct {
	Title       string            `json:"title" binding:"required,max=200"`
	TemplateID  int64             `json:"templateId" binding:"required"`
	FieldValues []FieldValueInput `json:"fieldValues"`
}

// SetFieldValuesRequest represents a batch field-value upsert for an item
type SetFieldValuesRequest struct {
	FieldValues []FieldValueInput `json:"fieldValues" binding:"required"`
}

// FieldValueResponse is one stored value, typed per the field's declared type
type FieldValueResponse struct {
	FieldID     int64       `json:"fieldId"`
	FieldName   string      `json:"fieldName"`
	DisplayName string      `json:"displayName"`
	FieldType   string      `json:"fieldType"`
	Value       interface{} `json:"value"`
}

// ItemResponse represents an item row joined with its template and statistics
type ItemResponse struct {
	ID            int64                `json:"id"`
	Title         string               `json:"title"`
	Slug          string               `json:"slug"`
	TemplateID    int64                `json:"templateId"`
	TemplateName  string               `json:"templateName"`
	CreatedBy     int64                `json:"createdBy"`
	CreatedByName string               `json:"createdByName,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
	AvgRating     float64              `json:"avgRating"`
	RatingsCount  int64                `json:"ratingsCount"`
	ViewsCount    int64                `json:"viewsCount"`
	FieldValues   []FieldValueResponse `json:"fieldValues,omitempty"`
}

// ItemListFilters are the filters and sort accepted by the item list
type ItemListFilters struct {
	Title            string
	TemplateID       *int64
	CreatedTimeStart *time.Time
	CreatedTimeEnd   *time.Time
	SortField        string
	SortOrder        string
}

// ItemListResponse is the paginated item list envelope
type ItemListResponse struct {
	List     []*ItemResponse `json:"list"`
	PageNo   int             `json:"pageNo"`
	PageSize int             `json:"pageSize"`
	Total    int64           `json:"total"`
}

// RatingResponse is one user rating enriched with the author's username
type RatingResponse struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"itemId"`
	UserID     int64     `json:"userId"`
	Username   string    `json:"username"`
	Rating     float64   `json:"rating"`
	ReviewText string    `json:"reviewText"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// RatingListResponse is the paginated rating list envelope
type RatingListResponse struct {
	List     []*RatingResponse `json:"list"`
	PageNo   int               `json:"pageNo"`
	PageSize int               `json:"pageSize"`
	Total    int64             `json:"total"`
}
