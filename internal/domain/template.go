package domain

import "gorm.io/datatypes"

// FieldType represents the declared type of a template field. The set is
// closed: field types are not user-extensible.
type FieldType string

// FieldType constants
const (
	FieldTypeText        FieldType = "text"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeNumber      FieldType = "number"
	FieldTypeDate        FieldType = "date"
	FieldTypeBoolean     FieldType = "boolean"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiselect FieldType = "multiselect"
	FieldTypeJSON        FieldType = "json"
)

// IsValid reports whether the field type is part of the closed set
func (f FieldType) IsValid() bool {
	switch f {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeDate,
		FieldTypeBoolean, FieldTypeSelect, FieldTypeMultiselect, FieldTypeJSON:
		return true
	}
	return false
}

// Template is a named schema defining the set of typed fields an item of
// that kind carries. The template is the single source of truth for which
// field value variant applies.
type Template struct {
	BaseModel
	Name        string          `gorm:"type:varchar(50);not null;uniqueIndex:uq_templates_name" json:"name"`
	DisplayName string          `gorm:"type:varchar(100);not null" json:"displayName"`
	Description string          `gorm:"type:text" json:"description"`
	FullMarks   int             `gorm:"not null;default:10" json:"fullMarks"`
	IsPublished bool            `gorm:"not null;default:false" json:"isPublished"`
	CreatedBy   *int64          `json:"createdBy"`
	UpdatedBy   *int64          `json:"updatedBy"`
	Fields      []TemplateField `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"fields,omitempty"`
}

// TableName specifies the table name for Template
func (Template) TableName() string {
	return "templates"
}

// TemplateField is one typed field definition within a template.
// DataSourceID is meaningful only for select/multiselect types; this is a
// convention, not a structural constraint.
type TemplateField struct {
	BaseModel
	TemplateID      int64          `gorm:"not null;index:idx_template_fields_template_id" json:"templateId"`
	Name            string         `gorm:"type:varchar(50);not null" json:"name"`
	DisplayName     string         `gorm:"type:varchar(100);not null" json:"displayName"`
	Description     string         `gorm:"type:text" json:"description"`
	FieldType       FieldType      `gorm:"type:varchar(30);not null" json:"fieldType"`
	IsRequired      bool           `gorm:"not null;default:false" json:"isRequired"`
	IsSearchable    bool           `gorm:"not null;default:false" json:"isSearchable"`
	IsFilterable    bool           `gorm:"not null;default:false" json:"isFilterable"`
	DisplayOrder    int            `gorm:"not null;default:0" json:"displayOrder"`
	DataSourceID    *int64         `gorm:"index:idx_template_fields_data_source_id" json:"dataSourceId"`
	ValidationRules datatypes.JSON `gorm:"type:jsonb" json:"validationRules"`
}

// TableName specifies the table name for TemplateField
func (TemplateField) TableName() string {
	return "template_fields"
}
