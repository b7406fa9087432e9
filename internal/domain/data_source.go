package domain

import "gorm.io/datatypes"

// SourceType represents how a data source produces its values
type SourceType string

// SourceType constants
const (
	SourceTypeStaticList SourceType = "static_list"
	SourceTypeRange      SourceType = "range"
	SourceTypeAPI        SourceType = "api"
	SourceTypeDynamic    SourceType = "dynamic"
)

// IsValid reports whether the source type is one of the known kinds
func (s SourceType) IsValid() bool {
	switch s {
	case SourceTypeStaticList, SourceTypeRange, SourceTypeAPI, SourceTypeDynamic:
		return true
	}
	return false
}

// DataSource is a named, reusable controlled vocabulary that select and
// multiselect fields can bind to. It is referenced by template fields but
// never owned by them.
type DataSource struct {
	BaseModel
	Name          string             `gorm:"type:varchar(100);not null;uniqueIndex:uq_data_sources_name" json:"name"`
	SourceType    SourceType         `gorm:"type:varchar(30);not null" json:"sourceType"`
	Configuration datatypes.JSON     `gorm:"type:jsonb" json:"configuration"`
	CreatedBy     *int64             `gorm:"index:idx_data_sources_created_by" json:"createdBy"`
	Options       []DataSourceOption `gorm:"foreignKey:DataSourceID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

// TableName specifies the table name for DataSource
func (DataSource) TableName() string {
	return "field_data_sources"
}

// DataSourceOption is one entry of a static_list data source
type DataSourceOption struct {
	BaseModel
	DataSourceID int64  `gorm:"not null;index:idx_data_source_options_data_source_id" json:"dataSourceId"`
	Value        string `gorm:"type:varchar(200);not null" json:"value"`
	DisplayText  string `gorm:"type:varchar(200);not null" json:"displayText"`
}

// TableName specifies the table name for DataSourceOption
func (DataSourceOption) TableName() string {
	return "field_data_source_options"
}
