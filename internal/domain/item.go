package domain

import "time"

// Item is an instance of a template. The template reference is set at
// creation and never changes afterwards.
type Item struct {
	BaseModel
	TemplateID int64        `gorm:"not null;index:idx_items_template_id" json:"templateId"`
	Title      string       `gorm:"type:varchar(200);not null" json:"title"`
	Slug       string       `gorm:"type:varchar(255);not null;uniqueIndex:uq_items_slug" json:"slug"`
	CreatedBy  int64        `gorm:"not null" json:"createdBy"`
	Values     []FieldValue `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"values,omitempty"`
}

// TableName specifies the table name for Item
func (Item) TableName() string {
	return "items"
}

// ItemStatistics is the denormalized rating summary for an item. It is
// recomputed by the rating ingestion job; the admin surface only reads it.
type ItemStatistics struct {
	ItemID           int64     `gorm:"primaryKey" json:"itemId"`
	AvgRating        float64   `gorm:"not null;default:0" json:"avgRating"`
	RatingsCount     int64     `gorm:"not null;default:0" json:"ratingsCount"`
	ViewsCount       int64     `gorm:"not null;default:0" json:"viewsCount"`
	LastCalculatedAt time.Time `json:"lastCalculatedAt"`
}

// TableName specifies the table name for ItemStatistics
func (ItemStatistics) TableName() string {
	return "item_statistics"
}

// Rating is a single user rating of an item
type Rating struct {
	BaseModel
	ItemID     int64   `gorm:"not null;index:idx_user_ratings_item_id" json:"itemId"`
	UserID     int64   `gorm:"not null;index:idx_user_ratings_user_id" json:"userId"`
	Rating     float64 `gorm:"not null" json:"rating"`
	ReviewText string  `gorm:"type:text" json:"reviewText"`
}

// TableName specifies the table name for Rating
func (Rating) TableName() string {
	return "user_ratings"
}
