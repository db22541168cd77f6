package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TagList is an ordered list of tag strings persisted as a JSONB array.
// Order is preserved for serialization; matching is set-intersection.
type TagList []string

// Value serializes the list for storage. A nil list is stored as [].
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		t = TagList{}
	}
	return json.Marshal(t)
}

// Scan deserializes a JSONB array column into the list.
func (t *TagList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*t = TagList{}
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported tags column type %T", value)
	}
}

// GormDataType tells GORM which column type to migrate to.
func (TagList) GormDataType() string {
	return "jsonb"
}

// Blog represents a blog post. AuthorID is set at creation and never
// transferred; Author carries the joined public fields for responses.
type Blog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Excerpt   string    `gorm:"size:500" json:"excerpt,omitempty"`
	HeroImage string    `json:"hero_image,omitempty"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Tags      TagList   `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Pagination describes the full result set behind one page.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// BlogPage is one page of blogs plus pagination metadata. Not persisted.
type BlogPage struct {
	Blogs      []*Blog    `json:"blogs"`
	Pagination Pagination `json:"pagination"`
}
