package models

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID        string         `gorm:"size:64;primaryKey" json:"id"`
	AuthorID  string         `gorm:"size:64;not null;index" json:"author_id"`
	Title     string         `gorm:"not null;size:255" json:"title"`
	Content   string         `gorm:"type:text" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Comment struct {
	ID        string         `gorm:"size:64;primaryKey" json:"id"`
	PostID    string         `gorm:"size:64;not null;index" json:"post_id"`
	AuthorID  string         `gorm:"size:64;not null;index" json:"author_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Tag and Category share the identifier space with reportable resources but
// are never reportable themselves.
type Tag struct {
	ID        string    `gorm:"size:64;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type Category struct {
	ID        string    `gorm:"size:64;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Icon      string    `gorm:"size:50" json:"icon"`
	CreatedAt time.Time `json:"created_at"`
}
