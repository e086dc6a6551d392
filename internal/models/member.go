package models

import (
	"time"

	"gorm.io/gorm"
)

// Member is a platform account. Members can be reported and can file reports.
type Member struct {
	ID        string         `gorm:"size:64;primaryKey" json:"id"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Name      string         `gorm:"not null;size:100" json:"name"`
	Role      string         `gorm:"size:20;not null;default:'member'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
