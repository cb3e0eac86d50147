package models

import (
	"time"
)

type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	PostID      uint      `gorm:"not null;index" json:"post_id"`
	Post        *Post     `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post,omitempty"`
	CreatedByID uint      `gorm:"not null;index" json:"created_by_id"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Per-type interaction tallies, filled on read paths
	Interactions map[string]int64 `gorm:"-" json:"interactions,omitzero"`
}
