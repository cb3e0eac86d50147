package models

import (
	"time"
)

type PostStatus string

const (
	PostStatusPending  PostStatus = "PENDING"
	PostStatusApproved PostStatus = "APPROVED"
	PostStatusRejected PostStatus = "REJECTED"
)

type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	Status      PostStatus `gorm:"size:20;default:'PENDING';not null;index" json:"status"`
	CreatedByID uint       `gorm:"not null;index" json:"created_by_id"`
	CreatedBy   *User      `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Per-type interaction tallies, filled on read paths
	Interactions map[string]int64 `gorm:"-" json:"interactions,omitzero"`
}
