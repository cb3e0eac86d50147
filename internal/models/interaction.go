package models

import (
	"time"
)

type InteractionType string

const (
	InteractionLike    InteractionType = "LIKE"
	InteractionDislike InteractionType = "DISLIKE"
	InteractionSad     InteractionType = "SAD"
	InteractionAngry   InteractionType = "ANGRY"
)

// Interaction targets exactly one of a post or a comment; the handlers set
// one pointer and leave the other nil. There is no uniqueness constraint, a
// user may react to the same target repeatedly.
type Interaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Type        InteractionType `gorm:"size:20;not null" json:"type"`
	PostID      *uint           `gorm:"index" json:"post_id,omitempty"`
	CommentID   *uint           `gorm:"index" json:"comment_id,omitempty"`
	CreatedByID uint            `gorm:"not null;index" json:"created_by_id"`
	CreatedBy   *User           `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
