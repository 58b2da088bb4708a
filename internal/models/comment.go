package models

import "time"

// CommentableType discriminates what a comment is attached to.
type CommentableType string

const (
	CommentableQuestion CommentableType = "question"
	CommentableAnswer   CommentableType = "answer"
)

// Comment attaches to exactly one question or answer. The pair
// (CommentableType, CommentableID) replaces the polymorphic association
// the domain calls "commentable".
type Comment struct {
	ID              int             `gorm:"primaryKey" json:"id"`
	Body            string          `gorm:"not null" json:"body"`
	UserID          int             `json:"user_id"`
	User            User            `gorm:"foreignKey:UserID" json:"user"`
	CommentableType CommentableType `gorm:"size:16;not null;index:idx_commentable" json:"commentable_type"`
	CommentableID   int             `gorm:"not null;index:idx_commentable" json:"commentable_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type CreateCommentRequest struct {
	Body string `json:"body"`
}
