package models

import "time"

// Upvote is one voter's positive vote on a question or an answer.
// CreatorID is the voter; UserID is the owner of the voted-on content,
// kept for reputation attribution. Duplicates from the same creator are
// tolerated at write time and healed by the correction operations.
type Upvote struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	QuestionID *int      `gorm:"index" json:"question_id,omitempty"`
	AnswerID   *int      `gorm:"index" json:"answer_id,omitempty"`
	CreatorID  int       `gorm:"not null;index" json:"creator_id"`
	UserID     int       `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Downvote mirrors Upvote for negative votes. Kept as a separate table
// so each kind is counted and corrected independently.
type Downvote struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	QuestionID *int      `gorm:"index" json:"question_id,omitempty"`
	AnswerID   *int      `gorm:"index" json:"answer_id,omitempty"`
	CreatorID  int       `gorm:"not null;index" json:"creator_id"`
	UserID     int       `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}
