package models

import "time"

type Answer struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	Body       string    `gorm:"not null" json:"body"`
	QuestionID int       `gorm:"index" json:"question_id"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	UserID     int       `json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateAnswerRequest struct {
	Body string `json:"body"`
}
