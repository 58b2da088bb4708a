package models

import (
	"fmt"
	"strings"
	"time"
)

type Question struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Body         string    `gorm:"not null" json:"body"`
	UserID       int       `json:"user_id"`
	User         User      `gorm:"foreignKey:UserID" json:"user"`
	CategoryID   int       `json:"category_id"`
	Category     Category  `gorm:"foreignKey:CategoryID" json:"category"`
	BestAnswerID *int      `json:"best_answer_id,omitempty"`
	Answers      []Answer  `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateQuestionRequest struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	CategoryID int    `json:"category_id"`
}

// ValidationError reports the fields a record is missing. Nothing is
// persisted when one is returned.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s can't be blank", strings.Join(e.Fields, ", "))
}

// Validate checks the presence rules on title and body.
func (q *Question) Validate() error {
	var missing []string
	if strings.TrimSpace(q.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(q.Body) == "" {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// SortByBestAnswer returns the loaded answers with the accepted answer
// first and the rest in their original order. When no best answer is set,
// or it no longer matches any loaded answer, the original order is kept.
func (q *Question) SortByBestAnswer() []Answer {
	if q.BestAnswerID == nil {
		return q.Answers
	}

	best := -1
	for i := range q.Answers {
		if q.Answers[i].ID == *q.BestAnswerID {
			best = i
			break
		}
	}
	if best == -1 {
		return q.Answers
	}

	sorted := make([]Answer, 0, len(q.Answers))
	sorted = append(sorted, q.Answers[best])
	sorted = append(sorted, q.Answers[:best]...)
	sorted = append(sorted, q.Answers[best+1:]...)
	return sorted
}
