package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/qoverflow/backend/internal/models"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// CreateOnQuestion attaches a comment to a question.
func (s *CommentService) CreateOnQuestion(questionID, userID int, body string) (*models.Comment, error) {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return nil, ErrNotFound
	}
	return s.create(userID, body, models.CommentableQuestion, question.ID)
}

// CreateOnAnswer attaches a comment to an answer.
func (s *CommentService) CreateOnAnswer(answerID, userID int, body string) (*models.Comment, error) {
	var answer models.Answer
	if err := s.db.First(&answer, answerID).Error; err != nil {
		return nil, ErrNotFound
	}
	return s.create(userID, body, models.CommentableAnswer, answer.ID)
}

func (s *CommentService) create(userID int, body string, kind models.CommentableType, targetID int) (*models.Comment, error) {
	body = sanitize(body)
	if strings.TrimSpace(body) == "" {
		return nil, ErrBlankBody
	}

	comment := models.Comment{
		Body:            body,
		UserID:          userID,
		CommentableType: kind,
		CommentableID:   targetID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListFor returns the comments on one commentable target, newest first.
func (s *CommentService) ListFor(kind models.CommentableType, targetID int) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Where("commentable_type = ? AND commentable_id = ?", kind, targetID).
		Preload("User").
		Order("created_at desc, id desc").
		Find(&comments).Error
	return comments, err
}
