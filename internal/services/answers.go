package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/qoverflow/backend/internal/models"
)

var ErrBlankBody = errors.New("body can't be blank")

type AnswerService struct {
	db *gorm.DB
}

func NewAnswerService(db *gorm.DB) *AnswerService {
	return &AnswerService{db: db}
}

// Create posts an answer on a question.
func (s *AnswerService) Create(questionID, userID int, body string) (*models.Answer, error) {
	body = sanitize(body)
	if strings.TrimSpace(body) == "" {
		return nil, ErrBlankBody
	}

	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return nil, ErrNotFound
	}

	answer := models.Answer{
		Body:       body,
		QuestionID: question.ID,
		UserID:     userID,
	}
	if err := s.db.Create(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

// Get loads an answer with its parent question.
func (s *AnswerService) Get(answerID int) (*models.Answer, error) {
	var answer models.Answer
	err := s.db.Preload("User").Preload("Question").First(&answer, answerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// VoteCounts returns the answer's current upvote and downvote totals.
func (s *AnswerService) VoteCounts(answerID int) (int, int) {
	var up, down int64
	s.db.Model(&models.Upvote{}).Where("answer_id = ?", answerID).Count(&up)
	s.db.Model(&models.Downvote{}).Where("answer_id = ?", answerID).Count(&down)
	return int(up), int(down)
}

// UpvoteCorrection heals duplicate upvotes from one creator on an answer,
// mirroring the question-level repair.
func (s *AnswerService) UpvoteCorrection(answerID, creatorID int) error {
	var ids []int
	err := s.db.Model(&models.Upvote{}).
		Where("answer_id = ? AND creator_id = ?", answerID, creatorID).
		Order("id asc").
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	if len(ids) <= 1 {
		return nil
	}
	return s.db.Delete(&models.Upvote{}, ids[1:]).Error
}

// DownvoteCorrection is the downvote counterpart.
func (s *AnswerService) DownvoteCorrection(answerID, creatorID int) error {
	var ids []int
	err := s.db.Model(&models.Downvote{}).
		Where("answer_id = ? AND creator_id = ?", answerID, creatorID).
		Order("id asc").
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	if len(ids) <= 1 {
		return nil
	}
	return s.db.Delete(&models.Downvote{}, ids[1:]).Error
}
