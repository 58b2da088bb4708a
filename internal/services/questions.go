package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/qoverflow/backend/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrNotOwner  = errors.New("not the owner")
	ErrBadAnswer = errors.New("answer does not belong to this question")
)

// Notifier is told when an answer gets accepted. Implementations may
// deliver the news out of band (SMS, mail); a nil Notifier disables it.
type Notifier interface {
	AnswerAccepted(author models.User, question models.Question)
}

type QuestionService struct {
	db       *gorm.DB
	rep      *ReputationService
	notifier Notifier
}

func NewQuestionService(db *gorm.DB, rep *ReputationService, notifier Notifier) *QuestionService {
	return &QuestionService{db: db, rep: rep, notifier: notifier}
}

// Create validates and persists a new question.
func (s *QuestionService) Create(userID int, req models.CreateQuestionRequest) (*models.Question, error) {
	question := models.Question{
		Title:      sanitize(req.Title),
		Body:       sanitize(req.Body),
		UserID:     userID,
		CategoryID: req.CategoryID,
	}

	if err := question.Validate(); err != nil {
		return nil, err
	}

	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// Get loads a question with its author, category and answers. Answers
// come back in creation order so SortByBestAnswer sees the original order.
func (s *QuestionService) Get(questionID int) (*models.Question, error) {
	var question models.Question
	err := s.db.Preload("User").Preload("Category").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc, id asc").Preload("User")
		}).
		First(&question, questionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// List returns all questions, newest first.
func (s *QuestionService) List() ([]models.Question, error) {
	var questions []models.Question
	err := s.db.Preload("User").Preload("Category").
		Order("created_at desc, id desc").
		Find(&questions).Error
	return questions, err
}

// Delete removes a question owned by ownerID.
func (s *QuestionService) Delete(questionID, ownerID int) error {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return ErrNotFound
	}
	if question.UserID != ownerID {
		return ErrNotOwner
	}
	return s.db.Delete(&question).Error
}

// AnswerCount returns the exact number of answer records on the question.
func (s *QuestionService) AnswerCount(questionID int) (int, error) {
	var count int64
	err := s.db.Model(&models.Answer{}).
		Where("question_id = ?", questionID).
		Count(&count).Error
	return int(count), err
}

// UpvoteCorrection deletes all but one of a creator's upvotes on the
// question. Zero or one existing record is a no-op. Duplicates are an
// accepted transient state; this repair is run before counts are read
// rather than enforced at write time, so it must stay idempotent.
func (s *QuestionService) UpvoteCorrection(questionID, creatorID int) error {
	var ids []int
	err := s.db.Model(&models.Upvote{}).
		Where("question_id = ? AND creator_id = ?", questionID, creatorID).
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

// DownvoteCorrection is the downvote counterpart of UpvoteCorrection.
func (s *QuestionService) DownvoteCorrection(questionID, creatorID int) error {
	var ids []int
	err := s.db.Model(&models.Downvote{}).
		Where("question_id = ? AND creator_id = ?", questionID, creatorID).
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

// VoteCounts returns the question's current upvote and downvote totals.
func (s *QuestionService) VoteCounts(questionID int) (int, int) {
	var up, down int64
	s.db.Model(&models.Upvote{}).Where("question_id = ?", questionID).Count(&up)
	s.db.Model(&models.Downvote{}).Where("question_id = ?", questionID).Count(&down)
	return int(up), int(down)
}

// AcceptBestAnswer marks an answer as the question's best answer. Only
// the question owner may accept, and the answer must belong to the
// question. The answer's author gets a reputation award and, when a
// notifier is configured, a notification.
func (s *QuestionService) AcceptBestAnswer(questionID, answerID, ownerID int) error {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return ErrNotFound
	}
	if question.UserID != ownerID {
		return ErrNotOwner
	}

	var answer models.Answer
	if err := s.db.First(&answer, answerID).Error; err != nil {
		return ErrNotFound
	}
	if answer.QuestionID != question.ID {
		return ErrBadAnswer
	}

	alreadyAccepted := question.BestAnswerID != nil && *question.BestAnswerID == answer.ID

	if err := s.db.Model(&question).Update("best_answer_id", answer.ID).Error; err != nil {
		return err
	}

	if alreadyAccepted {
		return nil
	}

	if s.rep != nil {
		_ = s.rep.Adjust(answer.UserID, PointsAnswerAccepted, ActionAnswerAccepted)
	}

	if s.notifier != nil {
		var author models.User
		if err := s.db.First(&author, answer.UserID).Error; err == nil {
			s.notifier.AnswerAccepted(author, question)
		}
	}

	return nil
}
