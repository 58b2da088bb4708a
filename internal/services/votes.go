package services

import (
	"gorm.io/gorm"

	"github.com/qoverflow/backend/internal/models"
)

// VoteService records up/down votes on questions and answers. A repeated
// vote of the same kind toggles it off; a vote of the opposite kind
// replaces the old one. Duplicate records that slip in under concurrency
// are left for the correction operations to heal.
type VoteService struct {
	db  *gorm.DB
	rep *ReputationService
}

func NewVoteService(db *gorm.DB, rep *ReputationService) *VoteService {
	return &VoteService{db: db, rep: rep}
}

func (s *VoteService) UpvoteQuestion(questionID, creatorID int) (string, error) {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return "", ErrNotFound
	}
	return s.upvote(&models.Upvote{QuestionID: &question.ID, CreatorID: creatorID, UserID: question.UserID},
		"question_id = ? AND creator_id = ?", question.ID)
}

func (s *VoteService) DownvoteQuestion(questionID, creatorID int) (string, error) {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return "", ErrNotFound
	}
	return s.downvote(&models.Downvote{QuestionID: &question.ID, CreatorID: creatorID, UserID: question.UserID},
		"question_id = ? AND creator_id = ?", question.ID)
}

func (s *VoteService) UpvoteAnswer(answerID, creatorID int) (string, error) {
	var answer models.Answer
	if err := s.db.First(&answer, answerID).Error; err != nil {
		return "", ErrNotFound
	}
	return s.upvote(&models.Upvote{AnswerID: &answer.ID, CreatorID: creatorID, UserID: answer.UserID},
		"answer_id = ? AND creator_id = ?", answer.ID)
}

func (s *VoteService) DownvoteAnswer(answerID, creatorID int) (string, error) {
	var answer models.Answer
	if err := s.db.First(&answer, answerID).Error; err != nil {
		return "", ErrNotFound
	}
	return s.downvote(&models.Downvote{AnswerID: &answer.ID, CreatorID: creatorID, UserID: answer.UserID},
		"answer_id = ? AND creator_id = ?", answer.ID)
}

func (s *VoteService) upvote(vote *models.Upvote, cond string, targetID int) (string, error) {
	var existing models.Upvote
	err := s.db.Where(cond, targetID, vote.CreatorID).First(&existing).Error
	if err == nil {
		// Same vote again removes it.
		if err := s.db.Delete(&existing).Error; err != nil {
			return "", err
		}
		s.adjustAsync(vote.UserID, -PointsUpvoted, ActionUpvoteRemoved)
		return "vote removed", nil
	}

	// An opposite vote is replaced, not stacked.
	var opposite models.Downvote
	if err := s.db.Where(cond, targetID, vote.CreatorID).First(&opposite).Error; err == nil {
		if err := s.db.Delete(&opposite).Error; err != nil {
			return "", err
		}
		s.adjustAsync(vote.UserID, -PointsDownvoted, ActionDownvoteRemoved)
	}

	if err := s.db.Create(vote).Error; err != nil {
		return "", err
	}
	s.adjustAsync(vote.UserID, PointsUpvoted, ActionUpvoted)
	return "vote recorded", nil
}

func (s *VoteService) downvote(vote *models.Downvote, cond string, targetID int) (string, error) {
	var existing models.Downvote
	err := s.db.Where(cond, targetID, vote.CreatorID).First(&existing).Error
	if err == nil {
		if err := s.db.Delete(&existing).Error; err != nil {
			return "", err
		}
		s.adjustAsync(vote.UserID, -PointsDownvoted, ActionDownvoteRemoved)
		return "vote removed", nil
	}

	var opposite models.Upvote
	if err := s.db.Where(cond, targetID, vote.CreatorID).First(&opposite).Error; err == nil {
		if err := s.db.Delete(&opposite).Error; err != nil {
			return "", err
		}
		s.adjustAsync(vote.UserID, -PointsUpvoted, ActionUpvoteRemoved)
	}

	if err := s.db.Create(vote).Error; err != nil {
		return "", err
	}
	s.adjustAsync(vote.UserID, PointsDownvoted, ActionDownvoted)
	return "vote recorded", nil
}

func (s *VoteService) adjustAsync(userID, amount int, action string) {
	if s.rep == nil {
		return
	}
	go func() {
		_ = s.rep.Adjust(userID, amount, action)
	}()
}
