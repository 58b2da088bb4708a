package services

import (
	"gorm.io/gorm"

	"github.com/qoverflow/backend/internal/models"
)

const (
	ActionAnswerAccepted  = "answer accepted"
	ActionUpvoted         = "content upvoted"
	ActionUpvoteRemoved   = "upvote removed"
	ActionDownvoted       = "content downvoted"
	ActionDownvoteRemoved = "downvote removed"
)

const (
	PointsAnswerAccepted = 10
	PointsUpvoted        = 5
	PointsDownvoted      = -2
)

type ReputationService struct {
	db *gorm.DB
}

func NewReputationService(db *gorm.DB) *ReputationService {
	return &ReputationService{db: db}
}

// Adjust applies a reputation change and records it in the log, both in
// one transaction.
func (s *ReputationService) Adjust(userID int, amount int, action string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		entry := models.ReputationLog{
			UserID: userID,
			Amount: amount,
			Action: action,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("reputation", gorm.Expr("reputation + ?", amount)).
			Error
	})
}
