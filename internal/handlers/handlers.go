package handlers

import (
	"gorm.io/gorm"

	"github.com/qoverflow/backend/internal/config"
	"github.com/qoverflow/backend/internal/services"
)

// Handler combines all handler types
type Handler struct {
	Auth     *AuthHandler
	Question *QuestionHandler
	Answer   *AnswerHandler
	Comment  *CommentHandler
	User     *UserHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, cfg *config.Config, notifier services.Notifier) *Handler {
	rep := services.NewReputationService(db)
	questions := services.NewQuestionService(db, rep, notifier)
	answers := services.NewAnswerService(db)
	comments := services.NewCommentService(db)
	votes := services.NewVoteService(db, rep)
	profiles := services.NewProfileService(db)

	return &Handler{
		Auth:     NewAuthHandler(db, cfg.JWTSecret),
		Question: NewQuestionHandler(questions, answers, votes),
		Answer:   NewAnswerHandler(answers, votes),
		Comment:  NewCommentHandler(comments),
		User:     NewUserHandler(db, profiles),
	}
}
