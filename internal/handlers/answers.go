package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qoverflow/backend/internal/services"
)

type AnswerHandler struct {
	answers *services.AnswerService
	votes   *services.VoteService
}

func NewAnswerHandler(answers *services.AnswerService, votes *services.VoteService) *AnswerHandler {
	return &AnswerHandler{answers: answers, votes: votes}
}

// CreateAnswer posts an answer on a question (PROTECTED)
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	var input struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.answers.Create(questionID, userID, input.Body)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}
	if errors.Is(err, services.ErrBlankBody) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body can't be blank"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create answer"})
		return
	}

	c.JSON(http.StatusCreated, answer)
}

// GetAnswer returns one answer with its parent question and vote counts.
// Signed-in viewers get their duplicate votes healed first.
func (h *AnswerHandler) GetAnswer(c *gin.Context) {
	answerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer ID"})
		return
	}

	if viewerID, ok := extractUserID(c); ok {
		_ = h.answers.UpvoteCorrection(answerID, viewerID)
		_ = h.answers.DownvoteCorrection(answerID, viewerID)
	}

	answer, err := h.answers.Get(answerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}

	up, down := h.answers.VoteCounts(answer.ID)

	c.JSON(http.StatusOK, gin.H{
		"id":         answer.ID,
		"body":       answer.Body,
		"user":       answer.User,
		"question":   answer.Question,
		"upvotes":    up,
		"downvotes":  down,
		"created_at": answer.CreatedAt,
	})
}

// VoteAnswer records an up or down vote on an answer (PROTECTED)
func (h *AnswerHandler) VoteAnswer(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	answerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer ID"})
		return
	}

	var input struct {
		VoteType int `json:"vote_type" binding:"required,oneof=-1 1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vote type must be -1 or 1"})
		return
	}

	var message string
	if input.VoteType == 1 {
		message, err = h.votes.UpvoteAnswer(answerID, userID)
	} else {
		message, err = h.votes.DownvoteAnswer(answerID, userID)
	}
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}
