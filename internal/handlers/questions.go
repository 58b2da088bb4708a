package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qoverflow/backend/internal/models"
	"github.com/qoverflow/backend/internal/services"
)

type QuestionHandler struct {
	questions *services.QuestionService
	answers   *services.AnswerService
	votes     *services.VoteService
}

func NewQuestionHandler(questions *services.QuestionService, answers *services.AnswerService, votes *services.VoteService) *QuestionHandler {
	return &QuestionHandler{questions: questions, answers: answers, votes: votes}
}

// GetQuestions returns all questions, newest first, with their counts
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	questions, err := h.questions.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	var responses []gin.H
	for _, question := range questions {
		answerCount, _ := h.questions.AnswerCount(question.ID)
		up, down := h.questions.VoteCounts(question.ID)
		responses = append(responses, gin.H{
			"id":           question.ID,
			"title":        question.Title,
			"body":         question.Body,
			"user":         question.User,
			"category":     question.Category,
			"answer_count": answerCount,
			"upvotes":      up,
			"downvotes":    down,
			"created_at":   question.CreatedAt,
		})
	}

	if responses == nil {
		responses = []gin.H{}
	}

	c.JSON(http.StatusOK, responses)
}

// GetQuestion returns one question with its answers sorted best-first.
// For a signed-in viewer the vote correction runs before counts are read,
// healing any duplicate votes the viewer may have accumulated.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	if viewerID, ok := extractUserID(c); ok {
		_ = h.questions.UpvoteCorrection(questionID, viewerID)
		_ = h.questions.DownvoteCorrection(questionID, viewerID)
	}

	question, err := h.questions.Get(questionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	up, down := h.questions.VoteCounts(question.ID)

	var answers []gin.H
	for _, answer := range question.SortByBestAnswer() {
		aUp, aDown := h.answers.VoteCounts(answer.ID)
		answers = append(answers, gin.H{
			"id":         answer.ID,
			"body":       answer.Body,
			"user":       answer.User,
			"is_best":    question.BestAnswerID != nil && *question.BestAnswerID == answer.ID,
			"upvotes":    aUp,
			"downvotes":  aDown,
			"created_at": answer.CreatedAt,
		})
	}
	if answers == nil {
		answers = []gin.H{}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             question.ID,
		"title":          question.Title,
		"body":           question.Body,
		"user":           question.User,
		"category":       question.Category,
		"best_answer_id": question.BestAnswerID,
		"answers":        answers,
		"answer_count":   len(question.Answers),
		"upvotes":        up,
		"downvotes":      down,
		"created_at":     question.CreatedAt,
	})
}

// CreateQuestion creates a new question (PROTECTED)
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questions.Create(userID, input)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "fields": vErr.Fields})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	c.JSON(http.StatusCreated, question)
}

// DeleteQuestion deletes a question (PROTECTED - requires ownership)
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
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

	switch err := h.questions.Delete(questionID, userID); {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own questions"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete question"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
	}
}

// VoteQuestion records an up or down vote on a question (PROTECTED)
func (h *QuestionHandler) VoteQuestion(c *gin.Context) {
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
		VoteType int `json:"vote_type" binding:"required,oneof=-1 1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vote type must be -1 or 1"})
		return
	}

	var message string
	if input.VoteType == 1 {
		message, err = h.votes.UpvoteQuestion(questionID, userID)
	} else {
		message, err = h.votes.DownvoteQuestion(questionID, userID)
	}
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// AcceptAnswer marks an answer as the question's best answer (PROTECTED - owner only)
func (h *QuestionHandler) AcceptAnswer(c *gin.Context) {
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
	answerID, err := strconv.Atoi(c.Param("answerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer ID"})
		return
	}

	switch err := h.questions.AcceptBestAnswer(questionID, answerID, userID); {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Question or answer not found"})
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the question owner can accept an answer"})
	case errors.Is(err, services.ErrBadAnswer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Answer does not belong to this question"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept answer"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Answer accepted"})
	}
}
