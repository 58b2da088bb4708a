package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qoverflow/backend/internal/models"
	"github.com/qoverflow/backend/internal/services"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// GetQuestionComments returns the comments on a question
func (h *CommentHandler) GetQuestionComments(c *gin.Context) {
	h.list(c, models.CommentableQuestion)
}

// GetAnswerComments returns the comments on an answer
func (h *CommentHandler) GetAnswerComments(c *gin.Context) {
	h.list(c, models.CommentableAnswer)
}

func (h *CommentHandler) list(c *gin.Context, kind models.CommentableType) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	comments, err := h.comments.ListFor(kind, targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	if comments == nil {
		comments = []models.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

// CreateQuestionComment comments on a question (PROTECTED)
func (h *CommentHandler) CreateQuestionComment(c *gin.Context) {
	h.create(c, models.CommentableQuestion)
}

// CreateAnswerComment comments on an answer (PROTECTED)
func (h *CommentHandler) CreateAnswerComment(c *gin.Context) {
	h.create(c, models.CommentableAnswer)
}

func (h *CommentHandler) create(c *gin.Context, kind models.CommentableType) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comment *models.Comment
	if kind == models.CommentableQuestion {
		comment, err = h.comments.CreateOnQuestion(targetID, userID, input.Body)
	} else {
		comment, err = h.comments.CreateOnAnswer(targetID, userID, input.Body)
	}
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target not found"})
		return
	}
	if errors.Is(err, services.ErrBlankBody) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body can't be blank"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}
