package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/qoverflow/backend/internal/models"
	"github.com/qoverflow/backend/internal/services"
)

type UserHandler struct {
	db       *gorm.DB
	profiles *services.ProfileService
}

func NewUserHandler(db *gorm.DB, profiles *services.ProfileService) *UserHandler {
	return &UserHandler{db: db, profiles: profiles}
}

// GetUserProfile returns a user's profile: account info gated by
// ownership, plus the three bounded recent-activity views. Each view is
// computed independently; a skew between them is acceptable.
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	viewerID, _ := extractUserID(c)
	visibility := services.VisibilityFor(viewerID, user.ID)

	questions, err := h.profiles.RecentQuestions(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	answers, err := h.profiles.RecentAnswers(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch answers"})
		return
	}

	comments, err := h.profiles.RecentCommentsReceived(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	info := gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"reputation": user.Reputation,
	}
	if visibility.ShowPhone {
		info["phone"] = user.Phone
	}

	var recentQuestions []gin.H
	for _, q := range questions {
		recentQuestions = append(recentQuestions, gin.H{
			"id":         q.ID,
			"title":      q.Title,
			"created_at": q.CreatedAt,
		})
	}
	if recentQuestions == nil {
		recentQuestions = []gin.H{}
	}

	var recentAnswers []gin.H
	for _, a := range answers {
		entry := gin.H{
			"id":         a.ID,
			"body":       a.Body,
			"created_at": a.CreatedAt,
		}
		if a.Question != nil {
			entry["question_id"] = a.Question.ID
			entry["question_title"] = a.Question.Title
		}
		recentAnswers = append(recentAnswers, entry)
	}
	if recentAnswers == nil {
		recentAnswers = []gin.H{}
	}

	var recentComments []gin.H
	for _, rc := range comments {
		recentComments = append(recentComments, gin.H{
			"id":             rc.Comment.ID,
			"body":           rc.Comment.Body,
			"user":           rc.Comment.User,
			"question_id":    rc.QuestionID,
			"question_title": rc.QuestionTitle,
			"created_at":     rc.Comment.CreatedAt,
		})
	}
	if recentComments == nil {
		recentComments = []gin.H{}
	}

	c.JSON(http.StatusOK, gin.H{
		"user":                     info,
		"can_edit":                 visibility.CanEdit,
		"recent_questions":         recentQuestions,
		"recent_answers":           recentAnswers,
		"recent_comments_received": recentComments,
	})
}

// UpdateUserProfile updates the caller's own profile (PROTECTED)
func (h *UserHandler) UpdateUserProfile(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	authUserID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if authUserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own profile"})
		return
	}

	var input struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}

	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}
