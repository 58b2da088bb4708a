package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/qoverflow/backend/internal/database"
	"github.com/qoverflow/backend/internal/models"
)

// newTestDB opens a private in-memory sqlite database migrated with the
// full schema. The DSN is named after the test so parallel tests never
// share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    name + "@example.com",
		Phone:    "+15550100",
		Password: "hashed",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user
}

func createQuestion(t *testing.T, db *gorm.DB, userID int, title string) models.Question {
	t.Helper()
	question := models.Question{
		Title:  title,
		Body:   "body of " + title,
		UserID: userID,
	}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("failed to create question %s: %v", title, err)
	}
	return question
}

func createAnswer(t *testing.T, db *gorm.DB, questionID, userID int, body string) models.Answer {
	t.Helper()
	answer := models.Answer{
		Body:       body,
		QuestionID: questionID,
		UserID:     userID,
	}
	if err := db.Create(&answer).Error; err != nil {
		t.Fatalf("failed to create answer: %v", err)
	}
	return answer
}

func createQuestionUpvote(t *testing.T, db *gorm.DB, questionID, creatorID, ownerID int) {
	t.Helper()
	vote := models.Upvote{QuestionID: &questionID, CreatorID: creatorID, UserID: ownerID}
	if err := db.Create(&vote).Error; err != nil {
		t.Fatalf("failed to create upvote: %v", err)
	}
}

func createQuestionDownvote(t *testing.T, db *gorm.DB, questionID, creatorID, ownerID int) {
	t.Helper()
	vote := models.Downvote{QuestionID: &questionID, CreatorID: creatorID, UserID: ownerID}
	if err := db.Create(&vote).Error; err != nil {
		t.Fatalf("failed to create downvote: %v", err)
	}
}

// at returns a fixed timestamp offset by the given number of minutes, for
// tests that need a deterministic creation order.
func at(minutes int) time.Time {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(minutes) * time.Minute)
}
