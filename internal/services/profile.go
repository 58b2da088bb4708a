package services

import (
	"sort"

	"gorm.io/gorm"

	"github.com/qoverflow/backend/internal/models"
)

// recentLimit bounds every profile view.
const recentLimit = 5

// ProfileService computes the bounded recent-activity views shown on a
// user's profile page. Each view is an independent stateless read; no
// consistent snapshot across them is required.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// ReceivedComment is a comment left on the user's content, resolved to
// the question it should link to. For a comment on an answer that is the
// answer's parent question.
type ReceivedComment struct {
	Comment       models.Comment `json:"comment"`
	QuestionID    int            `json:"question_id"`
	QuestionTitle string         `json:"question_title"`
}

// RecentQuestions returns the user's five most recent questions, newest
// first. Ties on creation time break on ID, newest ID first.
func (s *ProfileService) RecentQuestions(userID int) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Limit(recentLimit).
		Find(&questions).Error
	return questions, err
}

// RecentAnswers returns the user's five most recent answers, each with
// its parent question loaded so the caller can link to it.
func (s *ProfileService) RecentAnswers(userID int) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.Where("user_id = ?", userID).
		Preload("Question").
		Order("created_at desc, id desc").
		Limit(recentLimit).
		Find(&answers).Error
	return answers, err
}

// RecentCommentsReceived returns the five most recent comments left on
// the user's questions or answers, regardless of who wrote them. The two
// commentable kinds are queried separately, merged, re-sorted and
// truncated.
func (s *ProfileService) RecentCommentsReceived(userID int) ([]ReceivedComment, error) {
	var questionIDs []int
	if err := s.db.Model(&models.Question{}).
		Where("user_id = ?", userID).
		Pluck("id", &questionIDs).Error; err != nil {
		return nil, err
	}

	var answers []models.Answer
	if err := s.db.Select("id", "question_id").
		Where("user_id = ?", userID).
		Find(&answers).Error; err != nil {
		return nil, err
	}

	var comments []models.Comment
	if len(questionIDs) > 0 {
		var onQuestions []models.Comment
		err := s.db.Where("commentable_type = ? AND commentable_id IN ?", models.CommentableQuestion, questionIDs).
			Preload("User").
			Order("created_at desc, id desc").
			Limit(recentLimit).
			Find(&onQuestions).Error
		if err != nil {
			return nil, err
		}
		comments = append(comments, onQuestions...)
	}

	answerQuestion := make(map[int]int, len(answers))
	if len(answers) > 0 {
		answerIDs := make([]int, 0, len(answers))
		for _, a := range answers {
			answerIDs = append(answerIDs, a.ID)
			answerQuestion[a.ID] = a.QuestionID
		}

		var onAnswers []models.Comment
		err := s.db.Where("commentable_type = ? AND commentable_id IN ?", models.CommentableAnswer, answerIDs).
			Preload("User").
			Order("created_at desc, id desc").
			Limit(recentLimit).
			Find(&onAnswers).Error
		if err != nil {
			return nil, err
		}
		comments = append(comments, onAnswers...)
	}

	sort.SliceStable(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID > comments[j].ID
		}
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	if len(comments) > recentLimit {
		comments = comments[:recentLimit]
	}

	// Resolve every comment to the question it links to.
	linkIDs := make(map[int]struct{}, len(comments))
	for _, c := range comments {
		qid := c.CommentableID
		if c.CommentableType == models.CommentableAnswer {
			qid = answerQuestion[c.CommentableID]
		}
		linkIDs[qid] = struct{}{}
	}

	titles := make(map[int]string, len(linkIDs))
	if len(linkIDs) > 0 {
		ids := make([]int, 0, len(linkIDs))
		for id := range linkIDs {
			ids = append(ids, id)
		}
		var questions []models.Question
		if err := s.db.Select("id", "title").Where("id IN ?", ids).Find(&questions).Error; err != nil {
			return nil, err
		}
		for _, q := range questions {
			titles[q.ID] = q.Title
		}
	}

	received := make([]ReceivedComment, 0, len(comments))
	for _, c := range comments {
		qid := c.CommentableID
		if c.CommentableType == models.CommentableAnswer {
			qid = answerQuestion[c.CommentableID]
		}
		received = append(received, ReceivedComment{
			Comment:       c,
			QuestionID:    qid,
			QuestionTitle: titles[qid],
		})
	}
	return received, nil
}

// Visibility says which private parts of a profile the viewer may see.
type Visibility struct {
	ShowPhone bool `json:"show_phone"`
	CanEdit   bool `json:"can_edit"`
}

// VisibilityFor gates profile fields on ownership: email and reputation
// are always public, phone and the edit affordance only for the owner.
func VisibilityFor(viewerID, ownerID int) Visibility {
	self := viewerID == ownerID
	return Visibility{ShowPhone: self, CanEdit: self}
}
