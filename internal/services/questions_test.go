package services

import (
	"errors"
	"testing"

	"github.com/qoverflow/backend/internal/models"
)

func TestAnswerCount(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuestionService(db, nil, nil)

	user := createUser(t, db, "khaled")
	question := createQuestion(t, db, user.ID, "Why do they try to stop us?")

	createAnswer(t, db, question.ID, user.ID, "blessup")
	createAnswer(t, db, question.ID, user.ID, "we the best")
	createAnswer(t, db, question.ID, user.ID, "$$$")

	count, err := svc.AnswerCount(question.ID)
	if err != nil {
		t.Fatalf("AnswerCount failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 answers, got %d", count)
	}
}

func TestUpvoteCorrection(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuestionService(db, nil, nil)

	owner := createUser(t, db, "owner")
	voter := createUser(t, db, "voter")
	other := createUser(t, db, "other")
	question := createQuestion(t, db, owner.ID, "Why are we the best?")

	// Three duplicate upvotes from one creator plus one from another.
	createQuestionUpvote(t, db, question.ID, voter.ID, owner.ID)
	createQuestionUpvote(t, db, question.ID, voter.ID, owner.ID)
	createQuestionUpvote(t, db, question.ID, voter.ID, owner.ID)
	createQuestionUpvote(t, db, question.ID, other.ID, owner.ID)

	if err := svc.UpvoteCorrection(question.ID, voter.ID); err != nil {
		t.Fatalf("UpvoteCorrection failed: %v", err)
	}

	up, _ := svc.VoteCounts(question.ID)
	if up != 2 {
		t.Errorf("expected 2 upvotes after correction, got %d", up)
	}

	var remaining int64
	db.Model(&models.Upvote{}).
		Where("question_id = ? AND creator_id = ?", question.ID, voter.ID).
		Count(&remaining)
	if remaining != 1 {
		t.Errorf("expected exactly 1 surviving upvote from the voter, got %d", remaining)
	}

	var untouched int64
	db.Model(&models.Upvote{}).
		Where("question_id = ? AND creator_id = ?", question.ID, other.ID).
		Count(&untouched)
	if untouched != 1 {
		t.Errorf("other creator's upvote should be untouched, got %d", untouched)
	}
}

func TestUpvoteCorrectionIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuestionService(db, nil, nil)

	owner := createUser(t, db, "owner")
	voter := createUser(t, db, "voter")
	question := createQuestion(t, db, owner.ID, "idempotence")

	createQuestionUpvote(t, db, question.ID, voter.ID, owner.ID)
	createQuestionUpvote(t, db, question.ID, voter.ID, owner.ID)

	for i := 0; i < 3; i++ {
		if err := svc.UpvoteCorrection(question.ID, voter.ID); err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
	}

	up, _ := svc.VoteCounts(question.ID)
	if up != 1 {
		t.Errorf("expected 1 upvote after repeated corrections, got %d", up)
	}
}

func TestUpvoteCorrectionNoVotes(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuestionService(db, nil, nil)

	owner := createUser(t, db, "owner")
	question := createQuestion(t, db, owner.ID, "nothing to heal")

	if err := svc.UpvoteCorrection(question.ID, 42); err != nil {
		t.Fatalf("expected no error for zero votes, got %v", err)
	}
}

func TestDownvoteCorrection(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuestionService(db, nil, nil)

	owner := createUser(t, db, "owner")
	voter := createUser(t, db, "voter")
	other := createUser(t, db, "other")
	question := createQuestion(t, db, owner.ID, "Why are we the best?")

	createQuestionDownvote(t, db, question.ID, voter.ID, owner.ID)
	createQuestionDownvote(t, db, question.ID, voter.ID, owner.ID)
	createQuestionDownvote(t, db, question.ID, other.ID, owner.ID)

	if err := svc.DownvoteCorrection(question.ID, voter.ID); err != nil {
		t.Fatalf("DownvoteCorrection failed: %v", err)
	}

	_, down := svc.VoteCounts(question.ID)
	if down != 2 {
		t.Errorf("expected 2 downvotes after correction, got %d", down)
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuestionService(db, nil, nil)
	user := createUser(t, db, "asker")

	_, err := svc.Create(user.ID, models.CreateQuestionRequest{Title: "no body"})

	var vErr *models.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0] != "body" {
		t.Errorf("expected [body], got %v", vErr.Fields)
	}

	var count int64
	db.Model(&models.Question{}).Count(&count)
	if count != 0 {
		t.Errorf("no question should be persisted on validation failure, found %d", count)
	}
}

type recordingNotifier struct {
	accepted []int
}

func (n *recordingNotifier) AnswerAccepted(author models.User, question models.Question) {
	n.accepted = append(n.accepted, author.ID)
}

func TestAcceptBestAnswer(t *testing.T) {
	db := newTestDB(t)
	rep := NewReputationService(db)
	notifier := &recordingNotifier{}
	svc := NewQuestionService(db, rep, notifier)

	asker := createUser(t, db, "asker")
	answerer := createUser(t, db, "answerer")
	question := createQuestion(t, db, asker.ID, "how?")
	answer := createAnswer(t, db, question.ID, answerer.ID, "like this")

	if err := svc.AcceptBestAnswer(question.ID, answer.ID, asker.ID); err != nil {
		t.Fatalf("AcceptBestAnswer failed: %v", err)
	}

	var reloaded models.Question
	db.First(&reloaded, question.ID)
	if reloaded.BestAnswerID == nil || *reloaded.BestAnswerID != answer.ID {
		t.Fatalf("best answer not recorded, got %v", reloaded.BestAnswerID)
	}

	var author models.User
	db.First(&author, answerer.ID)
	if author.Reputation != PointsAnswerAccepted {
		t.Errorf("expected reputation %d, got %d", PointsAnswerAccepted, author.Reputation)
	}

	if len(notifier.accepted) != 1 || notifier.accepted[0] != answerer.ID {
		t.Errorf("expected one notification for user %d, got %v", answerer.ID, notifier.accepted)
	}

	// Accepting the same answer again must not award again.
	if err := svc.AcceptBestAnswer(question.ID, answer.ID, asker.ID); err != nil {
		t.Fatalf("second accept failed: %v", err)
	}
	db.First(&author, answerer.ID)
	if author.Reputation != PointsAnswerAccepted {
		t.Errorf("reputation awarded twice: %d", author.Reputation)
	}
}

func TestAcceptBestAnswerGuards(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuestionService(db, nil, nil)

	asker := createUser(t, db, "asker")
	answerer := createUser(t, db, "answerer")
	stranger := createUser(t, db, "stranger")
	question := createQuestion(t, db, asker.ID, "how?")
	otherQuestion := createQuestion(t, db, answerer.ID, "unrelated")
	answer := createAnswer(t, db, question.ID, answerer.ID, "like this")
	foreign := createAnswer(t, db, otherQuestion.ID, answerer.ID, "elsewhere")

	if err := svc.AcceptBestAnswer(question.ID, answer.ID, stranger.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
	if err := svc.AcceptBestAnswer(question.ID, foreign.ID, asker.ID); !errors.Is(err, ErrBadAnswer) {
		t.Errorf("expected ErrBadAnswer, got %v", err)
	}
	if err := svc.AcceptBestAnswer(9999, answer.ID, asker.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
