package quiz

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*Service, *SQLStore) {
	t.Helper()
	store := newTestStore(t)
	return NewService(store, bcrypt.MinCost), store
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "dave", "s3cret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	stored, err := store.UserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if stored.PasswordHash == "s3cret" {
		t.Fatalf("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")) != nil {
		t.Fatalf("stored hash does not verify against the password")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "erin", "pw"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(ctx, "erin", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "frank", "pw")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	u, err := svc.Login(ctx, "frank", "pw")
	if err != nil || u.ID != reg.ID {
		t.Fatalf("Login = (%+v, %v), want id %d", u, err, reg.ID)
	}

	if _, err := svc.Login(ctx, "frank", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "ghost", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSubmitAnswerRecordsProgress(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "gina", "pw")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := store.InsertQuestions(ctx, []Question{
		{QuizFile: "quiz_1.json", Text: "q", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "B"},
	}); err != nil {
		t.Fatalf("InsertQuestions: %v", err)
	}
	q, err := store.QuestionByText(ctx, "q")
	if err != nil {
		t.Fatalf("QuestionByText: %v", err)
	}

	res, err := svc.SubmitAnswer(ctx, u.ID, q.ID, "B")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !res.Correct || res.CorrectAnswer != "B" {
		t.Fatalf("unexpected result: %+v", res)
	}

	res, err = svc.SubmitAnswer(ctx, u.ID, q.ID, "C")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if res.Correct || res.CorrectAnswer != "B" {
		t.Fatalf("unexpected result for wrong answer: %+v", res)
	}

	rows, err := store.ProgressByUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("ProgressByUser: %v", err)
	}
	if len(rows) != 2 || !rows[0].IsCorrect || rows[1].IsCorrect {
		t.Fatalf("unexpected progress rows: %+v", rows)
	}
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SubmitAnswer(context.Background(), 1, 12345, "A")
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestQuizQuestionsMapsNumberToFixture(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	if err := store.InsertQuestions(ctx, []Question{
		{QuizFile: "quiz_2.json", Text: "in set two", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "A"},
	}); err != nil {
		t.Fatalf("InsertQuestions: %v", err)
	}

	got, err := svc.QuizQuestions(ctx, 2)
	if err != nil || len(got) != 1 || got[0].Text != "in set two" {
		t.Fatalf("QuizQuestions(2) = (%+v, %v)", got, err)
	}
	empty, err := svc.QuizQuestions(ctx, 5)
	if err != nil || len(empty) != 0 {
		t.Fatalf("QuizQuestions(5) = (%+v, %v), want empty", empty, err)
	}
}
