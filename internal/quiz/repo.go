package quiz

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrQuestionNotFound = errors.New("question not found")
)

type Store interface {
	CreateUser(ctx context.Context, username, passwordHash string) (User, error)
	UserByUsername(ctx context.Context, username string) (User, error)
	UserByID(ctx context.Context, id int64) (User, error)

	InsertQuestions(ctx context.Context, qs []Question) error
	QuestionByText(ctx context.Context, text string) (Question, error)
	QuestionByID(ctx context.Context, id int64) (Question, error)
	QuestionsByQuizFile(ctx context.Context, quizFile string) ([]Question, error)
	CountQuestions(ctx context.Context) (int, error)

	AppendProgress(ctx context.Context, p Progress) (Progress, error)
	ProgressByUser(ctx context.Context, userID int64) ([]Progress, error)
}
