package quiz

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Service wires the store to the HTTP surface. Credentials are stored as
// bcrypt hashes and compared with bcrypt's constant-time check.
type Service struct {
	store      Store
	bcryptCost int
}

func NewService(store Store, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{store: store, bcryptCost: bcryptCost}
}

func (s *Service) Register(ctx context.Context, username, password string) (User, error) {
	if _, err := s.store.UserByUsername(ctx, username); err == nil {
		return User{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return User{}, err
	}
	return s.store.CreateUser(ctx, username, string(hash))
}

func (s *Service) Login(ctx context.Context, username, password string) (User, error) {
	u, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// QuizQuestions returns the questions of quiz set n (fixture quiz_n.json).
// Answer keys are not part of the Question JSON shape, so they stay private.
func (s *Service) QuizQuestions(ctx context.Context, quizNumber int) ([]Question, error) {
	quizFile := "quiz_" + strconv.Itoa(quizNumber) + ".json"
	return s.store.QuestionsByQuizFile(ctx, quizFile)
}

type AnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// SubmitAnswer grades one submission and appends a progress row. Correctness
// is computed once, here, and the stored flag is what statistics aggregate.
func (s *Service) SubmitAnswer(ctx context.Context, userID, questionID int64, answer string) (AnswerResult, error) {
	q, err := s.store.QuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			return AnswerResult{}, fmt.Errorf("question %d: %w", questionID, ErrQuestionNotFound)
		}
		return AnswerResult{}, err
	}
	correct := answer == q.CorrectAnswer
	_, err = s.store.AppendProgress(ctx, Progress{
		UserID:     userID,
		QuestionID: questionID,
		UserAnswer: answer,
		IsCorrect:  correct,
	})
	if err != nil {
		return AnswerResult{}, err
	}
	return AnswerResult{Correct: correct, CorrectAnswer: q.CorrectAnswer}, nil
}

func (s *Service) Stats(ctx context.Context, userID int64) (Stats, error) {
	return ComputeStats(ctx, s.store, userID)
}
