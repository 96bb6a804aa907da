package quiz

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) CreateUser(ctx context.Context, username, passwordHash string) (User, error) {
	now := time.Now().Unix()
	id, err := s.insertReturningID(ctx, s.db,
		`INSERT INTO users (username, password_hash, created_at) VALUES ($1,$2,$3)`,
		username, passwordHash, now)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrUsernameTaken
		}
		return User{}, err
	}
	return User{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: now}, nil
}

func (s *SQLStore) UserByUsername(ctx context.Context, username string) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username=$1`, username)
	return scanUser(row)
}

func (s *SQLStore) UserByID(ctx context.Context, id int64) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id=$1`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

// InsertQuestions writes all rows inside one transaction, so a fixture file is
// committed as a unit.
func (s *SQLStore) InsertQuestions(ctx context.Context, qs []Question) error {
	if len(qs) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for _, q := range qs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO questions (quiz_file, question_text, option_a, option_b, option_c, option_d, correct_answer)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			q.QuizFile, q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectAnswer)
		if err != nil {
			return err
		}
	}
	err = tx.Commit()
	return err
}

func (s *SQLStore) QuestionByText(ctx context.Context, text string) (Question, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, quiz_file, question_text, option_a, option_b, option_c, option_d, correct_answer
		 FROM questions WHERE question_text=$1`, text)
	return scanQuestion(row)
}

func (s *SQLStore) QuestionByID(ctx context.Context, id int64) (Question, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, quiz_file, question_text, option_a, option_b, option_c, option_d, correct_answer
		 FROM questions WHERE id=$1`, id)
	return scanQuestion(row)
}

func scanQuestion(row *sql.Row) (Question, error) {
	var q Question
	err := row.Scan(&q.ID, &q.QuizFile, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectAnswer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, ErrQuestionNotFound
		}
		return Question{}, err
	}
	return q, nil
}

func (s *SQLStore) QuestionsByQuizFile(ctx context.Context, quizFile string) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quiz_file, question_text, option_a, option_b, option_c, option_d, correct_answer
		 FROM questions WHERE quiz_file=$1 ORDER BY id`, quizFile)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Question{}
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.QuizFile, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectAnswer); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) CountQuestions(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n)
	return n, err
}

func (s *SQLStore) AppendProgress(ctx context.Context, p Progress) (Progress, error) {
	p.AnsweredAt = time.Now().Unix()
	id, err := s.insertReturningID(ctx, s.db,
		`INSERT INTO progress (user_id, question_id, user_answer, is_correct, answered_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		p.UserID, p.QuestionID, p.UserAnswer, p.IsCorrect, p.AnsweredAt)
	if err != nil {
		return Progress{}, err
	}
	p.ID = id
	return p, nil
}

func (s *SQLStore) ProgressByUser(ctx context.Context, userID int64) ([]Progress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, question_id, user_answer, is_correct, answered_at
		 FROM progress WHERE user_id=$1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Progress{}
	for rows.Next() {
		var p Progress
		if err := rows.Scan(&p.ID, &p.UserID, &p.QuestionID, &p.UserAnswer, &p.IsCorrect, &p.AnsweredAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// insertReturningID papers over the drivers' auto-id mechanisms: postgres
// needs RETURNING, sqlite exposes LastInsertId.
func (s *SQLStore) insertReturningID(ctx context.Context, ex execer, query string, args ...any) (int64, error) {
	if s.driver == "postgres" {
		var id int64
		err := ex.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id)
		return id, err
	}
	res, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}
