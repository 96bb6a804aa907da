package quiz

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	CreatedAt int64  `json:"created_at,omitempty"`

	// bcrypt hash, never serialized
	PasswordHash string `json:"-"`
}

type Question struct {
	ID       int64  `json:"id"`
	QuizFile string `json:"quiz_file"` // e.g. quiz_1.json
	Text     string `json:"question"`
	OptionA  string `json:"option_a"`
	OptionB  string `json:"option_b"`
	OptionC  string `json:"option_c"`
	OptionD  string `json:"option_d"`

	// one of A, B, C, D; withheld when serving a quiz
	CorrectAnswer string `json:"-"`
}

// Options returns the answer options keyed by their label.
func (q Question) Options() map[string]string {
	return map[string]string{"A": q.OptionA, "B": q.OptionB, "C": q.OptionC, "D": q.OptionD}
}

// Progress is one recorded answer. Rows are append-only: answering the same
// question again adds another row, and statistics aggregate over all of them.
type Progress struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	QuestionID int64  `json:"question_id"`
	UserAnswer string `json:"user_answer"`
	IsCorrect  bool   `json:"is_correct"`
	AnsweredAt int64  `json:"answered_at,omitempty"`
}

type Stats struct {
	Total      int     `json:"total_questions"`
	Correct    int     `json:"correct_answers"`
	Wrong      int     `json:"wrong_answers"`
	Percentage float64 `json:"percentage"`
}
