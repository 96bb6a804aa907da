package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/quizdeck/quizdeck-backend/internal/quiz"

	"github.com/go-chi/chi/v5"
)

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/register {username, password}
func RegisterHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "username and password required")
			return
		}
		u, err := svc.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, quiz.ErrUsernameTaken) {
				writeError(w, http.StatusBadRequest, "username already exists")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "registration complete",
			"user_id": u.ID,
		})
	}
}

// POST /api/login {username, password}
func LoginHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		u, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, quiz.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "invalid credentials")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message":  "login ok",
			"user_id":  u.ID,
			"username": u.Username,
		})
	}
}

type quizQuestion struct {
	ID       int64             `json:"id"`
	Question string            `json:"question"`
	Options  map[string]string `json:"options"`
}

// GET /api/quiz/{quizNumber}
func GetQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := strconv.Atoi(chi.URLParam(r, "quizNumber"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid quiz number")
			return
		}
		questions, err := svc.QuizQuestions(r.Context(), n)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out := make([]quizQuestion, 0, len(questions))
		for _, q := range questions {
			out = append(out, quizQuestion{ID: q.ID, Question: q.Text, Options: q.Options()})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type answerReq struct {
	UserID     int64  `json:"user_id"`
	QuestionID int64  `json:"question_id"`
	Answer     string `json:"answer"`
}

// POST /api/answer {user_id, question_id, answer}
func SubmitAnswerHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req answerReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.UserID == 0 || req.QuestionID == 0 || req.Answer == "" {
			writeError(w, http.StatusBadRequest, "user_id, question_id and answer required")
			return
		}
		res, err := svc.SubmitAnswer(r.Context(), req.UserID, req.QuestionID, req.Answer)
		if err != nil {
			if errors.Is(err, quiz.ErrQuestionNotFound) {
				writeError(w, http.StatusNotFound, "question not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// GET /api/stats/{userID}
func GetStatsHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}
		st, err := svc.Stats(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

// Mount attaches the quiz API routes to a router.
func Mount(r chi.Router, svc *quiz.Service) {
	r.Post("/register", RegisterHandler(svc))
	r.Post("/login", LoginHandler(svc))
	r.Get("/quiz/{quizNumber}", GetQuizHandler(svc))
	r.Post("/answer", SubmitAnswerHandler(svc))
	r.Get("/stats/{userID}", GetStatsHandler(svc))
}
