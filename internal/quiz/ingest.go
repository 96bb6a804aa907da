package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// fixtureDoc is the shape of a bundled quiz fixture file.
type fixtureDoc struct {
	Results []fixtureEntry `json:"results"`
}

type fixtureEntry struct {
	Prompt struct {
		Question string   `json:"question"`
		Answers  []string `json:"answers"`
	} `json:"prompt"`
	CorrectResponse []string `json:"correct_response"`
}

// Ingester loads fixture files into the question store. It runs once at
// startup, before the HTTP listener accepts traffic, and only against an
// empty store: a populated store makes Run a no-op even if fixtures changed.
type Ingester struct {
	store Store
	paths []string
}

func NewIngester(store Store, paths []string) *Ingester {
	return &Ingester{store: store, paths: paths}
}

// Run ingests all fixture paths in order and returns the number of question
// rows inserted. Missing files and malformed entries are skipped, never fatal.
func (ing *Ingester) Run(ctx context.Context) (int, error) {
	n, err := ing.store.CountQuestions(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("ingest: store already holds %d questions, skipping", n)
		return 0, nil
	}

	total := 0
	// texts already inserted this run; QuestionByText only sees committed files
	seen := map[string]bool{}
	for _, path := range ing.paths {
		inserted, err := ing.ingestFile(ctx, path, seen)
		if err != nil {
			return total, err
		}
		total += inserted
	}
	return total, nil
}

// ingestFile parses one fixture and inserts its new questions in a single
// transaction, so a crash never leaves a half-written file boundary.
func (ing *Ingester) ingestFile(ctx context.Context, path string, seen map[string]bool) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil // fixtures are optional
		}
		return 0, err
	}

	var doc fixtureDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return 0, err
	}

	quizFile := filepath.Base(path)
	batch := []Question{}
	for _, entry := range doc.Results {
		q, ok := buildQuestion(quizFile, entry)
		if !ok {
			continue
		}
		if seen[q.Text] {
			continue
		}
		if _, err := ing.store.QuestionByText(ctx, q.Text); err == nil {
			continue
		} else if !errors.Is(err, ErrQuestionNotFound) {
			return 0, err
		}
		seen[q.Text] = true
		batch = append(batch, q)
	}

	if err := ing.store.InsertQuestions(ctx, batch); err != nil {
		return 0, err
	}
	log.Printf("ingest: %s: %d questions", quizFile, len(batch))
	return len(batch), nil
}

// buildQuestion normalizes one fixture entry. Entries with fewer than four
// answers or without a correct response are dropped whole.
func buildQuestion(quizFile string, entry fixtureEntry) (Question, bool) {
	if len(entry.Prompt.Answers) < 4 {
		return Question{}, false
	}
	if len(entry.CorrectResponse) == 0 || entry.CorrectResponse[0] == "" {
		return Question{}, false
	}
	return Question{
		QuizFile:      quizFile,
		Text:          NormalizeQuestionText(entry.Prompt.Question),
		OptionA:       normalizeOption(entry.Prompt.Answers[0]),
		OptionB:       normalizeOption(entry.Prompt.Answers[1]),
		OptionC:       normalizeOption(entry.Prompt.Answers[2]),
		OptionD:       normalizeOption(entry.Prompt.Answers[3]),
		CorrectAnswer: strings.ToUpper(entry.CorrectResponse[0]),
	}, true
}

// NormalizeQuestionText strips every <p>/</p> marker, collapses newlines to
// single spaces and trims the result. It is the de-duplication key for
// question rows.
func NormalizeQuestionText(s string) string {
	s = stripParagraphTags(s)
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

func normalizeOption(s string) string {
	return strings.TrimSpace(stripParagraphTags(s))
}

func stripParagraphTags(s string) string {
	s = strings.ReplaceAll(s, "<p>", "")
	return strings.ReplaceAll(s, "</p>", "")
}
