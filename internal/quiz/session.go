package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/greenlab/ecotools/internal/classify"
)

// Grades on the percent scale.
const (
	GradeExcellent    = "Excellent"
	GradeGood         = "Good"
	GradeKeepLearning = "Keep Learning"
)

var gradeBands = classify.MustTable(0, 100, []classify.Band{
	{Lower: 80, Label: GradeExcellent},
	{Lower: 50, Label: GradeGood},
	{Lower: 0, Label: GradeKeepLearning},
})

var (
	// ErrQuestionNotFound is returned for a question id the session's bank
	// does not contain.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrAlreadyAnswered is returned on a second answer to the same question.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrChoiceOutOfRange is returned when the chosen index does not name one
	// of the question's choices.
	ErrChoiceOutOfRange = errors.New("choice out of range")
)

// Options configures a new session.
type Options struct {
	// ShuffleSeed randomizes the presentation order; a fixed seed yields the
	// same order every time. Nil keeps the bank's declared order.
	ShuffleSeed *int64
}

// Session is the mutable state of one quiz attempt. Each question takes at
// most one answer. Sessions are safe for concurrent use.
type Session struct {
	bank  *Bank
	order []int
	index map[string]int

	mu      sync.Mutex
	answers map[string]int
	correct int
}

// NewSession starts a session over a validated bank.
func NewSession(bank *Bank, opts Options) *Session {
	s := &Session{
		bank:    bank,
		order:   make([]int, len(bank.Questions)),
		index:   make(map[string]int, len(bank.Questions)),
		answers: make(map[string]int, len(bank.Questions)),
	}
	for i := range s.order {
		s.order[i] = i
		s.index[bank.Questions[i].ID] = i
	}
	if opts.ShuffleSeed != nil {
		rng := rand.New(rand.NewSource(*opts.ShuffleSeed))
		rng.Shuffle(len(s.order), func(i, j int) {
			s.order[i], s.order[j] = s.order[j], s.order[i]
		})
	}
	return s
}

// Bank returns the session's bank. Shared, read-only.
func (s *Session) Bank() *Bank {
	return s.bank
}

// Questions returns the session's questions in presentation order.
func (s *Session) Questions() []Question {
	out := make([]Question, 0, len(s.order))
	for _, i := range s.order {
		out = append(out, s.bank.Questions[i])
	}
	return out
}

// AnswerOutcome is the feedback for one submitted answer.
type AnswerOutcome struct {
	QuestionID  string `json:"questionId"`
	Correct     bool   `json:"correct"`
	Answer      int    `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
}

// Answer records the choice for a question. Repeat answers, unknown question
// ids and out-of-range choices are rejected.
func (s *Session) Answer(questionID string, choice int) (AnswerOutcome, error) {
	i, ok := s.index[questionID]
	if !ok {
		return AnswerOutcome{}, fmt.Errorf("%w: %q", ErrQuestionNotFound, questionID)
	}
	q := s.bank.Questions[i]
	if choice < 0 || choice >= len(q.Choices) {
		return AnswerOutcome{}, fmt.Errorf("%w: %d for question %q", ErrChoiceOutOfRange, choice, questionID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, done := s.answers[questionID]; done {
		return AnswerOutcome{}, fmt.Errorf("%w: %q", ErrAlreadyAnswered, questionID)
	}
	s.answers[questionID] = choice

	correct := choice == q.Answer
	if correct {
		s.correct++
	}
	return AnswerOutcome{
		QuestionID:  questionID,
		Correct:     correct,
		Answer:      q.Answer,
		Explanation: q.Explanation,
	}, nil
}

// Result is the graded state of a session. Percent always scores against the
// full bank, so unanswered questions count as wrong.
type Result struct {
	Total    int     `json:"total"`
	Answered int     `json:"answered"`
	Correct  int     `json:"correct"`
	Percent  float64 `json:"percent"`
	Grade    string  `json:"grade"`
	Complete bool    `json:"complete"`
}

// Result grades the session as it stands.
func (s *Session) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.bank.Questions)
	percent := float64(s.correct) / float64(total) * 100
	// Cannot fail: percent lies on the validated grade scale.
	grade, _ := gradeBands.Classify(percent)

	return Result{
		Total:    total,
		Answered: len(s.answers),
		Correct:  s.correct,
		Percent:  percent,
		Grade:    grade,
		Complete: len(s.answers) == total,
	}
}
