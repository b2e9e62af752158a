// Package quiz serves static question banks and grades explicit, caller-owned
// quiz sessions. Banks are embedded YAML validated at startup; sessions hold
// all mutable state so nothing quiz-related lives in package globals.
package quiz

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

//go:embed banks/*.yaml
var bankFS embed.FS

// ErrInvalidBank marks a malformed question bank, a configuration defect
// callers should treat as fatal during initialization.
var ErrInvalidBank = errors.New("invalid quiz bank")

// Question is one bank entry. Answer and Explanation never serialize with the
// question; they surface only through answer outcomes.
type Question struct {
	ID          string   `json:"id" yaml:"id"`
	Prompt      string   `json:"prompt" yaml:"prompt"`
	Choices     []string `json:"choices" yaml:"choices"`
	Answer      int      `json:"-" yaml:"answer"`
	Explanation string   `json:"-" yaml:"explanation"`
}

// Bank is a named, ordered set of questions.
type Bank struct {
	Name      string     `json:"name" yaml:"name"`
	Title     string     `json:"title" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
}

func (b *Bank) validate() error {
	if b.Name == "" {
		return fmt.Errorf("%w: bank has no name", ErrInvalidBank)
	}
	if b.Title == "" {
		return fmt.Errorf("%w: bank %q has no title", ErrInvalidBank, b.Name)
	}
	if len(b.Questions) == 0 {
		return fmt.Errorf("%w: bank %q has no questions", ErrInvalidBank, b.Name)
	}

	seen := make(map[string]bool, len(b.Questions))
	for i, q := range b.Questions {
		if q.ID == "" {
			return fmt.Errorf("%w: bank %q question %d has no id", ErrInvalidBank, b.Name, i)
		}
		if seen[q.ID] {
			return fmt.Errorf("%w: bank %q repeats question id %q", ErrInvalidBank, b.Name, q.ID)
		}
		seen[q.ID] = true
		if q.Prompt == "" {
			return fmt.Errorf("%w: bank %q question %q has no prompt", ErrInvalidBank, b.Name, q.ID)
		}
		if len(q.Choices) < 2 {
			return fmt.Errorf("%w: bank %q question %q needs at least two choices", ErrInvalidBank, b.Name, q.ID)
		}
		for j, c := range q.Choices {
			if c == "" {
				return fmt.Errorf("%w: bank %q question %q choice %d is empty", ErrInvalidBank, b.Name, q.ID, j)
			}
		}
		if q.Answer < 0 || q.Answer >= len(q.Choices) {
			return fmt.Errorf("%w: bank %q question %q answer %d out of range", ErrInvalidBank, b.Name, q.ID, q.Answer)
		}
	}
	return nil
}

// BankSummary is the listing view of a bank.
type BankSummary struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Questions int    `json:"questions"`
}

// Library is an immutable set of validated banks keyed by name.
type Library struct {
	banks map[string]*Bank
	order []string
}

// NewLibrary validates the given banks and builds a library.
func NewLibrary(banks ...Bank) (*Library, error) {
	if len(banks) == 0 {
		return nil, fmt.Errorf("%w: no banks", ErrInvalidBank)
	}

	l := &Library{banks: make(map[string]*Bank, len(banks))}
	for i := range banks {
		b := banks[i]
		if err := b.validate(); err != nil {
			return nil, err
		}
		if _, dup := l.banks[b.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate bank name %q", ErrInvalidBank, b.Name)
		}
		l.banks[b.Name] = &b
		l.order = append(l.order, b.Name)
	}
	return l, nil
}

// LoadLibrary parses and validates the embedded banks. File name order fixes
// the listing order.
func LoadLibrary() (*Library, error) {
	entries, err := fs.ReadDir(bankFS, "banks")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}

	var banks []Bank
	for _, e := range entries {
		data, err := bankFS.ReadFile("banks/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
		}
		var b Bank
		if err := yaml.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidBank, e.Name(), err)
		}
		banks = append(banks, b)
	}
	return NewLibrary(banks...)
}

// Get returns the named bank. The bank is shared and must not be mutated.
func (l *Library) Get(name string) (*Bank, bool) {
	b, ok := l.banks[name]
	return b, ok
}

// List returns bank summaries in load order.
func (l *Library) List() []BankSummary {
	out := make([]BankSummary, 0, len(l.order))
	for _, name := range l.order {
		b := l.banks[name]
		out = append(out, BankSummary{Name: b.Name, Title: b.Title, Questions: len(b.Questions)})
	}
	return out
}
