// Package waste sorts free-text item descriptions into disposal categories by
// case-insensitive substring matching against ordered keyword sets. Matching
// is deliberately simple: sets are tested in a fixed priority order and the
// first containing keyword wins, so an item naming two categories resolves to
// the earlier set, not the more specific match.
package waste

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var keywordData []byte

// ErrInvalidKeywords marks a malformed keyword file, a configuration defect
// callers should treat as fatal during initialization.
var ErrInvalidKeywords = errors.New("invalid keyword sets")

// Category is a closed set of disposal categories. The zero value is Unknown.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryWet
	CategoryDry
	CategoryHazardous
	CategoryEWaste
)

var categoryNames = [...]string{"Unknown", "Wet Waste", "Dry Waste", "Hazardous Waste", "E-Waste"}

// categoryKeys are the identifiers used in the keyword file, indexed like
// categoryNames.
var categoryKeys = [...]string{"unknown", "wet", "dry", "hazardous", "e-waste"}

// matchPriority is the fixed order in which keyword sets are tested.
var matchPriority = [...]Category{CategoryWet, CategoryDry, CategoryHazardous, CategoryEWaste}

func (c Category) valid() bool {
	return c >= CategoryUnknown && int(c) < len(categoryNames)
}

// String returns the category's display name.
func (c Category) String() string {
	if !c.valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Key returns the category's identifier as used in the keyword file.
func (c Category) Key() string {
	if !c.valid() {
		return ""
	}
	return categoryKeys[c]
}

// MarshalText renders the display name, so categories read naturally in JSON.
func (c Category) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("unknown waste category %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

// Classification is the outcome for one item. Matched is the keyword that
// decided the category, empty when nothing matched.
type Classification struct {
	Category    Category `json:"category"`
	Instruction string   `json:"instruction"`
	Matched     string   `json:"matched,omitempty"`
}

type keywordSet struct {
	category    Category
	instruction string
	keywords    []string
}

// Classifier matches item descriptions against validated keyword sets.
type Classifier struct {
	sets               []keywordSet
	unknownInstruction string
}

type keywordFile struct {
	Sets []struct {
		Category    string   `yaml:"category"`
		Instruction string   `yaml:"instruction"`
		Keywords    []string `yaml:"keywords"`
	} `yaml:"sets"`
	Unknown struct {
		Instruction string `yaml:"instruction"`
	} `yaml:"unknown"`
}

// NewClassifier builds a classifier from the embedded keyword file.
func NewClassifier() (*Classifier, error) {
	return NewClassifierFromYAML(keywordData)
}

// NewClassifierFromYAML parses and validates a keyword file. The file must
// declare the four sets in match priority order with lowercase keywords,
// no keyword repeated across sets, and instructions for every category
// including unknown.
func NewClassifierFromYAML(data []byte) (*Classifier, error) {
	var f keywordFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeywords, err)
	}

	if len(f.Sets) != len(matchPriority) {
		return nil, fmt.Errorf("%w: want %d sets, got %d", ErrInvalidKeywords, len(matchPriority), len(f.Sets))
	}

	c := &Classifier{sets: make([]keywordSet, 0, len(f.Sets))}
	owner := make(map[string]string)
	for i, s := range f.Sets {
		want := matchPriority[i]
		if s.Category != want.Key() {
			return nil, fmt.Errorf("%w: set %d must be %q, got %q", ErrInvalidKeywords, i, want.Key(), s.Category)
		}
		if s.Instruction == "" {
			return nil, fmt.Errorf("%w: set %q has no instruction", ErrInvalidKeywords, s.Category)
		}
		if len(s.Keywords) == 0 {
			return nil, fmt.Errorf("%w: set %q has no keywords", ErrInvalidKeywords, s.Category)
		}
		for _, kw := range s.Keywords {
			if kw == "" || kw != strings.ToLower(strings.TrimSpace(kw)) {
				return nil, fmt.Errorf("%w: set %q keyword %q must be lowercase with no surrounding space", ErrInvalidKeywords, s.Category, kw)
			}
			if prev, dup := owner[kw]; dup {
				return nil, fmt.Errorf("%w: keyword %q appears in both %q and %q", ErrInvalidKeywords, kw, prev, s.Category)
			}
			owner[kw] = s.Category
		}
		c.sets = append(c.sets, keywordSet{category: want, instruction: s.Instruction, keywords: s.Keywords})
	}

	if f.Unknown.Instruction == "" {
		return nil, fmt.Errorf("%w: no instruction for unmatched items", ErrInvalidKeywords)
	}
	c.unknownInstruction = f.Unknown.Instruction
	return c, nil
}

// Classify matches the item description against the keyword sets in priority
// order. Unmatched input is a normal outcome, not an error: it yields the
// Unknown category with its own instruction.
func (c *Classifier) Classify(text string) Classification {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle != "" {
		for _, s := range c.sets {
			for _, kw := range s.keywords {
				if strings.Contains(needle, kw) {
					return Classification{Category: s.category, Instruction: s.instruction, Matched: kw}
				}
			}
		}
	}
	return Classification{Category: CategoryUnknown, Instruction: c.unknownInstruction}
}

// Categories returns the four matchable categories in priority order.
func (c *Classifier) Categories() []Category {
	out := make([]Category, len(matchPriority))
	copy(out, matchPriority[:])
	return out
}
