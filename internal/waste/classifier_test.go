package waste

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmbeddedClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier()
	require.NoError(t, err)
	return c
}

func TestClassifyKnownItems(t *testing.T) {
	c := newEmbeddedClassifier(t)

	cases := []struct {
		text     string
		category Category
		matched  string
	}{
		{text: "plastic bottle", category: CategoryDry, matched: "plastic"},
		{text: "banana peel", category: CategoryWet, matched: "banana"},
		{text: "used syringe", category: CategoryHazardous, matched: "syringe"},
		{text: "Old LAPTOP Charger", category: CategoryEWaste, matched: "laptop"},
		{text: "  Apple core  ", category: CategoryWet, matched: "apple"},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got := c.Classify(tc.text)
			assert.Equal(t, tc.category, got.Category)
			assert.Equal(t, tc.matched, got.Matched)
			assert.NotEmpty(t, got.Instruction)
		})
	}
}

// TestClassifyPriorityOrder pins the fixed set order: an item naming both a
// wet and a hazardous keyword resolves to wet because that set is tested
// first. This tie-break is part of the contract.
func TestClassifyPriorityOrder(t *testing.T) {
	c := newEmbeddedClassifier(t)

	got := c.Classify("banana battery")
	assert.Equal(t, CategoryWet, got.Category)
	assert.Equal(t, "banana", got.Matched)

	got = c.Classify("paper paint tin")
	assert.Equal(t, CategoryDry, got.Category)
	assert.Equal(t, "paper", got.Matched)
}

func TestClassifyUnmatched(t *testing.T) {
	c := newEmbeddedClassifier(t)

	for _, text := range []string{"mystery object", "", "   "} {
		got := c.Classify(text)
		assert.Equal(t, CategoryUnknown, got.Category, "input %q", text)
		assert.Empty(t, got.Matched)
		assert.NotEmpty(t, got.Instruction)
	}
}

func TestCategoriesInPriorityOrder(t *testing.T) {
	c := newEmbeddedClassifier(t)
	assert.Equal(t, []Category{CategoryWet, CategoryDry, CategoryHazardous, CategoryEWaste}, c.Categories())
}

func TestCategoryText(t *testing.T) {
	assert.Equal(t, "Wet Waste", CategoryWet.String())
	assert.Equal(t, "E-Waste", CategoryEWaste.String())
	assert.Equal(t, "Unknown", CategoryUnknown.String())

	b, err := CategoryHazardous.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Hazardous Waste", string(b))

	_, err = Category(42).MarshalText()
	assert.Error(t, err)
}

func TestNewClassifierFromYAMLValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{name: "not yaml", yaml: "\t"},
		{
			name: "missing set",
			yaml: `
sets:
  - {category: wet, instruction: a, keywords: [banana]}
  - {category: dry, instruction: b, keywords: [plastic]}
  - {category: hazardous, instruction: c, keywords: [battery]}
unknown: {instruction: e}
`,
		},
		{
			name: "sets out of priority order",
			yaml: `
sets:
  - {category: dry, instruction: b, keywords: [plastic]}
  - {category: wet, instruction: a, keywords: [banana]}
  - {category: hazardous, instruction: c, keywords: [battery]}
  - {category: e-waste, instruction: d, keywords: [phone]}
unknown: {instruction: e}
`,
		},
		{
			name: "empty keyword list",
			yaml: `
sets:
  - {category: wet, instruction: a, keywords: []}
  - {category: dry, instruction: b, keywords: [plastic]}
  - {category: hazardous, instruction: c, keywords: [battery]}
  - {category: e-waste, instruction: d, keywords: [phone]}
unknown: {instruction: e}
`,
		},
		{
			name: "uppercase keyword",
			yaml: `
sets:
  - {category: wet, instruction: a, keywords: [Banana]}
  - {category: dry, instruction: b, keywords: [plastic]}
  - {category: hazardous, instruction: c, keywords: [battery]}
  - {category: e-waste, instruction: d, keywords: [phone]}
unknown: {instruction: e}
`,
		},
		{
			name: "keyword repeated across sets",
			yaml: `
sets:
  - {category: wet, instruction: a, keywords: [banana]}
  - {category: dry, instruction: b, keywords: [banana]}
  - {category: hazardous, instruction: c, keywords: [battery]}
  - {category: e-waste, instruction: d, keywords: [phone]}
unknown: {instruction: e}
`,
		},
		{
			name: "missing set instruction",
			yaml: `
sets:
  - {category: wet, instruction: "", keywords: [banana]}
  - {category: dry, instruction: b, keywords: [plastic]}
  - {category: hazardous, instruction: c, keywords: [battery]}
  - {category: e-waste, instruction: d, keywords: [phone]}
unknown: {instruction: e}
`,
		},
		{
			name: "missing unknown instruction",
			yaml: `
sets:
  - {category: wet, instruction: a, keywords: [banana]}
  - {category: dry, instruction: b, keywords: [plastic]}
  - {category: hazardous, instruction: c, keywords: [battery]}
  - {category: e-waste, instruction: d, keywords: [phone]}
`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewClassifierFromYAML([]byte(tc.yaml))
			assert.ErrorIs(t, err, ErrInvalidKeywords)
		})
	}
}

func TestEmbeddedKeywordFileIsValid(t *testing.T) {
	c, err := NewClassifier()
	require.NoError(t, err)
	require.NotNil(t, c)

	// Every declared set must be reachable through at least one of its own
	// keywords.
	for _, s := range c.sets {
		got := c.Classify(s.keywords[len(s.keywords)-1])
		assert.Equal(t, s.category, got.Category)
	}
}
