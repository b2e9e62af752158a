package eco

import (
	"fmt"

	"github.com/greenlab/ecotools/internal/classify"
)

// Category labels for the three indices.
const (
	PlantThriving   = "Thriving"
	PlantModerate   = "Moderate"
	PlantStruggling = "Struggling"

	AnimalSustainable = "Sustainable"
	AnimalUncertain   = "Uncertain"
	AnimalAtRisk      = "At Risk"

	StabilityStable     = "Stable"
	StabilityVulnerable = "Vulnerable"
	StabilityCritical   = "Critical"
)

var plantMessages = map[string]string{
	PlantThriving:   "Plants are likely to thrive under these abiotic conditions.",
	PlantModerate:   "Plants will grow moderately; some stress expected.",
	PlantStruggling: "Plants will struggle; consider changes in abiotic factors or conservation measures.",
}

var animalMessages = map[string]string{
	AnimalSustainable: "Animal populations likely sustainable.",
	AnimalUncertain:   "Animal survival is uncertain; population fluctuations possible.",
	AnimalAtRisk:      "Animal survival probability is low; risk of local decline or extirpation.",
}

var stabilityMessages = map[string]string{
	StabilityStable:     "Ecosystem appears stable.",
	StabilityVulnerable: "Ecosystem is moderately stable but vulnerable to shocks.",
	StabilityCritical:   "Ecosystem stability is low; high risk of collapse with further stressors.",
}

// Category is a qualitative label plus its awareness message.
type Category struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

// Interpretation holds the qualitative read of all three indices.
type Interpretation struct {
	Plant     Category `json:"plant"`
	Animal    Category `json:"animal"`
	Stability Category `json:"stability"`
}

// Classifier maps Result indices onto qualitative categories via validated
// band tables. Build it once at startup; it is immutable afterwards.
type Classifier struct {
	plant     *classify.Table
	animal    *classify.Table
	stability *classify.Table
}

// NewClassifier builds the three interpretation band tables. A malformed
// table is a configuration defect and aborts initialization.
func NewClassifier() (*Classifier, error) {
	plant, err := classify.NewTable(0, 100, []classify.Band{
		{Lower: 70, Label: PlantThriving},
		{Lower: 40, Label: PlantModerate},
		{Lower: 0, Label: PlantStruggling},
	})
	if err != nil {
		return nil, fmt.Errorf("plant bands: %w", err)
	}

	animal, err := classify.NewTable(0, 100, []classify.Band{
		{Lower: 65, Label: AnimalSustainable},
		{Lower: 35, Label: AnimalUncertain},
		{Lower: 0, Label: AnimalAtRisk},
	})
	if err != nil {
		return nil, fmt.Errorf("animal bands: %w", err)
	}

	stability, err := classify.NewTable(0, 100, []classify.Band{
		{Lower: 65, Label: StabilityStable},
		{Lower: 40, Label: StabilityVulnerable},
		{Lower: 0, Label: StabilityCritical},
	})
	if err != nil {
		return nil, fmt.Errorf("stability bands: %w", err)
	}

	return &Classifier{plant: plant, animal: animal, stability: stability}, nil
}

// Interpret buckets each index of the result into its category.
func (c *Classifier) Interpret(res Result) (Interpretation, error) {
	plant, err := categorize(c.plant, res.PlantGrowthIndex, plantMessages)
	if err != nil {
		return Interpretation{}, fmt.Errorf("plant index: %w", err)
	}
	animal, err := categorize(c.animal, res.AnimalSurvivalProbability, animalMessages)
	if err != nil {
		return Interpretation{}, fmt.Errorf("animal probability: %w", err)
	}
	stability, err := categorize(c.stability, res.EcosystemStability, stabilityMessages)
	if err != nil {
		return Interpretation{}, fmt.Errorf("stability: %w", err)
	}

	return Interpretation{Plant: plant, Animal: animal, Stability: stability}, nil
}

func categorize(table *classify.Table, score float64, messages map[string]string) (Category, error) {
	label, err := table.Classify(score)
	if err != nil {
		return Category{}, err
	}
	return Category{Label: label, Message: messages[label]}, nil
}
