// Package greenscore estimates a 0-100 household sustainability score with a
// small linear model. The model trains once at startup on seeded synthetic
// consumption data, so results are deterministic for a given seed and the
// trained model is immutable afterwards.
package greenscore

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/greenlab/ecotools/internal/classify"
	"github.com/greenlab/ecotools/internal/common"
)

// Input domains accepted by the model. Out-of-domain values are clamped
// before prediction; the HTTP layer rejects them outright.
const (
	ElectricityMin = 0.0
	ElectricityMax = 1500.0 // kWh per month

	WaterMin = 0.0
	WaterMax = 1500.0 // liters per day

	WasteMin = 0.0
	WasteMax = 100.0 // kg per week

	TransportMin = 0.0
	TransportMax = 1000.0 // km per week
)

// Training defaults.
const (
	DefaultSeed    = 42
	DefaultSamples = 120
	MinSamples     = 20
)

// Parameters of the synthetic relation the training set is drawn from.
const (
	trueIntercept   = 92.0
	trueElectricity = -0.04
	trueWater       = -0.02
	trueWaste       = -0.5
	trueTransport   = -0.03
	noiseStdDev     = 3.0
)

// Score categories.
const (
	CategoryHigh     = "HIGH"
	CategoryModerate = "MODERATE"
	CategoryPoor     = "POOR"
)

var categoryMessages = map[string]string{
	CategoryHigh:     "Strong sustainability habits. Keep them up and share what works.",
	CategoryModerate: "On the right track. Cutting the largest consumption line lifts the score fastest.",
	CategoryPoor:     "High footprint. Start with electricity or transport, the heaviest levers.",
}

// ErrTooFewSamples is returned when the configured training set is too small
// to fit five coefficients meaningfully.
var ErrTooFewSamples = errors.New("too few training samples")

// Inputs is one household's consumption profile.
type Inputs struct {
	ElectricityKWh float64 `json:"electricityKwh"`
	WaterLiters    float64 `json:"waterLiters"`
	WasteKg        float64 `json:"wasteKg"`
	TransportKm    float64 `json:"transportKm"`
}

// Clamped returns a copy of the inputs with every value forced into its
// domain.
func (in Inputs) Clamped() Inputs {
	in.ElectricityKWh = common.Clamp(in.ElectricityKWh, ElectricityMin, ElectricityMax)
	in.WaterLiters = common.Clamp(in.WaterLiters, WaterMin, WaterMax)
	in.WasteKg = common.Clamp(in.WasteKg, WasteMin, WasteMax)
	in.TransportKm = common.Clamp(in.TransportKm, TransportMin, TransportMax)
	return in
}

// TrainConfig sets the synthetic training run. A zero Samples count takes
// DefaultSamples; the seed is used as given.
type TrainConfig struct {
	Seed    int64
	Samples int
}

// DefaultConfig is the standard training configuration.
func DefaultConfig() TrainConfig {
	return TrainConfig{Seed: DefaultSeed, Samples: DefaultSamples}
}

// Weights are the fitted model coefficients.
type Weights struct {
	Intercept      float64 `json:"intercept"`
	ElectricityKWh float64 `json:"electricityKwh"`
	WaterLiters    float64 `json:"waterLiters"`
	WasteKg        float64 `json:"wasteKg"`
	TransportKm    float64 `json:"transportKm"`
}

// Category pairs a score band label with its guidance message.
type Category struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

// Prediction is a scored consumption profile.
type Prediction struct {
	Score    float64  `json:"score"`
	Category Category `json:"category"`
}

// Model is an immutable fitted scorer. Construct it with Train.
type Model struct {
	weights Weights
	r2      float64
	samples int
	seed    int64
	bands   *classify.Table
}

// Train draws a seeded synthetic training set, fits an ordinary least squares
// model by QR decomposition and records R-squared on the training rows. Training is
// deterministic: the same configuration always yields the same model.
func Train(cfg TrainConfig) (*Model, error) {
	if cfg.Samples == 0 {
		cfg.Samples = DefaultSamples
	}
	if cfg.Samples < MinSamples {
		return nil, fmt.Errorf("%w: got %d, need at least %d", ErrTooFewSamples, cfg.Samples, MinSamples)
	}

	n := cfg.Samples
	rng := rand.New(rand.NewSource(cfg.Seed))

	design := mat.NewDense(n, 5, nil)
	scores := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		kwh := ElectricityMin + rng.Float64()*(ElectricityMax-ElectricityMin)
		water := WaterMin + rng.Float64()*(WaterMax-WaterMin)
		waste := WasteMin + rng.Float64()*(WasteMax-WasteMin)
		km := TransportMin + rng.Float64()*(TransportMax-TransportMin)
		noise := rng.NormFloat64() * noiseStdDev

		// Targets stay unclamped so the fit sees the true relation; only
		// predictions are clamped onto the score scale.
		score := trueIntercept +
			trueElectricity*kwh +
			trueWater*water +
			trueWaste*waste +
			trueTransport*km +
			noise

		design.SetRow(i, []float64{1, kwh, water, waste, km})
		scores.SetVec(i, score)
	}

	var qr mat.QR
	qr.Factorize(design)
	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, scores); err != nil {
		return nil, fmt.Errorf("fitting model: %w", err)
	}

	bands, err := classify.NewTable(0, 100, []classify.Band{
		{Lower: 70, Label: CategoryHigh},
		{Lower: 40, Label: CategoryModerate},
		{Lower: 0, Label: CategoryPoor},
	})
	if err != nil {
		return nil, err
	}

	m := &Model{
		weights: Weights{
			Intercept:      beta.At(0, 0),
			ElectricityKWh: beta.At(1, 0),
			WaterLiters:    beta.At(2, 0),
			WasteKg:        beta.At(3, 0),
			TransportKm:    beta.At(4, 0),
		},
		samples: n,
		seed:    cfg.Seed,
		bands:   bands,
	}

	// R-squared over the raw linear estimates, before the score-scale clamp.
	estimates := make([]float64, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		estimates[i] = m.weights.Intercept +
			m.weights.ElectricityKWh*design.At(i, 1) +
			m.weights.WaterLiters*design.At(i, 2) +
			m.weights.WasteKg*design.At(i, 3) +
			m.weights.TransportKm*design.At(i, 4)
		values[i] = scores.AtVec(i)
	}
	m.r2 = stat.RSquaredFrom(estimates, values, nil)

	return m, nil
}

// Predict scores one consumption profile, clamped to [0, 100].
func (m *Model) Predict(in Inputs) float64 {
	in = in.Clamped()
	score := m.weights.Intercept +
		m.weights.ElectricityKWh*in.ElectricityKWh +
		m.weights.WaterLiters*in.WaterLiters +
		m.weights.WasteKg*in.WasteKg +
		m.weights.TransportKm*in.TransportKm
	return common.Clamp(score, 0, 100)
}

// Assess scores a profile and attaches its category.
func (m *Model) Assess(in Inputs) Prediction {
	score := m.Predict(in)
	// Cannot fail: the score is clamped onto a validated table's scale.
	label, _ := m.bands.Classify(score)
	return Prediction{Score: score, Category: Category{Label: label, Message: categoryMessages[label]}}
}

// Weights returns the fitted coefficients.
func (m *Model) Weights() Weights {
	return m.weights
}

// R2 is the coefficient of determination on the training rows.
func (m *Model) R2() float64 {
	return m.r2
}

// Samples is the training set size.
func (m *Model) Samples() int {
	return m.samples
}

// Seed is the training seed.
func (m *Model) Seed() int64 {
	return m.seed
}
