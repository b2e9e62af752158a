// Package httpapi exposes the scoring engines over a Fiber HTTP surface.
// Request DTOs use pointer fields so omitted values are distinguishable from
// legitimate zeros, with validator tags enforcing the documented input
// domains. Scores are rounded to two decimals here and nowhere else.
package httpapi

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/greenlab/ecotools/internal/common"
	"github.com/greenlab/ecotools/internal/conditions"
	"github.com/greenlab/ecotools/internal/eco"
	"github.com/greenlab/ecotools/internal/greenscore"
	"github.com/greenlab/ecotools/internal/quiz"
	"github.com/greenlab/ecotools/internal/store"
	"github.com/greenlab/ecotools/internal/waste"
	"github.com/greenlab/ecotools/internal/water"
)

var validate = validator.New()

// API bundles the engines and stores the handlers serve. Every field must be
// non-nil; main constructs them before the app starts listening.
type API struct {
	Eco        *eco.Classifier
	Water      *water.Scorer
	Waste      *waste.Classifier
	Quiz       *quiz.Library
	Sessions   *store.SessionStore
	GreenScore *greenscore.Model
	Conditions *conditions.Service
}

// NewApp builds the Fiber application with middleware, the centralized error
// handler and all routes registered.
func NewApp(api *API) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "ecotools",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "ecotools",
		})
	})

	RegisterRoutes(app, api)
	return app
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, api *API) {
	v1 := app.Group("/api/v1")

	registerEcoRoutes(v1, api)
	registerScoreRoutes(v1, api)
	registerQuizRoutes(v1, api)
}

// bindJSON decodes and validates a request body into dst, translating both
// failure modes into 400 responses.
func bindJSON(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// roundResult rounds the three indices for presentation.
func roundResult(res eco.Result) eco.Result {
	res.PlantGrowthIndex = common.Round2(res.PlantGrowthIndex)
	res.AnimalSurvivalProbability = common.Round2(res.AnimalSurvivalProbability)
	res.EcosystemStability = common.Round2(res.EcosystemStability)
	return res
}

// roundReading rounds the numeric reading fields for presentation.
func roundReading(r eco.Reading) eco.Reading {
	r.TemperatureC = common.Round2(r.TemperatureC)
	r.CO2PPM = common.Round2(r.CO2PPM)
	r.RainfallMM = common.Round2(r.RainfallMM)
	r.HumidityPct = common.Round2(r.HumidityPct)
	r.SoilPH = common.Round2(r.SoilPH)
	return r
}
