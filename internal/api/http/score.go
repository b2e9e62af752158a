package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/greenlab/ecotools/internal/common"
	"github.com/greenlab/ecotools/internal/greenscore"
	"github.com/greenlab/ecotools/internal/water"
)

type waterScoreRequest struct {
	PH                 *float64 `json:"ph" validate:"required,gte=0,lte=14"`
	DissolvedOxygenMgL *float64 `json:"dissolvedOxygenMgL" validate:"required,gte=0,lte=14"`
	TemperatureC       *float64 `json:"temperatureC" validate:"required,gte=0,lte=40"`
	NitratesMgL        *float64 `json:"nitratesMgL" validate:"required,gte=0,lte=100"`
}

type wasteClassifyRequest struct {
	Item string `json:"item" validate:"required"`
}

type greenScoreRequest struct {
	ElectricityKWh *float64 `json:"electricityKwh" validate:"required,gte=0,lte=1500"`
	WaterLiters    *float64 `json:"waterLiters" validate:"required,gte=0,lte=1500"`
	WasteKg        *float64 `json:"wasteKg" validate:"required,gte=0,lte=100"`
	TransportKm    *float64 `json:"transportKm" validate:"required,gte=0,lte=1000"`
}

func registerScoreRoutes(v1 fiber.Router, api *API) {
	v1.Post("/water/score", func(c *fiber.Ctx) error {
		var req waterScoreRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}

		sample := water.Sample{
			PH:                 *req.PH,
			DissolvedOxygenMgL: *req.DissolvedOxygenMgL,
			TemperatureC:       *req.TemperatureC,
			NitratesMgL:        *req.NitratesMgL,
		}
		assessment := api.Water.Score(sample)
		assessment.Score = common.Round2(assessment.Score)
		for i := range assessment.Factors {
			assessment.Factors[i].Contribution = common.Round2(assessment.Factors[i].Contribution)
		}

		return c.JSON(assessment)
	})

	v1.Post("/waste/classify", func(c *fiber.Ctx) error {
		var req wasteClassifyRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}

		return c.JSON(api.Waste.Classify(req.Item))
	})

	v1.Post("/greenscore/predict", func(c *fiber.Ctx) error {
		var req greenScoreRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}

		in := greenscore.Inputs{
			ElectricityKWh: *req.ElectricityKWh,
			WaterLiters:    *req.WaterLiters,
			WasteKg:        *req.WasteKg,
			TransportKm:    *req.TransportKm,
		}
		pred := api.GreenScore.Assess(in)
		pred.Score = common.Round2(pred.Score)

		return c.JSON(fiber.Map{
			"input":    in,
			"score":    pred.Score,
			"category": pred.Category,
			"model": fiber.Map{
				"weights": api.GreenScore.Weights(),
				"r2":      api.GreenScore.R2(),
				"samples": api.GreenScore.Samples(),
				"seed":    api.GreenScore.Seed(),
			},
		})
	})
}
