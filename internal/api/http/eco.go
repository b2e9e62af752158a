package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/greenlab/ecotools/internal/common"
	"github.com/greenlab/ecotools/internal/conditions"
	"github.com/greenlab/ecotools/internal/eco"
	"github.com/greenlab/ecotools/internal/report"
)

// ecoReadingRequest carries one set of simulator inputs.
type ecoReadingRequest struct {
	TemperatureC *float64 `json:"temperatureC" validate:"required,gte=-10,lte=50"`
	CO2PPM       *float64 `json:"co2Ppm" validate:"required,gte=250,lte=1000"`
	RainfallMM   *float64 `json:"rainfallMm" validate:"required,gte=0,lte=1000"`
	HumidityPct  *float64 `json:"humidityPercent" validate:"required,gte=0,lte=100"`
	SoilPH       *float64 `json:"soilPh" validate:"required,gte=3.5,lte=9"`
	Disturbance  string   `json:"disturbance" validate:"required"`
}

func (req ecoReadingRequest) toReading() (eco.Reading, error) {
	d, err := eco.ParseDisturbance(req.Disturbance)
	if err != nil {
		return eco.Reading{}, err
	}
	return eco.Reading{
		TemperatureC: *req.TemperatureC,
		CO2PPM:       *req.CO2PPM,
		RainfallMM:   *req.RainfallMM,
		HumidityPct:  *req.HumidityPct,
		SoilPH:       *req.SoilPH,
		Disturbance:  d,
	}, nil
}

func bindReading(c *fiber.Ctx) (eco.Reading, error) {
	var req ecoReadingRequest
	if err := bindJSON(c, &req); err != nil {
		return eco.Reading{}, err
	}
	reading, err := req.toReading()
	if err != nil {
		return eco.Reading{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return reading, nil
}

type sensitivityRequest struct {
	Reading   ecoReadingRequest `json:"reading"`
	Parameter string            `json:"parameter" validate:"required"`
	Points    int               `json:"points" validate:"omitempty,gte=2,lte=500"`
}

func registerEcoRoutes(v1 fiber.Router, api *API) {
	v1.Post("/eco/simulate", func(c *fiber.Ctx) error {
		reading, err := bindReading(c)
		if err != nil {
			return err
		}

		res := eco.Evaluate(reading)
		interp, err := api.Eco.Interpret(res)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to interpret indices")
		}

		return c.JSON(fiber.Map{
			"input":          reading,
			"result":         roundResult(res),
			"interpretation": interp,
		})
	})

	v1.Post("/eco/sensitivity", func(c *fiber.Ctx) error {
		var req sensitivityRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}

		reading, err := req.Reading.toReading()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		param, err := eco.ParseParameter(req.Parameter)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		points, err := eco.Sweep(reading, param, req.Points)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		for i := range points {
			points[i].Value = common.Round2(points[i].Value)
			points[i].PlantGrowthIndex = common.Round2(points[i].PlantGrowthIndex)
		}

		return c.JSON(fiber.Map{
			"parameter": param.String(),
			"points":    points,
		})
	})

	v1.Post("/eco/report", func(c *fiber.Ctx) error {
		reading, err := bindReading(c)
		if err != nil {
			return err
		}

		res := eco.Evaluate(reading)
		interp, err := api.Eco.Interpret(res)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to interpret indices")
		}

		doc, err := report.Render(report.Params{
			GeneratedAt:    time.Now().UTC(),
			Reading:        reading,
			Result:         res,
			Interpretation: interp,
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render report")
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(doc)
	})

	v1.Get("/eco/conditions", func(c *fiber.Ctx) error {
		loc, err := parseLocationQuery(c)
		if err != nil {
			return err
		}

		prefill, err := api.Conditions.Prefill(c.UserContext(), loc)
		if err != nil {
			switch {
			case errors.Is(err, conditions.ErrNoProviders):
				return fiber.NewError(fiber.StatusServiceUnavailable, "no weather providers configured")
			case errors.Is(err, conditions.ErrNoObservations):
				return fiber.NewError(fiber.StatusBadGateway, "all weather providers failed")
			default:
				return fiber.NewError(fiber.StatusBadGateway, "failed to fetch current conditions")
			}
		}

		prefill.Reading = roundReading(prefill.Reading)
		return c.JSON(prefill)
	})
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	City    string `validate:"required"`
	Country string
	Lat     *float64 `validate:"omitempty,gte=-90,lte=90"`
	Lon     *float64 `validate:"omitempty,gte=-180,lte=180"`
}

func parseLocationQuery(c *fiber.Ctx) (conditions.Location, error) {
	var q locationQuery

	q.City = c.Query("city")
	q.Country = c.Query("country")

	if raw := c.Query("lat"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return conditions.Location{}, fiber.NewError(fiber.StatusBadRequest, "invalid lat value")
		}
		q.Lat = &v
	}
	if raw := c.Query("lon"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return conditions.Location{}, fiber.NewError(fiber.StatusBadRequest, "invalid lon value")
		}
		q.Lon = &v
	}
	if (q.Lat == nil) != (q.Lon == nil) {
		return conditions.Location{}, fiber.NewError(fiber.StatusBadRequest, "lat and lon must be provided together")
	}

	if err := validate.Struct(q); err != nil {
		return conditions.Location{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return conditions.Location{
		City:    q.City,
		Country: q.Country,
		Lat:     q.Lat,
		Lon:     q.Lon,
	}, nil
}
