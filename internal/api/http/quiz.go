package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/greenlab/ecotools/internal/common"
	"github.com/greenlab/ecotools/internal/quiz"
	"github.com/greenlab/ecotools/internal/store"
)

type createSessionRequest struct {
	Bank        string `json:"bank" validate:"required"`
	ShuffleSeed *int64 `json:"shuffleSeed"`
}

type answerRequest struct {
	QuestionID string `json:"questionId" validate:"required"`
	Choice     *int   `json:"choice" validate:"required,gte=0"`
}

func registerQuizRoutes(v1 fiber.Router, api *API) {
	v1.Get("/quiz/banks", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"banks": api.Quiz.List()})
	})

	v1.Post("/quiz/sessions", func(c *fiber.Ctx) error {
		var req createSessionRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}

		bank, ok := api.Quiz.Get(req.Bank)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no quiz bank named "+req.Bank)
		}

		sess := quiz.NewSession(bank, quiz.Options{ShuffleSeed: req.ShuffleSeed})
		entry := api.Sessions.Create(req.Bank, sess)

		return c.Status(fiber.StatusCreated).JSON(sessionView(entry))
	})

	v1.Get("/quiz/sessions/:id", func(c *fiber.Ctx) error {
		entry, err := api.Sessions.Get(c.Params("id"))
		if err != nil {
			return sessionError(err)
		}
		return c.JSON(sessionView(entry))
	})

	v1.Delete("/quiz/sessions/:id", func(c *fiber.Ctx) error {
		if err := api.Sessions.Delete(c.Params("id")); err != nil {
			return sessionError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Post("/quiz/sessions/:id/answers", func(c *fiber.Ctx) error {
		var req answerRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}

		entry, err := api.Sessions.Get(c.Params("id"))
		if err != nil {
			return sessionError(err)
		}

		outcome, err := entry.Session.Answer(req.QuestionID, *req.Choice)
		if err != nil {
			switch {
			case errors.Is(err, quiz.ErrQuestionNotFound):
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			case errors.Is(err, quiz.ErrAlreadyAnswered):
				return fiber.NewError(fiber.StatusConflict, err.Error())
			case errors.Is(err, quiz.ErrChoiceOutOfRange):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "failed to record answer")
			}
		}

		return c.JSON(outcome)
	})

	v1.Get("/quiz/sessions/:id/result", func(c *fiber.Ctx) error {
		entry, err := api.Sessions.Get(c.Params("id"))
		if err != nil {
			return sessionError(err)
		}

		res := entry.Session.Result()
		res.Percent = common.Round2(res.Percent)
		return c.JSON(fiber.Map{
			"id":     entry.ID,
			"bank":   entry.BankName,
			"result": res,
		})
	})
}

// sessionView is the full state of a stored session. Question answers and
// explanations never marshal; they surface only through answer outcomes.
func sessionView(entry *store.Entry) fiber.Map {
	res := entry.Session.Result()
	res.Percent = common.Round2(res.Percent)
	return fiber.Map{
		"id":        entry.ID,
		"bank":      entry.BankName,
		"createdAt": entry.CreatedAt,
		"expiresAt": entry.ExpiresAt,
		"questions": entry.Session.Questions(),
		"result":    res,
	}
}

func sessionError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "no session with that id")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to load session")
}
