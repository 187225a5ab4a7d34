package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"interview-prep-agent/internal/models"
	"interview-prep-agent/internal/services"
)

type StartHandler struct {
	questionStage services.Stage
	sessions      *services.SessionStore
}

func NewStartHandler(questionStage services.Stage, sessions *services.SessionStore) *StartHandler {
	return &StartHandler{
		questionStage: questionStage,
		sessions:      sessions,
	}
}

// HandleStart handles POST /start: generates the question set and opens a
// session bridging to the later /finish call.
func (h *StartHandler) HandleStart(c *fiber.Ctx) error {
	var req models.StartRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	rec := &models.WorkflowRecord{
		CVText:     req.CVText,
		JobRole:    req.JobRole,
		JobCompany: req.JobCompany,
		JobCountry: req.JobCountry,
	}

	if err := h.questionStage.Run(c.Context(), rec); err != nil {
		status := fiber.StatusInternalServerError
		if models.KindOf(err) == models.KindMissingInput {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	sessionID := h.sessions.Create(&services.SessionEntry{
		CVText:     req.CVText,
		JobRole:    req.JobRole,
		JobCompany: req.JobCompany,
		JobCountry: req.JobCountry,
		Questions:  rec.Questions,
	})

	log.Printf("✅ Session %s created\n", sessionID)

	return c.JSON(models.StartResponse{
		SessionID: sessionID,
		Questions: rec.Questions,
	})
}
