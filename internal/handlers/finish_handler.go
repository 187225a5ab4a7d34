package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"interview-prep-agent/internal/models"
	"interview-prep-agent/internal/services"
)

type FinishHandler struct {
	critiqueStage services.Stage
	sessions      *services.SessionStore
}

func NewFinishHandler(critiqueStage services.Stage, sessions *services.SessionStore) *FinishHandler {
	return &FinishHandler{
		critiqueStage: critiqueStage,
		sessions:      sessions,
	}
}

// HandleFinish handles POST /finish: consumes the session exactly once and
// grades the submitted transcript into the final report.
func (h *FinishHandler) HandleFinish(c *fiber.Ctx) error {
	var req models.FinishRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.SessionID == "" || len(req.Transcript) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing session_id or transcript",
		})
	}

	session, err := h.sessions.Take(req.SessionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found or expired",
		})
	}

	rec := &models.WorkflowRecord{
		CVText:              session.CVText,
		JobRole:             session.JobRole,
		JobCompany:          session.JobCompany,
		JobCountry:          session.JobCountry,
		Questions:           session.Questions,
		InterviewTranscript: req.Transcript,
	}

	if err := h.critiqueStage.Run(c.Context(), rec); err != nil {
		status := fiber.StatusInternalServerError
		if models.KindOf(err) == models.KindMissingInput {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	log.Printf("✅ Session %s finished\n", req.SessionID)

	return c.JSON(models.FinishResponse{
		FinalReview: rec.FinalReview,
	})
}
