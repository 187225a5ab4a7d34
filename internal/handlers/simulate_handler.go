package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"interview-prep-agent/internal/models"
	"interview-prep-agent/internal/services"
)

type SimulateHandler struct {
	runs   *services.RunStore
	worker services.Worker
}

func NewSimulateHandler(runs *services.RunStore, worker services.Worker) *SimulateHandler {
	return &SimulateHandler{
		runs:   runs,
		worker: worker,
	}
}

// HandleSimulate handles POST /simulate: queues a full practice run
// (questions, simulated interview, report) and returns its id immediately.
func (h *SimulateHandler) HandleSimulate(c *fiber.Ctx) error {
	var req models.StartRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.CVText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cv_text missing",
		})
	}

	run := h.runs.Create(&models.WorkflowRecord{
		CVText:     req.CVText,
		JobRole:    req.JobRole,
		JobCompany: req.JobCompany,
		JobCountry: req.JobCountry,
	})

	h.worker.EnqueueRun(run.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.SimulateResponse{
		ID:     run.ID.String(),
		Status: string(run.Status),
	})
}

// HandleGetSimulation handles GET /simulate/:id.
func (h *SimulateHandler) HandleGetSimulation(c *fiber.Ctx) error {
	runID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid run ID format",
		})
	}

	run, err := h.runs.FindByID(runID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Run not found",
		})
	}

	response := models.SimulateResultResponse{
		ID:     run.ID.String(),
		Status: string(run.Status),
	}

	if run.Status == models.StatusCompleted {
		response.Result = run.Record
	}

	if run.Status == models.StatusFailed {
		response.ErrorMessage = run.ErrorMessage
	}

	return c.JSON(response)
}
