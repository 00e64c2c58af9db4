package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"icnpm/rfp-analyzer/internal/models"
	"icnpm/rfp-analyzer/internal/repositories"
)

type ResultHandler struct {
	runRepo repositories.RunRepository
}

func NewResultHandler(runRepo repositories.RunRepository) *ResultHandler {
	return &ResultHandler{
		runRepo: runRepo,
	}
}

func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	// Parse ID from params
	idParam := c.Params("id")
	runID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid run ID format",
		})
	}

	run, err := h.runRepo.FindByID(runID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Run not found",
		})
	}

	response := models.ResultResponse{
		ID:       run.ID.String(),
		Status:   string(run.Status),
		Progress: run.Progress,
	}

	// If completed, include the normalized result
	if run.Status == models.RunCompleted && run.ResultJSON != nil {
		var result models.UnifiedResult
		if err := json.Unmarshal([]byte(*run.ResultJSON), &result); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to decode stored result",
			})
		}
		response.Result = &result
	}

	// If failed, include error message
	if run.Status == models.RunFailed && run.ErrorMessage != nil {
		response.ErrorMessage = run.ErrorMessage
	}

	return c.JSON(response)
}

// HandleListRuns handles GET /runs: recent run history, newest first.
func (h *ResultHandler) HandleListRuns(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	runs, err := h.runRepo.FindRecent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list runs",
		})
	}

	summaries := make([]models.RunSummary, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, models.RunSummary{
			ID:               run.ID.String(),
			RequirementsName: run.RequirementsName,
			ProposalName:     run.ProposalName,
			Status:           string(run.Status),
			CreatedAt:        run.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(fiber.Map{
		"runs": summaries,
	})
}
