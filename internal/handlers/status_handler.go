package handlers

import (
	"github.com/gofiber/fiber/v2"

	"icnpm/rfp-analyzer/internal/services"
)

type StatusHandler struct {
	orchestrator services.OrchestratorService
}

func NewStatusHandler(orchestrator services.OrchestratorService) *StatusHandler {
	return &StatusHandler{
		orchestrator: orchestrator,
	}
}

// HandleGetStatus handles GET /status: the single processing state of the
// run currently in flight (or the last finished one).
func (h *StatusHandler) HandleGetStatus(c *fiber.Ctx) error {
	return c.JSON(h.orchestrator.State())
}
