package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"icnpm/rfp-analyzer/internal/models"
	"icnpm/rfp-analyzer/internal/services"
)

type ProcessHandler struct {
	orchestrator services.OrchestratorService
	validator    services.ValidatorService
	inspector    services.InspectorService
}

func NewProcessHandler(
	orchestrator services.OrchestratorService,
	validator services.ValidatorService,
	inspector services.InspectorService,
) *ProcessHandler {
	return &ProcessHandler{
		orchestrator: orchestrator,
		validator:    validator,
		inspector:    inspector,
	}
}

// HandleProcess handles POST /process: both documents arrive in one
// multipart request and the run starts in the background.
func (h *ProcessHandler) HandleProcess(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	requirements, err := h.candidateFromForm(form, "requirements")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("requirements: %v", err),
		})
	}

	proposal, err := h.candidateFromForm(form, "proposal")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("proposal: %v", err),
		})
	}

	runID, err := h.orchestrator.StartRun(requirements, proposal)
	if err != nil {
		if errors.Is(err, services.ErrRunInProgress) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to start run: %v", err),
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(models.ProcessResponse{
		ID:     runID.String(),
		Status: string(models.RunRunning),
	})
}

// candidateFromForm validates one form file and buffers it for upload. The
// PDF inspection is best-effort logging only and never rejects a file.
func (h *ProcessHandler) candidateFromForm(form *multipart.Form, field string) (*models.CandidateFile, error) {
	var candidate *models.CandidateFile

	if files, exists := form.File[field]; exists && len(files) > 0 {
		header := files[0]

		src, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file: %w", err)
		}

		candidate = &models.CandidateFile{
			Name:    header.Filename,
			Size:    header.Size,
			Content: bytes.NewReader(data),
		}

		if err := h.validator.Validate(candidate); err != nil {
			return nil, err
		}

		if info, err := h.inspector.Inspect(candidate.Name, data); err != nil {
			log.Printf("⚠️  Could not inspect %s: %v\n", candidate.Name, err)
		} else if info != nil {
			log.Printf("📄 %s: %d pages (text: %t)\n", candidate.Name, info.PageCount, info.HasText)
		}

		return candidate, nil
	}

	// Run the missing-file rule through the validator so the rejection
	// reason stays consistent.
	return nil, h.validator.Validate(nil)
}
