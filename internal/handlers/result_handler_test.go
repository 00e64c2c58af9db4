package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icnpm/rfp-analyzer/internal/models"
)

type stubRunRepo struct {
	runs map[uuid.UUID]*models.EvaluationRun
}

func (s *stubRunRepo) Create(run *models.EvaluationRun) error {
	s.runs[run.ID] = run
	return nil
}

func (s *stubRunRepo) FindByID(id uuid.UUID) (*models.EvaluationRun, error) {
	run, ok := s.runs[id]
	if !ok {
		return nil, errors.New("run not found")
	}
	return run, nil
}

func (s *stubRunRepo) FindRecent(limit int) ([]models.EvaluationRun, error) {
	var runs []models.EvaluationRun
	for _, run := range s.runs {
		runs = append(runs, *run)
		if len(runs) == limit {
			break
		}
	}
	return runs, nil
}

func (s *stubRunRepo) UpdateProgress(uuid.UUID, int, string) error { return nil }
func (s *stubRunRepo) Complete(uuid.UUID, string) error            { return nil }
func (s *stubRunRepo) Fail(uuid.UUID, string) error                { return nil }

func newResultApp(repo *stubRunRepo) *fiber.App {
	app := fiber.New()
	handler := NewResultHandler(repo)
	app.Get("/api/v1/result/:id", handler.HandleGetResult)
	app.Get("/api/v1/runs", handler.HandleListRuns)
	return app
}

func TestHandleGetResultCompleted(t *testing.T) {
	runID := uuid.New()
	resultJSON := `{"radar":[{"axis":"CP","value":8}],"decision_badge":"unknown","metrics":[{"code":"CP","score":8,"feedback":"clear"}]}`

	repo := &stubRunRepo{runs: map[uuid.UUID]*models.EvaluationRun{
		runID: {
			ID:               runID,
			RequirementsName: "rfp.pdf",
			ProposalName:     "proposal.docx",
			Status:           models.RunCompleted,
			Progress:         100,
			ResultJSON:       &resultJSON,
			CreatedAt:        time.Now(),
		},
	}}
	app := newResultApp(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/result/"+runID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp)
	assert.Equal(t, runID.String(), payload["id"])
	assert.Equal(t, "completed", payload["status"])
	assert.Equal(t, float64(100), payload["progress"])

	result, ok := payload["result"].(map[string]any)
	require.True(t, ok, "completed run must carry the normalized result")
	assert.Equal(t, "unknown", result["decision_badge"])
}

func TestHandleGetResultFailed(t *testing.T) {
	runID := uuid.New()
	errorMsg := "text conversion not yet complete — retry shortly"

	repo := &stubRunRepo{runs: map[uuid.UUID]*models.EvaluationRun{
		runID: {
			ID:           runID,
			Status:       models.RunFailed,
			Progress:     80,
			ErrorMessage: &errorMsg,
			CreatedAt:    time.Now(),
		},
	}}
	app := newResultApp(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/result/"+runID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp)
	assert.Equal(t, "failed", payload["status"])
	assert.Equal(t, errorMsg, payload["error_message"])
	_, hasResult := payload["result"]
	assert.False(t, hasResult)
}

func TestHandleGetResultNotFound(t *testing.T) {
	app := newResultApp(&stubRunRepo{runs: map[uuid.UUID]*models.EvaluationRun{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/result/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleGetResultInvalidID(t *testing.T) {
	app := newResultApp(&stubRunRepo{runs: map[uuid.UUID]*models.EvaluationRun{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/result/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleListRuns(t *testing.T) {
	runID := uuid.New()
	repo := &stubRunRepo{runs: map[uuid.UUID]*models.EvaluationRun{
		runID: {
			ID:               runID,
			RequirementsName: "rfp.pdf",
			ProposalName:     "proposal.docx",
			Status:           models.RunCompleted,
			CreatedAt:        time.Now(),
		},
	}}
	app := newResultApp(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp)
	runs, ok := payload["runs"].([]any)
	require.True(t, ok)
	require.Len(t, runs, 1)

	first := runs[0].(map[string]any)
	assert.Equal(t, runID.String(), first["id"])
	assert.Equal(t, "rfp.pdf", first["requirements_name"])
}
