package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"icnpm/rfp-analyzer/internal/models"
)

// EvaluatorService is the client for the remote evaluation backend. The
// evaluation itself happens server-side; this service only carries the
// converted-text references over.
type EvaluatorService interface {
	EvaluateInstant(ctx context.Context, rfpTxtPath, proposalTxtPath string) (*models.EvaluationResponse, error)
	Probe(ctx context.Context) error
}

type evaluatorService struct {
	baseURL   string
	guidePath string
	client    *http.Client
}

func NewEvaluatorService(baseURL, guidePath string, timeout time.Duration) EvaluatorService {
	return &evaluatorService{
		baseURL:   strings.TrimRight(baseURL, "/"),
		guidePath: guidePath,
		client:    &http.Client{Timeout: timeout},
	}
}

type instantEvalRequest struct {
	ProposalPath string `json:"proposalPath"`
	RFPPath      string `json:"rfpPath"`
	GuidePath    string `json:"guidePath"`
}

// EvaluateInstant implements EvaluatorService. Exactly one request per run,
// carrying both converted-text references plus the shared guideline document.
func (e *evaluatorService) EvaluateInstant(ctx context.Context, rfpTxtPath, proposalTxtPath string) (*models.EvaluationResponse, error) {
	payload, err := json.Marshal(instantEvalRequest{
		ProposalPath: proposalTxtPath,
		RFPPath:      rfpTxtPath,
		GuidePath:    e.guidePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode evaluation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/evaluate/instant", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("evaluation failed: %s", serverDetail(resp))
	}

	var result models.EvaluationResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode evaluation response: %w", err)
	}

	return &result, nil
}

// Probe implements EvaluatorService. Fire-and-forget liveness check against
// the backend root; callers only log the outcome.
func (e *evaluatorService) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create probe request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("backend unhealthy: status %d", resp.StatusCode)
	}

	return nil
}
