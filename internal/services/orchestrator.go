package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"icnpm/rfp-analyzer/internal/models"
	"icnpm/rfp-analyzer/internal/repositories"
)

// evaluationCheckpoint is the fixed progress value entering the evaluation
// phase: both upload bands exhausted, 20 points reserved for evaluation.
const evaluationCheckpoint = 2 * uploadBand

// Status messages surfaced to the user.
const (
	MsgUploading          = "uploading documents..."
	MsgAnalyzing          = "analyzing…"
	MsgAnalysisComplete   = "analysis complete."
	MsgConversionNotReady = "text conversion not yet complete — retry shortly"
)

var ErrRunInProgress = errors.New("an evaluation run is already in progress")

// OrchestratorService owns the single processing state and drives one run at
// a time: two strictly sequential uploads, the readiness gate, then exactly
// one evaluation call.
type OrchestratorService interface {
	CanProcess(hasRequirements, hasProposal bool) bool
	StartRun(requirements, proposal *models.CandidateFile) (uuid.UUID, error)
	State() models.ProcessingState
}

type orchestratorService struct {
	uploader   UploaderService
	evaluator  EvaluatorService
	normalizer NormalizerService
	runRepo    repositories.RunRepository

	mu           sync.Mutex
	isProcessing bool
	state        models.ProcessingState
}

func NewOrchestratorService(
	uploader UploaderService,
	evaluator EvaluatorService,
	normalizer NormalizerService,
	runRepo repositories.RunRepository,
) OrchestratorService {
	return &orchestratorService{
		uploader:   uploader,
		evaluator:  evaluator,
		normalizer: normalizer,
		runRepo:    runRepo,
		state:      models.ProcessingState{Phase: models.PhaseIdle},
	}
}

// CanProcess implements OrchestratorService: both files present and no run
// in flight.
func (o *orchestratorService) CanProcess(hasRequirements, hasProposal bool) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return hasRequirements && hasProposal && !o.isProcessing
}

// State implements OrchestratorService.
func (o *orchestratorService) State() models.ProcessingState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// StartRun implements OrchestratorService. It claims the single-flight
// guard, resets progress, persists the run record and hands the pipeline to
// a goroutine.
func (o *orchestratorService) StartRun(requirements, proposal *models.CandidateFile) (uuid.UUID, error) {
	if requirements == nil || proposal == nil {
		return uuid.Nil, errors.New("both a requirements file and a proposal file are required")
	}

	o.mu.Lock()
	if o.isProcessing {
		o.mu.Unlock()
		return uuid.Nil, ErrRunInProgress
	}
	runID := uuid.New()
	o.isProcessing = true
	o.state = models.ProcessingState{
		Phase:    models.PhaseUploading,
		Progress: 0,
		Message:  MsgUploading,
		RunID:    runID.String(),
	}
	o.mu.Unlock()

	run := &models.EvaluationRun{
		ID:               runID,
		RequirementsName: requirements.Name,
		ProposalName:     proposal.Name,
		Status:           models.RunRunning,
		Message:          MsgUploading,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := o.runRepo.Create(run); err != nil {
		o.mu.Lock()
		o.isProcessing = false
		o.state = models.ProcessingState{Phase: models.PhaseIdle}
		o.mu.Unlock()
		return uuid.Nil, fmt.Errorf("failed to create run record: %w", err)
	}

	go o.run(context.Background(), runID, requirements, proposal)

	return runID, nil
}

func (o *orchestratorService) run(ctx context.Context, runID uuid.UUID, requirements, proposal *models.CandidateFile) {
	// The guard is released on every path so the surface can never stick
	// in a perpetual busy state.
	defer func() {
		o.mu.Lock()
		o.isProcessing = false
		o.mu.Unlock()
	}()

	report := func(progress int) {
		o.setProgress(progress)
	}

	log.Printf("📤 Uploading requirements document %s\n", requirements.Name)
	rfpResult, err := o.uploader.Upload(ctx, requirements, models.RoleRFP, 0, report)
	if err != nil {
		o.fail(runID, err)
		return
	}

	// The second upload must not begin before the first completes; the
	// remote store serializes document creation by arrival order.
	log.Printf("📤 Uploading proposal document %s\n", proposal.Name)
	propResult, err := o.uploader.Upload(ctx, proposal, models.RoleProposal, uploadBand, report)
	if err != nil {
		o.fail(runID, err)
		return
	}

	// Readiness gate: both converted-text references must be present
	// before any evaluation request is issued.
	if rfpResult.TxtPath == "" || propResult.TxtPath == "" {
		o.fail(runID, errors.New(MsgConversionNotReady))
		return
	}

	o.setPhase(models.PhaseEvaluating, evaluationCheckpoint, MsgAnalyzing)
	if err := o.runRepo.UpdateProgress(runID, evaluationCheckpoint, MsgAnalyzing); err != nil {
		log.Printf("⚠️  Failed to persist run progress: %v\n", err)
	}

	log.Printf("🔄 Requesting evaluation for run %s\n", runID)
	resp, err := o.evaluator.EvaluateInstant(ctx, rfpResult.TxtPath, propResult.TxtPath)
	if err != nil {
		o.fail(runID, err)
		return
	}

	result := o.normalizer.Normalize(resp)
	payload, err := json.Marshal(result)
	if err != nil {
		o.fail(runID, fmt.Errorf("failed to encode result: %w", err))
		return
	}

	if err := o.runRepo.Complete(runID, string(payload)); err != nil {
		log.Printf("⚠️  Failed to persist run result: %v\n", err)
	}

	o.setPhase(models.PhaseDone, 100, MsgAnalysisComplete)
	log.Printf("✅ Run %s completed\n", runID)
}

// setProgress advances the combined scale; progress never decreases within
// one run.
func (o *orchestratorService) setProgress(progress int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if progress > o.state.Progress {
		o.state.Progress = progress
	}
}

func (o *orchestratorService) setPhase(phase models.ProcessingPhase, progress int, message string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state.Phase = phase
	o.state.Message = message
	if progress > o.state.Progress {
		o.state.Progress = progress
	}
}

// fail records the failure with the best available detail message; progress
// is left at its last value.
func (o *orchestratorService) fail(runID uuid.UUID, cause error) {
	log.Printf("❌ Run %s failed: %v\n", runID, cause)

	o.mu.Lock()
	o.state.Phase = models.PhaseFailed
	o.state.Message = cause.Error()
	o.mu.Unlock()

	if err := o.runRepo.Fail(runID, cause.Error()); err != nil {
		log.Printf("⚠️  Failed to persist run failure: %v\n", err)
	}
}
