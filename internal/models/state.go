package models

type ProcessingPhase string

const (
	PhaseIdle       ProcessingPhase = "idle"
	PhaseUploading  ProcessingPhase = "uploading"
	PhaseEvaluating ProcessingPhase = "evaluating"
	PhaseDone       ProcessingPhase = "done"
	PhaseFailed     ProcessingPhase = "failed"
)

// ProcessingState is the single status record for the run currently in
// flight. Progress is the combined 0-100 scale: up to 40 points per upload,
// the remaining 20 reserved for the evaluation phase.
type ProcessingState struct {
	Phase    ProcessingPhase `json:"phase"`
	Progress int             `json:"progress"`
	Message  string          `json:"message"`
	RunID    string          `json:"run_id,omitempty"`
}
