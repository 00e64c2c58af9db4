package models

import (
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// EvaluationRun is the persisted history record for one processing run. The
// uploaded files themselves are never stored locally; only their names and
// the normalized result survive the run.
type EvaluationRun struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RequirementsName string    `gorm:"type:text" json:"requirements_name"`
	ProposalName     string    `gorm:"type:text" json:"proposal_name"`
	Status           RunStatus `gorm:"not null;default:'running'" json:"status"`
	Progress         int       `gorm:"not null;default:0" json:"progress"`
	Message          string    `gorm:"type:text" json:"message"`
	ResultJSON       *string   `gorm:"type:text" json:"-"`
	ErrorMessage     *string   `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (EvaluationRun) TableName() string {
	return "evaluation_runs"
}
