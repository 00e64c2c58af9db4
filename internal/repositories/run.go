package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"icnpm/rfp-analyzer/internal/models"
)

type RunRepository interface {
	Create(run *models.EvaluationRun) error
	FindByID(id uuid.UUID) (*models.EvaluationRun, error)
	FindRecent(limit int) ([]models.EvaluationRun, error)
	UpdateProgress(id uuid.UUID, progress int, message string) error
	Complete(id uuid.UUID, resultJSON string) error
	Fail(id uuid.UUID, errorMsg string) error
}

type runRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) Create(run *models.EvaluationRun) error {
	if err := r.db.Create(run).Error; err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

func (r *runRepository) FindByID(id uuid.UUID) (*models.EvaluationRun, error) {
	var run models.EvaluationRun
	if err := r.db.Where("id = ?", id).First(&run).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("run not found")
		}
		return nil, fmt.Errorf("failed to find run: %w", err)
	}
	return &run, nil
}

func (r *runRepository) FindRecent(limit int) ([]models.EvaluationRun, error) {
	var runs []models.EvaluationRun
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find recent runs: %w", err)
	}

	return runs, nil
}

func (r *runRepository) UpdateProgress(id uuid.UUID, progress int, message string) error {
	result := r.db.Model(&models.EvaluationRun{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"progress":   progress,
			"message":    message,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update progress: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("run not found")
	}

	return nil
}

func (r *runRepository) Complete(id uuid.UUID, resultJSON string) error {
	result := r.db.Model(&models.EvaluationRun{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      models.RunCompleted,
			"progress":    100,
			"message":     "analysis complete.",
			"result_json": resultJSON,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to complete run: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("run not found")
	}

	return nil
}

func (r *runRepository) Fail(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.EvaluationRun{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.RunFailed,
			"message":       errorMsg,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark run failed: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("run not found")
	}

	return nil
}
