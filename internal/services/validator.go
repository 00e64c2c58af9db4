package services

import (
	"errors"
	"path/filepath"
	"strings"

	"icnpm/rfp-analyzer/internal/models"
)

// MaxUploadSize is the client-visible upload limit: 20 MiB.
const MaxUploadSize = 20 * 1024 * 1024

// Rejection reasons shown to the user. First failing rule wins; reasons are
// never accumulated.
var (
	ErrNoFile            = errors.New("no file selected")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrFileTooLarge      = errors.New("exceeds size limit")
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
}

type ValidatorService interface {
	Validate(file *models.CandidateFile) error
}

type validatorService struct {
	maxFileSize int64
}

func NewValidatorService(maxFileSize int64) ValidatorService {
	if maxFileSize <= 0 {
		maxFileSize = MaxUploadSize
	}
	return &validatorService{maxFileSize: maxFileSize}
}

// Validate implements ValidatorService. Rules apply in order: missing file,
// unsupported extension, oversized file.
func (v *validatorService) Validate(file *models.CandidateFile) error {
	if file == nil || file.Name == "" {
		return ErrNoFile
	}

	ext := strings.ToLower(filepath.Ext(file.Name))
	if !allowedExtensions[ext] {
		return ErrUnsupportedFormat
	}

	if file.Size > v.maxFileSize {
		return ErrFileTooLarge
	}

	return nil
}
