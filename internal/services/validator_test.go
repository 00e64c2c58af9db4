package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"icnpm/rfp-analyzer/internal/models"
)

func TestValidatorAcceptsSupportedDocuments(t *testing.T) {
	validator := NewValidatorService(MaxUploadSize)

	for _, name := range []string{"rfp.pdf", "proposal.docx", "REPORT.PDF", "Draft.DocX"} {
		err := validator.Validate(&models.CandidateFile{Name: name, Size: 1024})
		assert.NoError(t, err, "expected %s to be accepted", name)
	}
}

func TestValidatorRejectsMissingFile(t *testing.T) {
	validator := NewValidatorService(MaxUploadSize)

	assert.ErrorIs(t, validator.Validate(nil), ErrNoFile)
	assert.ErrorIs(t, validator.Validate(&models.CandidateFile{}), ErrNoFile)
}

func TestValidatorRejectsUnsupportedFormats(t *testing.T) {
	validator := NewValidatorService(MaxUploadSize)

	tests := []string{"notes.txt", "slides.pptx", "archive.zip", "proposal.doc", "noextension"}
	for _, name := range tests {
		err := validator.Validate(&models.CandidateFile{Name: name, Size: 1024})
		assert.ErrorIs(t, err, ErrUnsupportedFormat, "expected %s to be rejected", name)
	}
}

func TestValidatorRejectsOversizedFilesRegardlessOfExtension(t *testing.T) {
	validator := NewValidatorService(MaxUploadSize)

	for _, name := range []string{"big.pdf", "big.docx"} {
		err := validator.Validate(&models.CandidateFile{Name: name, Size: MaxUploadSize + 1})
		assert.ErrorIs(t, err, ErrFileTooLarge, "expected %s to be rejected for size", name)
	}

	// Exactly at the limit is still accepted
	err := validator.Validate(&models.CandidateFile{Name: "edge.pdf", Size: MaxUploadSize})
	assert.NoError(t, err)
}

func TestValidatorFirstFailingRuleWins(t *testing.T) {
	validator := NewValidatorService(MaxUploadSize)

	// Oversized AND unsupported: the format rule fires first
	err := validator.Validate(&models.CandidateFile{Name: "huge.txt", Size: MaxUploadSize * 2})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
