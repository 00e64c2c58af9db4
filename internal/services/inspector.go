package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DocumentInfo is a best-effort summary of an accepted document, logged at
// upload time. Inspection never blocks a run.
type DocumentInfo struct {
	PageCount int
	HasText   bool
}

type InspectorService interface {
	Inspect(name string, data []byte) (*DocumentInfo, error)
}

type inspectorService struct{}

func NewInspectorService() InspectorService {
	return &inspectorService{}
}

// Inspect implements InspectorService. Only PDFs are inspected; other
// accepted formats return a nil info without error.
func (i *inspectorService) Inspect(name string, data []byte) (*DocumentInfo, error) {
	if strings.ToLower(filepath.Ext(name)) != ".pdf" {
		return nil, nil
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	info := &DocumentInfo{PageCount: reader.NumPage()}

	for pageIndex := 1; pageIndex <= info.PageCount; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if strings.TrimSpace(text) != "" {
			info.HasText = true
			break
		}
	}

	return info, nil
}
