package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"icnpm/rfp-analyzer/internal/models"
)

// uploadBand is the maximum share of the combined progress scale a single
// upload may advance. Two uploads plus the reserved evaluation band make up
// the 40/40/20 split; the split is a documented heuristic, not a measured
// guarantee.
const uploadBand = 40

// ProgressFunc receives combined-scale progress values as transfer bytes are
// acknowledged.
type ProgressFunc func(progress int)

type UploaderService interface {
	Upload(ctx context.Context, file *models.CandidateFile, role models.DocumentRole, offset int, report ProgressFunc) (*models.UploadResult, error)
}

type uploaderService struct {
	baseURL string
	client  *http.Client
}

func NewUploaderService(baseURL string, timeout time.Duration) UploaderService {
	return &uploaderService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Upload implements UploaderService. It sends one multipart transfer
// carrying the file bytes, the derived title (filename without extension)
// and the role tag. Nothing is retried on failure.
func (u *uploaderService) Upload(
	ctx context.Context,
	file *models.CandidateFile,
	role models.DocumentRole,
	offset int,
	report ProgressFunc,
) (*models.UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
	}
	if err := writer.WriteField("title", TitleFromFilename(file.Name)); err != nil {
		return nil, fmt.Errorf("failed to write title field: %w", err)
	}
	if err := writer.WriteField("docType", string(role)); err != nil {
		return nil, fmt.Errorf("failed to write docType field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	total := int64(body.Len())
	reader := &progressReader{
		reader: &body,
		onRead: func(loaded int64) {
			if report == nil {
				return
			}
			pct := float64(loaded) / float64(total) * 100
			report(offset + int(math.Floor(pct*0.4)))
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/upload", reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = total

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upload failed: %s", serverDetail(resp))
	}

	var result models.UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}

	return &result, nil
}

// TitleFromFilename derives the upload title: the filename sans extension.
func TitleFromFilename(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// progressReader reports cumulative bytes consumed by the transport.
type progressReader struct {
	reader io.Reader
	loaded int64
	onRead func(loaded int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.reader.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		if p.onRead != nil {
			p.onRead(p.loaded)
		}
	}
	return n, err
}

// serverDetail extracts the best available human-readable message from an
// error response: FastAPI-style "detail", then "message", then a generic
// status marker.
func serverDetail(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil && len(body) > 0 {
		var payload struct {
			Detail  string `json:"detail"`
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil {
			if payload.Detail != "" {
				return payload.Detail
			}
			if payload.Message != "" {
				return payload.Message
			}
			if payload.Error != "" {
				return payload.Error
			}
		}
	}
	return fmt.Sprintf("server returned status %d", resp.StatusCode)
}
