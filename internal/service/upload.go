package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// HTTPUploader posts images to an external hosting service and returns the
// public URL from its response. It implements Uploader.
type HTTPUploader struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// UploadConfig holds configuration for the HTTP uploader.
type UploadConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration // default 30s
}

// NewHTTPUploader creates a new HTTP uploader.
func NewHTTPUploader(cfg UploadConfig) *HTTPUploader {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &HTTPUploader{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// Upload sends the image bytes as a multipart form and returns the hosted
// URL. Filenames are randomized; only the extension of the original name
// survives.
func (u *HTTPUploader) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	if u.endpoint == "" {
		return "", fmt.Errorf("no upload endpoint configured")
	}

	name := uuid.NewString() + filepath.Ext(filename)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if u.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.apiKey)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("upload service returned %d: %s", resp.StatusCode, payload)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding upload response: %w", err)
	}
	if result.URL == "" {
		return "", fmt.Errorf("upload response missing url")
	}

	return result.URL, nil
}
