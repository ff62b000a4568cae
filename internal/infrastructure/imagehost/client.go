// Package imagehost uploads image buffers to the external hosting service
// over its HTTP API and returns the hosted location.
package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/socialdash/dashboard-api/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// Config captures the settings for the unsigned upload endpoint.
type Config struct {
	// Endpoint is the full upload URL, e.g.
	// https://api.cloudinary.com/v1_1/<cloud>/image/upload
	Endpoint string
	// Preset names the unsigned upload preset configured on the host.
	Preset string

	HTTPClient *http.Client
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("imagehost: endpoint is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{cfg: cfg, httpClient: httpClient}, nil
}

// uploadResponse is the subset of the host's response the caller needs.
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Bytes     int64  `json:"bytes"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends data as a multipart form and returns the hosted image
// location. The context bounds the whole exchange.
func (c *Client) Upload(ctx context.Context, data []byte, opts ports.UploadOptions) (ports.UploadResult, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", "image")
	if err != nil {
		return ports.UploadResult{}, fmt.Errorf("imagehost: build form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return ports.UploadResult{}, fmt.Errorf("imagehost: build form: %w", err)
	}

	fields := map[string]string{
		"upload_preset": c.cfg.Preset,
		"folder":        opts.Folder,
		"public_id":     opts.PublicID,
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := form.WriteField(key, value); err != nil {
			return ports.UploadResult{}, fmt.Errorf("imagehost: build form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return ports.UploadResult{}, fmt.Errorf("imagehost: build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, &body)
	if err != nil {
		return ports.UploadResult{}, fmt.Errorf("imagehost: build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.UploadResult{}, fmt.Errorf("imagehost: upload: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ports.UploadResult{}, fmt.Errorf("imagehost: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil && er.Error.Message != "" {
			return ports.UploadResult{}, fmt.Errorf("imagehost: upload failed: %s", er.Error.Message)
		}
		return ports.UploadResult{}, fmt.Errorf("imagehost: upload failed with status %d", resp.StatusCode)
	}

	var ur uploadResponse
	if err := json.Unmarshal(raw, &ur); err != nil {
		return ports.UploadResult{}, fmt.Errorf("imagehost: decode response: %w", err)
	}
	if ur.SecureURL == "" {
		return ports.UploadResult{}, errors.New("imagehost: response missing secure_url")
	}

	return ports.UploadResult{
		SecureURL: ur.SecureURL,
		PublicID:  ur.PublicID,
		Bytes:     ur.Bytes,
	}, nil
}
