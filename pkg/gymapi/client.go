package gymapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/milicode/gym-panel/internal/app/model"
	"github.com/milicode/gym-panel/pkg/logger"
)

// MediaField is the multipart field the API reads uploaded images from.
const MediaField = "images"

// Client represents a branch API client
type Client struct {
	config     Config
	httpClient *http.Client
}

// MediaFile is one image attached to a media upload.
type MediaFile struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// NewClient creates a new branch API client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		// per-call deadlines come from the request context
		httpClient: &http.Client{},
	}, nil
}

func (c *Client) GetConfig() Config {
	return c.config
}

// CreateBranch submits a complete registration. Any 2xx is an acknowledgement;
// the response body is not used.
func (c *Client) CreateBranch(ctx context.Context, reg model.Registration) error {
	body, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("failed to marshal registration: %w", err)
	}

	_, err = c.do(ctx, c.config.WriteTimeout, http.MethodPost, "/api/Gym", "application/json", bytes.NewReader(body))
	return err
}

func (c *Client) ListBranches(ctx context.Context) ([]model.Branch, error) {
	resp, err := c.do(ctx, c.config.ReadTimeout, http.MethodGet, "/api/Branch", "", nil)
	if err != nil {
		return nil, err
	}

	var branches []model.Branch
	if err := json.Unmarshal(resp, &branches); err != nil {
		return nil, fmt.Errorf("failed to unmarshal branch list: %w", err)
	}
	return branches, nil
}

func (c *Client) GetBranch(ctx context.Context, id string) (*model.Branch, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty branch id", ErrInvalidRequest)
	}

	resp, err := c.do(ctx, c.config.ReadTimeout, http.MethodGet, "/api/Branch/"+url.PathEscape(id), "", nil)
	if err != nil {
		return nil, err
	}

	var branch model.Branch
	if err := json.Unmarshal(resp, &branch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal branch: %w", err)
	}
	return &branch, nil
}

// UpdateFacilities replaces the nine facility flags of a branch.
func (c *Client) UpdateFacilities(ctx context.Context, id string, facilities model.Facilities) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty branch id", ErrInvalidRequest)
	}

	body, err := json.Marshal(model.FacilitiesUpdate{BranchID: id, Facilities: facilities})
	if err != nil {
		return fmt.Errorf("failed to marshal facilities: %w", err)
	}

	path := "/api/Branch/" + url.PathEscape(id) + "/facilities"
	_, err = c.do(ctx, c.config.WriteTimeout, http.MethodPut, path, "application/json", bytes.NewReader(body))
	return err
}

// UploadMedia sends files as one multipart request, each under MediaField.
func (c *Client) UploadMedia(ctx context.Context, id string, files []MediaFile) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty branch id", ErrInvalidRequest)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no media files", ErrInvalidRequest)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, MediaField, f.Filename))
		contentType := f.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("failed to create multipart part: %w", err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return fmt.Errorf("failed to copy %s: %w", f.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close multipart body: %w", err)
	}

	path := "/api/Branch/" + url.PathEscape(id) + "/media"
	_, err := c.do(ctx, c.config.WriteTimeout, http.MethodPut, path, w.FormDataContentType(), &buf)
	return err
}

// do performs one request. A transport failure becomes ErrNetwork, a non-2xx
// answer becomes *APIError.
func (c *Client) do(ctx context.Context, timeout time.Duration, method, path, contentType string, body io.Reader) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := c.config.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Gym API request failed", logger.Fields{
			"method": method,
			"path":   path,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrNetwork, err)
	}

	logger.Debug("Gym API request completed", logger.Fields{
		"method":      method,
		"path":        path,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode/100 != 2 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}
	return respBody, nil
}

// errorMessage pulls a human-readable message out of an error body. ASP.NET
// problem details use "title"; the API's own errors use "message".
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Title
}
