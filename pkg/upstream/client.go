// Package upstream is the typed client for the remote leads API, the
// system's only real external boundary. It owns the bearer-token plumbing
// and maps non-2xx responses to StatusError so callers can apply the
// 401/403 policy deterministically.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Keerthan22-sys/Instigar/pkg/models"
)

// Client talks to the remote leads API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an upstream client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Login authenticates against the upstream and returns its token response.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("upstream login returned no token")
	}
	return &resp, nil
}

// Register creates an account upstream and returns its token response.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchLeads retrieves the full lead collection of the given kind
// ("leads" or "walkin").
func (c *Client) FetchLeads(ctx context.Context, token, kind string) ([]models.SpringLead, error) {
	var resp []models.SpringLead
	path := "/api/leads/filter?type=" + kind
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateLead sends a draft and returns the server record with its
// assigned id.
func (c *Client) CreateLead(ctx context.Context, token string, draft models.SpringLead) (*models.SpringLead, error) {
	var resp models.SpringLead
	if err := c.doJSON(ctx, http.MethodPost, "/api/leads", token, draft, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateLead sends a partial patch and returns the server's full
// post-update representation.
func (c *Client) UpdateLead(ctx context.Context, token string, id int, patch map[string]any) (*models.SpringLead, error) {
	var resp models.SpringLead
	path := fmt.Sprintf("/api/leads/%d", id)
	if err := c.doJSON(ctx, http.MethodPut, path, token, patch, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteLead deletes a lead by id. Success is determined by status code
// alone; the upstream returns no body.
func (c *Client) DeleteLead(ctx context.Context, token string, id int) error {
	path := fmt.Sprintf("/api/leads/%d", id)
	return c.doJSON(ctx, http.MethodDelete, path, token, nil, nil)
}

// UploadCSV forwards a CSV file as a multipart form with a "file" field.
// Parsing happens entirely upstream.
func (c *Client) UploadCSV(ctx context.Context, token, filename string, file io.Reader) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to build multipart form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to copy upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/leads/csv/upload", &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.setCommonHeaders(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// Ping probes upstream reachability for health reporting.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream unreachable: %w", err)
	}
	resp.Body.Close()
	return nil
}

// doJSON performs a JSON request/response cycle. A nil out discards the
// response body.
func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setCommonHeaders(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}
	return nil
}

func (c *Client) setCommonHeaders(req *http.Request, token string) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
