package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"baselines/internal/models"
)

// Client talks to a running "baselines serve" instance
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new classification service client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ClassifySingle classifies one text
func (c *Client) ClassifySingle(ctx context.Context, text string) (*models.ClassifyResponse, error) {
	var result models.ClassifyResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/classify/single", models.ClassifyRequest{Text: text}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ClassifyBatch classifies several messages in one request
func (c *Client) ClassifyBatch(ctx context.Context, messages []models.BatchMessage) (*models.BatchClassifyResponse, error) {
	var result models.BatchClassifyResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/classify/batch", models.BatchClassifyRequest{Messages: messages}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetModelInfo retrieves information about the served model
func (c *Client) GetModelInfo(ctx context.Context) (*models.ModelInfo, error) {
	var result models.ModelInfo
	if err := c.do(ctx, http.MethodGet, "/api/v1/model", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// HealthCheck checks if the service is up
func (c *Client) HealthCheck(ctx context.Context) error {
	var result struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &result); err != nil {
		return err
	}
	if result.Status != "healthy" {
		return fmt.Errorf("service reported status %q", result.Status)
	}
	return nil
}

// CloseIdleConnections releases pooled connections
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("classification service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
