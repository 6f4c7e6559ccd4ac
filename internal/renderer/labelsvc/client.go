// Package labelsvc implements port.LabelRenderer against the external
// label-layout rendering service. The core's responsibility ends at sending
// a validated field set; all layout drawing happens on the other side.
package labelsvc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"etiqo/internal/config"
	"etiqo/internal/port"
)

// Client is an HTTP client for the label renderer.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient creates a renderer client from config.
func NewClient(cfg *config.RendererConfig) *Client {
	return newClient(cfg, "")
}

// NewClientWithEndpoint creates a client pointing at a custom endpoint (for
// testing).
func NewClientWithEndpoint(cfg *config.RendererConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.RendererConfig, endpoint string) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	if endpoint == "" {
		endpoint = cfg.Endpoint
	}
	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type renderRequest struct {
	Layout       string `json:"layout"`
	ProductName  string `json:"product_name"`
	Variety      string `json:"variety,omitempty"`
	QuantityText string `json:"quantity_text,omitempty"`
	PackingDate  string `json:"packing_date,omitempty"`
}

type renderResponse struct {
	Labels []struct {
		FileName string `json:"file_name"`
		MimeType string `json:"mime_type"`
		Data     string `json:"data"`
	} `json:"labels"`
}

// Render sends one item's field set and decodes the returned artifacts. A
// layout may legitimately return more than one label per item.
func (c *Client) Render(ctx context.Context, input port.RenderInput) ([]port.RenderedLabel, error) {
	bodyBytes, err := json.Marshal(renderRequest{
		Layout:       string(input.Layout),
		ProductName:  input.ProductName,
		Variety:      input.Variety,
		QuantityText: input.QuantityText,
		PackingDate:  input.PackingDate,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/render", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling label renderer: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("label renderer error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	var parsed renderResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Labels) == 0 {
		return nil, fmt.Errorf("label renderer returned no labels")
	}

	labels := make([]port.RenderedLabel, 0, len(parsed.Labels))
	for _, l := range parsed.Labels {
		data, decErr := base64.StdEncoding.DecodeString(l.Data)
		if decErr != nil {
			return nil, fmt.Errorf("decoding label payload: %w", decErr)
		}
		labels = append(labels, port.RenderedLabel{
			FileName: l.FileName,
			MimeType: l.MimeType,
			Data:     data,
		})
	}
	return labels, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
