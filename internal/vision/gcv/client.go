// Package gcv implements port.VisionClient against the Google Cloud Vision
// REST API.
package gcv

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
)

const apiBaseURL = "https://vision.googleapis.com/v1"

// Client calls the Vision API for document text recognition. Images go to
// images:annotate; single-page PDFs go to files:annotate. The client handle
// is immutable and safe to share across calls.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient creates a Vision client from config.
func NewClient(cfg *config.VisionConfig) *Client {
	return newClient(cfg, "")
}

// NewClientWithEndpoint creates a client pointing at a custom API base URL
// (for testing).
func NewClientWithEndpoint(cfg *config.VisionConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.VisionConfig, endpoint string) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	if endpoint == "" {
		endpoint = apiBaseURL
	}
	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// RecognizeText sends a document buffer for text detection and returns the
// recognized text. The full-document annotation is preferred; the first text
// annotation block is the fallback.
func (c *Client) RecognizeText(ctx context.Context, data []byte, contentType string) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(data)

	var path string
	var reqBody map[string]interface{}
	if contentType == "application/pdf" {
		path = c.endpoint + "/files:annotate"
		reqBody = map[string]interface{}{
			"requests": []map[string]interface{}{
				{
					"inputConfig": map[string]interface{}{
						"content":  encoded,
						"mimeType": contentType,
					},
					"features": []map[string]interface{}{
						{"type": "DOCUMENT_TEXT_DETECTION"},
					},
					"pages": []int{1},
				},
			},
		}
	} else {
		path = c.endpoint + "/images:annotate"
		reqBody = map[string]interface{}{
			"requests": []map[string]interface{}{
				{
					"image": map[string]interface{}{
						"content": encoded,
					},
					"features": []map[string]interface{}{
						{"type": "DOCUMENT_TEXT_DETECTION"},
					},
				},
			},
		}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, path, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling vision API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vision API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	if contentType == "application/pdf" {
		return parseFilesResponse(respBody)
	}
	return parseImagesResponse(respBody)
}

type annotateResponse struct {
	FullTextAnnotation *struct {
		Text string `json:"text"`
	} `json:"fullTextAnnotation"`
	TextAnnotations []struct {
		Description string `json:"description"`
	} `json:"textAnnotations"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (r *annotateResponse) text() (string, error) {
	if r.Error != nil {
		return "", fmt.Errorf("vision annotation error: %s", r.Error.Message)
	}
	if r.FullTextAnnotation != nil {
		return r.FullTextAnnotation.Text, nil
	}
	if len(r.TextAnnotations) > 0 {
		return r.TextAnnotations[0].Description, nil
	}
	return "", nil
}

func parseImagesResponse(body []byte) (string, error) {
	var resp struct {
		Responses []annotateResponse `json:"responses"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Responses) == 0 {
		return "", fmt.Errorf("empty response from vision API")
	}
	return resp.Responses[0].text()
}

func parseFilesResponse(body []byte) (string, error) {
	var resp struct {
		Responses []struct {
			Responses []annotateResponse `json:"responses"`
		} `json:"responses"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Responses) == 0 || len(resp.Responses[0].Responses) == 0 {
		return "", fmt.Errorf("empty response from vision API")
	}
	return resp.Responses[0].Responses[0].text()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
