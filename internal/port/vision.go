package port

import "context"

// VisionClient abstracts the external document-vision service. It takes a
// document buffer and returns the recognized text. A single fallible call;
// retry and timeout policy belong to the caller's HTTP client configuration.
type VisionClient interface {
	RecognizeText(ctx context.Context, data []byte, contentType string) (string, error)
}
