// Package statement extracts payment details from card statement scans:
// an OCR pass over the uploaded image, then pattern extraction over the
// recognized text.
package statement

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const visionEndpoint = "https://vision.googleapis.com/v1/images:annotate"

// Client calls the Vision text-detection API.
type Client struct {
	APIKey     string
	HTTPClient *http.Client
	Endpoint   string
}

// NewClient creates a Client using the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		Endpoint:   visionEndpoint,
	}
}

type annotateRequest struct {
	Requests []annotateItem `json:"requests"`
}

type annotateItem struct {
	Image    imageContent `json:"image"`
	Features []feature    `json:"features"`
}

type imageContent struct {
	Content string `json:"content"`
}

type feature struct {
	Type string `json:"type"`
}

type annotateResponse struct {
	Responses []struct {
		FullTextAnnotation struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// RecognizeText runs text detection on the raw image bytes and returns the
// recognized text. An image with no detectable text yields an empty
// string, not an error.
func (c *Client) RecognizeText(ctx context.Context, image []byte) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("vision api key not configured")
	}

	payload, err := json.Marshal(annotateRequest{
		Requests: []annotateItem{{
			Image:    imageContent{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []feature{{Type: "TEXT_DETECTION"}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode vision request: %w", err)
	}

	url := c.Endpoint + "?key=" + c.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("vision request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return "", fmt.Errorf("vision api returned %s: %s", res.Status, bytes.TrimSpace(body))
	}

	var decoded annotateResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode vision response: %w", err)
	}
	if len(decoded.Responses) == 0 {
		return "", nil
	}
	if apiErr := decoded.Responses[0].Error; apiErr != nil {
		return "", fmt.Errorf("vision api error: %s", apiErr.Message)
	}
	return decoded.Responses[0].FullTextAnnotation.Text, nil
}
