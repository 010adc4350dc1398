// Package imagestore uploads task evidence photos to the media service.
package imagestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"fieldops/internal/pkg/errs"
)

// HTTPImageStore implements ImageStore by POSTing the raw image to the
// media service and returning the URL it responds with.
type HTTPImageStore struct {
	endpoint string
	client   *http.Client
}

// NewHTTPImageStore creates a new HTTP image store targeting endpoint.
func NewHTTPImageStore(endpoint string) (*HTTPImageStore, error) {
	if endpoint == "" {
		return nil, errs.NewValueIsRequiredError("endpoint")
	}

	return &HTTPImageStore{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Store uploads a raw image and returns the URL it is served from.
func (s *HTTPImageStore) Store(ctx context.Context, raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", errs.NewValueIsRequiredError("raw")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "photo.jpg")
	if err != nil {
		return "", err
	}
	if _, err = part.Write(raw); err != nil {
		return "", err
	}
	if err = writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("media service returned status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed uploadResponse
	if err = json.Unmarshal(payload, &parsed); err != nil {
		return "", err
	}
	if parsed.URL == "" {
		return "", errs.NewValueIsRequiredError("url")
	}

	return parsed.URL, nil
}
