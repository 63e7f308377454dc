// Package predict proxies images to the external classification service,
// which suggests an issue category for an uploaded photo.
package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	apperrors "github.com/civicfix/api/pkg/errors"
)

// Prediction is the classifier's answer, relayed to the client unchanged.
type Prediction struct {
	Filename          string `json:"filename"`
	PredictedCategory string `json:"predicted_category"`
}

// Client talks to the classification service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Predict forwards the image as multipart field "file" and relays the
// classifier's response. Any transport or upstream failure surfaces as
// ErrUpstream so handlers can answer 503.
func (c *Client) Predict(ctx context.Context, file io.Reader, filename string) (*Prediction, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict/", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: classifier returned %d", apperrors.ErrUpstream, resp.StatusCode)
	}

	var prediction Prediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	return &prediction, nil
}
