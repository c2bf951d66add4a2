// Package upload talks to the external matching service. The service is an
// opaque HTTP endpoint: it consumes the finished WAV bytes and returns match
// candidates. No retries happen at this layer.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"
)

// Client is a matching-service client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Match is one candidate returned by the service.
type Match struct {
	Track string  `json:"track"`
	Score float64 `json:"score"`
}

// Result is the service response for one uploaded clip.
type Result struct {
	JobID   string  `json:"job_id"`
	Matches []Match `json:"matches"`
}

// Health reports whether the service is reachable.
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// UploadClip posts WAV bytes as a multipart form: the file part carries
// media type audio/wav under the clip filename, with numeric start and
// duration fields in seconds alongside.
func (c *Client) UploadClip(ctx context.Context, wav []byte, filename string, start, duration float64) (*Result, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	hdr.Set("Content-Type", "audio/wav")
	part, err := w.CreatePart(hdr)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload body: %w", err)
	}
	if _, err := part.Write(wav); err != nil {
		return nil, fmt.Errorf("failed to build upload body: %w", err)
	}

	if err := w.WriteField("start", strconv.FormatFloat(start, 'f', -1, 64)); err != nil {
		return nil, fmt.Errorf("failed to build upload body: %w", err)
	}
	if err := w.WriteField("duration", strconv.FormatFloat(duration, 'f', -1, 64)); err != nil {
		return nil, fmt.Errorf("failed to build upload body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/match", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode service response: %w", err)
	}
	return &result, nil
}
