// Package upload implements a client for the external file upload service.
// The service accepts a multipart POST and answers with the public URL of
// the stored file.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// Client is a client for the file upload service.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
}

// uploadResponse is the upload service response.
type uploadResponse struct {
	URL string `json:"url"`
}

// New creates a new upload client. The token is optional; when set it is
// sent as a bearer token.
func New(rawURL, token string) (*Client, error) {
	if rawURL == "" {
		return nil, errors.New("upload service URL is required")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upload service URL: %w", err)
	}
	return &Client{
		baseURL:    parsed,
		token:      token,
		httpClient: http.DefaultClient,
	}, nil
}

// readErrorBody reads the response body for error messages.
// Returns a placeholder if reading fails (we're already in an error path).
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(r)
	if err != nil {
		return "(could not read error body)"
	}
	return string(body)
}

// UploadFile sends the file bytes to the upload service and returns the
// retrievable URL of the stored file.
func (c *Client) UploadFile(ctx context.Context, fileName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("no file data to upload")
	}

	// Create multipart form
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("could not create form file: %w", err)
	}

	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("could not write file data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("could not close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.JoinPath("upload").String(), &body)
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read response body: %w", err)
	}

	var result uploadResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("could not unmarshal response: %w", err)
	}

	if result.URL == "" {
		return "", errors.New("upload response missing url")
	}

	return result.URL, nil
}
