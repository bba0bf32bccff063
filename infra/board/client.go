package board

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"threadline/domain"
)

// Client is a thin HTTP wrapper for the board API.
// Authentication is an ambient session cookie carried by the jar; no
// explicit token ever travels in the payload.
type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

// NewClient creates a board API client rooted at baseURL.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
		now:     time.Now,
	}
}

// Get performs a GET request with a cache-busting timestamp appended,
// so reads always bypass intermediary caches.
func (c *Client) Get(path string) ([]byte, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	path += sep + "_=" + strconv.FormatInt(c.now().UnixNano(), 10)
	return c.do(http.MethodGet, path, nil)
}

// PostJSON performs a POST request with a JSON-encoded body.
func (c *Client) PostJSON(path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	return c.do(http.MethodPost, path, bytes.NewReader(data))
}

func (c *Client) do(method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrSessionExpired)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s: %s", method, path, serverErrorText(resp.StatusCode, data))
	}

	return data, nil
}

// serverErrorText prefers the server-supplied {error} text over a bare
// status-coded message.
func serverErrorText(status int, data []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
		return payload.Error
	}
	return fmt.Sprintf("server returned %d", status)
}
