package talentwire

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL          = "https://api.talentwire.dev"
	userAgent       = "hirematch cli"
	contentType     = "application/json"
	contentEncoding = "gzip, deflate, br"
)

// Credentials gives the client access to the stored session. The client never
// writes a credential; it only reads it for the Authorization header and
// clears it when the server rejects it.
type Credentials interface {
	Token() (string, bool)
	Clear() error
}

type Client struct {
	creds      Credentials
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(logger *zap.Logger, creds Credentials) *Client {
	return &Client{
		creds:  creds,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

type itemResponse struct {
	Items []any `json:"items"`
}

// getItems makes an authorized GET request and returns the raw items from the
// collection response. Callers decode them into typed structs.
func (c *Client) getItems(ctx context.Context, op, path string) ([]any, error) {
	var response itemResponse
	if err := c.getJSON(ctx, op, path, &response); err != nil {
		return nil, err
	}

	return response.Items, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, target any) error {
	req, err := c.newRequest(ctx, op, http.MethodGet, path, nil, true)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	return c.do(op, req, target)
}

func (c *Client) postJSON(ctx context.Context, op, path string, body, target any, requiresAuth bool) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return fmt.Errorf("%s: encoding request: %w", op, err)
	}

	req, err := c.newRequest(ctx, op, http.MethodPost, path, &buf, requiresAuth)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	return c.do(op, req, target)
}

// newRequest builds a request against the API base URL. When requiresAuth is
// set and no credential is stored, it fails before any network IO happens.
func (c *Client) newRequest(ctx context.Context, op, method, path string, body io.Reader, requiresAuth bool) (*http.Request, error) {
	token, ok := c.creds.Token()
	if requiresAuth && !ok {
		return nil, &APIError{Kind: KindUnauthenticated, Op: op, Message: "no credential stored, log in first"}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.APIURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if ok {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req, nil
}

func (c *Client) do(op string, req *http.Request, target any) error {
	c.logger.Debug("make request", zap.String("op", op), zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &APIError{Kind: KindNetwork, Op: op, Message: err.Error(), cause: err}
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return &APIError{Kind: KindNetwork, Op: op, Message: err.Error(), cause: err}
	}

	if err := c.classify(op, resp.StatusCode, data); err != nil {
		return err
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%s: decoding response: %w", op, err)
	}

	return nil
}

// classify maps a non-2xx status to the error taxonomy. A 401 clears the
// stored session so every caller sees the same re-login signal.
func (c *Client) classify(op string, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	message := serverDetail(body)

	switch {
	case status == http.StatusUnauthorized:
		if err := c.creds.Clear(); err != nil {
			c.logger.Warn("clearing rejected session", zap.Error(err))
		}
		return &APIError{Kind: KindUnauthenticated, Op: op, Status: status, Message: message}
	case status >= 400 && status < 500:
		return &APIError{Kind: KindClient, Op: op, Status: status, Message: message}
	default:
		return &APIError{Kind: KindServer, Op: op, Status: status, Message: message}
	}
}

// serverDetail extracts the detail field the API puts in error bodies.
func serverDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}

	return "bad status"
}
