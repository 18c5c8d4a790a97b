// Package dojo is a typed client for the DefectDojo v2 REST API. It covers
// the five resource groups the importer needs: products, engagements,
// tests, import-scan and reimport-scan.
//
// One authenticated client is constructed per run and passed explicitly to
// every call; the authorization header is set once at construction, either
// from a supplied token or via a one-time credential exchange.
package dojo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dojoctl/dojoctl/pkg/defaults"
	"github.com/dojoctl/dojoctl/pkg/httpclient"
	"github.com/dojoctl/dojoctl/pkg/jsonutil"
)

// maxErrorBody bounds how much of an error response body is kept for the
// user-facing message.
const maxErrorBody = 512

// Config holds client construction options.
type Config struct {
	// BaseURL is the server root, e.g. https://dojo.example. Required.
	BaseURL string

	// Token authenticates directly when set.
	Token string

	// Username and Password are exchanged for a token at construction
	// when no Token is given.
	Username string
	Password string

	// HTTPClient overrides the default pooled client. Mainly for tests.
	HTTPClient *http.Client
}

// Client is an authenticated connection to one DefectDojo server.
// It is read-only after construction.
type Client struct {
	baseURL    string
	http       *http.Client
	authHeader string
	userAgent  string
}

// APIError is a non-success response from the server. It is not retried;
// callers surface it and abort the run.
type APIError struct {
	Status int
	URL    string
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("dojo: %s returned %d", e.URL, e.Status)
	}
	return fmt.Sprintf("dojo: %s returned %d: %s", e.URL, e.Status, e.Body)
}

// New constructs a client. When only username/password are configured, it
// performs the token exchange immediately; that is the single mutation of
// client state, everything afterwards is read-only.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("dojo: base URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = httpclient.New(httpclient.DefaultConfig())
	}
	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		http:      httpClient,
		userAgent: fmt.Sprintf("dojoctl/%s", defaults.Version),
	}

	switch {
	case cfg.Token != "":
		c.authHeader = "Token " + cfg.Token
	case cfg.Username != "" && cfg.Password != "":
		token, err := c.exchangeToken(ctx, cfg.Username, cfg.Password)
		if err != nil {
			return nil, err
		}
		c.authHeader = "Token " + token
	}
	return c, nil
}

// BaseURL returns the normalized server root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// exchangeToken trades credentials for an API token.
func (c *Client) exchangeToken(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+defaults.PathTokenAuth, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("dojo: token exchange: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := jsonutil.UnmarshalRead(resp.Body, &out); err != nil {
		return "", fmt.Errorf("dojo: decoding token response: %w", err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("dojo: token exchange returned no token")
	}
	return out.Token, nil
}

// do issues a request with auth headers and returns the response after a
// status check. The caller owns the body.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// SchemaDocument fetches one self-description endpoint and decodes it as a
// generic JSON document. Only a success status with a JSON content type is
// accepted; anything else is an error the resolver is free to swallow.
func (c *Client) SchemaDocument(ctx context.Context, path string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.HasPrefix(ct, defaults.ContentTypeJSON) {
		return nil, fmt.Errorf("dojo: %s served %q, want JSON", path, ct)
	}
	var doc map[string]any
	if err := jsonutil.UnmarshalRead(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("dojo: decoding schema from %s: %w", path, err)
	}
	return doc, nil
}

// getBytes issues a GET and returns the raw response body, for endpoints
// whose shape must be sniffed before decoding.
func (c *Client) getBytes(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// postJSON issues a POST with a JSON body and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := jsonutil.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", defaults.ContentTypeJSON)

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return nil
	}
	return jsonutil.UnmarshalRead(resp.Body, out)
}

// checkStatus converts a non-2xx response into an *APIError carrying a
// truncated body snippet.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{
		Status: resp.StatusCode,
		URL:    resp.Request.URL.String(),
		Body:   strings.TrimSpace(string(snippet)),
	}
}
