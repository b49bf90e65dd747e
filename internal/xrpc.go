package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	pkgerrs "github.com/jamesprial/go-bluesky-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-bluesky-api-wrapper/pkg/types"
)

// xrpcPathPrefix is the path segment every XRPC endpoint lives under,
// relative to the PDS base URL.
const xrpcPathPrefix = "xrpc/"

// ParseBaseURL parses a PDS host URL and normalizes it for endpoint
// resolution. The path is forced to end in "/" so resolving a relative
// endpoint path yields the same URL whether or not the host was given with
// a trailing slash.
func ParseBaseURL(host string) (*url.URL, error) {
	parsedURL, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("failed to parse host URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("host URL %q must include a scheme and host", host)
	}
	if !strings.HasSuffix(parsedURL.Path, "/") {
		parsedURL.Path += "/"
	}
	return parsedURL, nil
}

// Client issues authenticated XRPC queries against a PDS.
type Client struct {
	client    *http.Client
	BaseURL   *url.URL
	UserAgent string
	session   types.Session
	logger    zerolog.Logger
}

// NewClient returns a new XRPC query client that authenticates with the
// token carried in session. If a nil httpClient is provided,
// http.DefaultClient will be used.
func NewClient(httpClient *http.Client, session types.Session, host, userAgent string, logger zerolog.Logger) (*Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	parsedURL, err := ParseBaseURL(host)
	if err != nil {
		return nil, &pkgerrs.ConfigError{Field: "Host", Message: err.Error()}
	}

	return &Client{
		client:    httpClient,
		BaseURL:   parsedURL,
		UserAgent: userAgent,
		session:   session,
		logger:    logger,
	}, nil
}

// NewRequest creates an authenticated GET request for the given endpoint.
// The query string is attached only when params carries at least one value.
// The bearer token is read from the session record at call time, checking
// "accessJwt" and then "jwt"; when neither holds a non-empty string the
// request is never built.
func (c *Client) NewRequest(ctx context.Context, endpoint string, params url.Values) (*http.Request, error) {
	u, err := c.BaseURL.Parse(xrpcPathPrefix + endpoint)
	if err != nil {
		return nil, &pkgerrs.RequestError{
			Operation: endpoint,
			Err:       fmt.Errorf("failed to resolve endpoint URL: %w", err),
		}
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	token, ok := c.session.AccessToken()
	if !ok {
		return nil, &pkgerrs.AuthError{Message: "no access JWT found in session"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &pkgerrs.RequestError{
			Operation: endpoint,
			URL:       u.String(),
			Err:       fmt.Errorf("failed to create request: %w", err),
		}
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)

	return req, nil
}

// xrpcError is the standard error body shape XRPC endpoints return.
type xrpcError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Do sends an API request and returns the decoded response body. Bodies are
// decoded as arbitrary JSON; no schema is enforced. A non-2xx status becomes
// an *errors.APIError carrying the status, the raw body, and, when the body
// is a well-formed XRPC error, its error code and message.
func (c *Client) Do(req *http.Request) (types.Payload, error) {
	op := path.Base(req.URL.Path)
	start := time.Now()

	c.logger.Debug().
		Str("endpoint", op).
		Str("url", req.URL.String()).
		Msg("issuing query")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &pkgerrs.RequestError{
			Operation: op,
			URL:       req.URL.String(),
			Err:       fmt.Errorf("failed to execute request: %w", err),
		}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &pkgerrs.RequestError{
			Operation: op,
			URL:       req.URL.String(),
			Err:       fmt.Errorf("failed to read response body: %w", err),
		}
	}

	c.logger.Debug().
		Str("endpoint", op).
		Int("status", resp.StatusCode).
		Int("bytes", len(bodyBytes)).
		Dur("elapsed", time.Since(start)).
		Msg("query completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &pkgerrs.APIError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
		var xe xrpcError
		if json.Unmarshal(bodyBytes, &xe) == nil {
			apiErr.ErrorCode = xe.Error
			apiErr.Message = xe.Message
		}
		return nil, apiErr
	}

	var payload types.Payload
	if err := json.Unmarshal(bodyBytes, &payload); err != nil {
		return nil, &pkgerrs.DecodeError{
			Operation: op,
			Err:       fmt.Errorf("failed to decode response body: %w", err),
		}
	}

	return payload, nil
}

// Fetch builds and executes a query against endpoint in one step.
func (c *Client) Fetch(ctx context.Context, endpoint string, params url.Values) (types.Payload, error) {
	req, err := c.NewRequest(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}
