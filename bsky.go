package bsky

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jamesprial/go-bluesky-api-wrapper/internal"
	pkgerrs "github.com/jamesprial/go-bluesky-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-bluesky-api-wrapper/pkg/types"
	"github.com/jamesprial/go-bluesky-api-wrapper/pkg/validation"
)

const (
	// DefaultUserAgent is the default user agent string
	DefaultUserAgent = "go-bluesky-api-wrapper/0.1"
	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
	// DefaultLimit is the page size sent when a request leaves Limit unset
	DefaultLimit = 50
	// MaxLimit is the largest page size a PDS accepts
	MaxLimit = 100
)

// XRPC query endpoints covered by the typed wrapper methods. Any other query
// endpoint can be reached through Fetch.
const (
	EndpointTimeline     = "app.bsky.feed.getTimeline"
	EndpointAuthorFeed   = "app.bsky.feed.getAuthorFeed"
	EndpointSearchPosts  = "app.bsky.feed.searchPosts"
	EndpointFollows      = "app.bsky.graph.getFollows"
	EndpointFollowers    = "app.bsky.graph.getFollowers"
	EndpointProfile      = "app.bsky.actor.getProfile"
	EndpointSearchActors = "app.bsky.actor.searchActors"
)

// Config holds the configuration for the Bluesky client.
// It provides the PDS location, the account credentials, and optional
// customization settings.
//
// Example:
//
//	config := &Config{
//		Host:     "https://bsky.social",
//		Handle:   "alice.bsky.social",
//		Password: "app-password",
//	}
type Config struct {
	// Host is the base URL of the PDS, e.g. "https://bsky.social".
	// Required.
	Host string

	// Handle is the account identifier used to create sessions: a handle,
	// DID, or email address, exactly as the PDS accepts it. Required.
	Handle string

	// Password is the account's app password. Required. It is sent only to
	// the createSession endpoint and never logged.
	Password string

	// UserAgent string to identify your application to the PDS.
	// Defaults to DefaultUserAgent if not specified.
	UserAgent string

	// HTTPClient to use for requests.
	// Defaults to a client with DefaultTimeout (or Timeout, when set) if not
	// specified. Customize this to set proxies or other HTTP behavior.
	HTTPClient *http.Client

	// Timeout for the default HTTP client. Ignored when HTTPClient is set.
	Timeout time.Duration

	// Logger for structured diagnostics.
	// Optional. If provided, debug information will be logged during API
	// calls. Credentials and tokens are never written to it.
	Logger *zerolog.Logger
}

// SessionProvider defines the interface for establishing a session.
// The internal authenticator implements this interface.
type SessionProvider interface {
	// CreateSession exchanges the configured credentials for a session
	// record. The record is returned verbatim; it is not validated.
	CreateSession(ctx context.Context) (types.Session, error)
}

// XRPCClient defines the behavior required from the internal query client.
// This interface allows for easy testing and customization of HTTP behavior.
type XRPCClient interface {
	// Fetch issues an authenticated GET against the endpoint, attaching
	// params as the query string when non-empty, and returns the decoded
	// response body.
	Fetch(ctx context.Context, endpoint string, params url.Values) (types.Payload, error)
}

// Client is the main Bluesky API client.
// It authenticates once (or resumes a saved session) and then issues
// authenticated queries. All query methods require a session, installed
// either by CreateSession or by ResumeSession.
//
// Example usage:
//
//	client, err := NewClient(config)
//	if err != nil {
//		return err
//	}
//
//	sess, err := client.CreateSession(ctx)
//	if err != nil {
//		return err
//	}
//
//	timeline, err := client.GetTimeline(ctx, &types.TimelineRequest{})
type Client struct {
	client  XRPCClient
	auth    SessionProvider
	config  *Config
	session types.Session
	logger  zerolog.Logger
}

// NewClient creates a new Bluesky client with the provided configuration.
//
// The function will:
//   - Validate that required configuration fields are present
//   - Set default values for optional fields
//   - Create the authenticator used by CreateSession
//
// Returns an error if config is nil, if Host, Handle, or Password are
// missing, or if Host is not an absolute URL.
//
// Note: This function does not perform authentication. Call CreateSession
// (or ResumeSession with a saved record) before issuing queries.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, &pkgerrs.ConfigError{Message: "config cannot be nil"}
	}

	// Validate required fields
	if config.Host == "" {
		return nil, &pkgerrs.ConfigError{Field: "Host", Message: "PDS host is required"}
	}
	if config.Handle == "" {
		return nil, &pkgerrs.ConfigError{Field: "Handle", Message: "account handle is required"}
	}
	if config.Password == "" {
		return nil, &pkgerrs.ConfigError{Field: "Password", Message: "account password is required"}
	}
	if _, err := internal.ParseBaseURL(config.Host); err != nil {
		return nil, &pkgerrs.ConfigError{Field: "Host", Message: err.Error()}
	}

	// Set defaults
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.HTTPClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		config.HTTPClient = &http.Client{Timeout: timeout}
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	auth, err := internal.NewAuthenticator(
		config.HTTPClient,
		config.Handle,
		config.Password,
		config.Host,
		config.UserAgent,
		logger,
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		auth:   auth,
		config: config,
		logger: logger,
	}, nil
}

// CreateSession authenticates against the PDS and installs the returned
// session record on the client. The record is also returned so callers can
// persist it with SaveSession and resume it later without re-authenticating.
//
// The record is stored verbatim: no field of the response is validated, and
// a record that happens to lack a usable token only fails once a query
// needs one.
func (c *Client) CreateSession(ctx context.Context) (types.Session, error) {
	sess, err := c.auth.CreateSession(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.useSession(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// ResumeSession installs a previously saved session record so queries can
// run without re-authenticating. The record is not validated here; a record
// without a usable token fails at query time with an auth error.
func (c *Client) ResumeSession(sess types.Session) error {
	return c.useSession(sess)
}

// useSession arms the query transport with the given record.
func (c *Client) useSession(sess types.Session) error {
	client, err := internal.NewClient(
		c.config.HTTPClient,
		sess,
		c.config.Host,
		c.config.UserAgent,
		c.logger,
	)
	if err != nil {
		return err
	}

	c.session = sess
	c.client = client

	c.logger.Debug().
		Str("handle", sess.Handle()).
		Str("did", sess.DID()).
		Msg("session installed")

	return nil
}

// Session returns the record currently installed on the client, or nil when
// no session has been established.
func (c *Client) Session() types.Session {
	return c.session
}

// HasSession returns true if the client holds a session and can issue queries.
func (c *Client) HasSession() bool {
	return c.client != nil
}

// ensureSession guards query methods against use before authentication.
func (c *Client) ensureSession() error {
	if c.client == nil {
		return &pkgerrs.AuthError{Message: "no session established, call CreateSession or ResumeSession first"}
	}
	return nil
}

// Fetch issues an authenticated GET against any XRPC query endpoint and
// returns the decoded response body verbatim. It is the primitive the typed
// wrappers are built on, exposed for endpoints they do not cover.
//
// The endpoint is the NSID form, e.g. "app.bsky.feed.getTimeline". A query
// string is attached only when params carries at least one value.
func (c *Client) Fetch(ctx context.Context, endpoint string, params url.Values) (types.Payload, error) {
	if err := c.ensureSession(); err != nil {
		return nil, err
	}

	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, &pkgerrs.ConfigError{Field: "endpoint", Message: "endpoint is required"}
	}
	if !validation.IsValidNSID(endpoint) {
		return nil, &pkgerrs.ConfigError{Field: "endpoint", Message: fmt.Sprintf("%q is not a valid NSID", endpoint)}
	}

	return c.client.Fetch(ctx, endpoint, params)
}

// GetTimeline retrieves the authenticated account's home timeline.
//
// Provide a nil request to fetch the first page with the default limit. Page
// size and continuation are controlled through the embedded Pagination
// fields; the response's "cursor" member (see NextCursor) feeds the next
// call's Cursor. The wrapper forwards cursors but never follows them itself.
func (c *Client) GetTimeline(ctx context.Context, request *types.TimelineRequest) (types.Payload, error) {
	pagination := types.Pagination{}
	if request != nil {
		pagination = request.Pagination
	}

	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", clampLimit(pagination.Limit)))
	if pagination.Cursor != "" {
		params.Set("cursor", pagination.Cursor)
	}

	return c.Fetch(ctx, EndpointTimeline, params)
}

// GetFollows retrieves the accounts a given actor follows.
//
// The request's Actor is required: a handle or DID, with a leading "@"
// tolerated. Pagination works as in GetTimeline.
func (c *Client) GetFollows(ctx context.Context, request *types.FollowsRequest) (types.Payload, error) {
	if request == nil {
		return nil, &pkgerrs.ConfigError{Field: "actor", Message: "actor is required"}
	}
	actor, err := normalizeActorArg(request.Actor)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("actor", actor)
	params.Set("limit", fmt.Sprintf("%d", clampLimit(request.Limit)))
	if request.Cursor != "" {
		params.Set("cursor", request.Cursor)
	}

	return c.Fetch(ctx, EndpointFollows, params)
}

// GetFollowers retrieves the accounts following a given actor.
//
// The request's Actor is required. Pagination works as in GetTimeline.
func (c *Client) GetFollowers(ctx context.Context, request *types.FollowersRequest) (types.Payload, error) {
	if request == nil {
		return nil, &pkgerrs.ConfigError{Field: "actor", Message: "actor is required"}
	}
	actor, err := normalizeActorArg(request.Actor)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("actor", actor)
	params.Set("limit", fmt.Sprintf("%d", clampLimit(request.Limit)))
	if request.Cursor != "" {
		params.Set("cursor", request.Cursor)
	}

	return c.Fetch(ctx, EndpointFollowers, params)
}

// GetAuthorFeed retrieves posts authored by a given actor.
//
// The request's Actor is required. Pagination works as in GetTimeline.
func (c *Client) GetAuthorFeed(ctx context.Context, request *types.AuthorFeedRequest) (types.Payload, error) {
	if request == nil {
		return nil, &pkgerrs.ConfigError{Field: "actor", Message: "actor is required"}
	}
	actor, err := normalizeActorArg(request.Actor)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("actor", actor)
	params.Set("limit", fmt.Sprintf("%d", clampLimit(request.Limit)))
	if request.Cursor != "" {
		params.Set("cursor", request.Cursor)
	}

	return c.Fetch(ctx, EndpointAuthorFeed, params)
}

// SearchPosts runs a full-text post search.
//
// The request's Query is required. Pagination works as in GetTimeline.
func (c *Client) SearchPosts(ctx context.Context, request *types.SearchPostsRequest) (types.Payload, error) {
	if request == nil {
		return nil, &pkgerrs.ConfigError{Field: "query", Message: "query is required"}
	}
	query := strings.TrimSpace(request.Query)
	if query == "" {
		return nil, &pkgerrs.ConfigError{Field: "query", Message: "query is required"}
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", fmt.Sprintf("%d", clampLimit(request.Limit)))
	if request.Cursor != "" {
		params.Set("cursor", request.Cursor)
	}

	return c.Fetch(ctx, EndpointSearchPosts, params)
}

// SearchActors searches for accounts. The searchActors endpoint takes its
// query as "q", unlike searchPosts.
func (c *Client) SearchActors(ctx context.Context, request *types.SearchActorsRequest) (types.Payload, error) {
	if request == nil {
		return nil, &pkgerrs.ConfigError{Field: "query", Message: "query is required"}
	}
	query := strings.TrimSpace(request.Query)
	if query == "" {
		return nil, &pkgerrs.ConfigError{Field: "query", Message: "query is required"}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", fmt.Sprintf("%d", clampLimit(request.Limit)))
	if request.Cursor != "" {
		params.Set("cursor", request.Cursor)
	}

	return c.Fetch(ctx, EndpointSearchActors, params)
}

// GetProfile retrieves a single actor's profile. Profiles are not paginated.
func (c *Client) GetProfile(ctx context.Context, request *types.ProfileRequest) (types.Payload, error) {
	if request == nil {
		return nil, &pkgerrs.ConfigError{Field: "actor", Message: "actor is required"}
	}
	actor, err := normalizeActorArg(request.Actor)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("actor", actor)

	return c.Fetch(ctx, EndpointProfile, params)
}

// normalizeActorArg prepares and checks an actor argument for a request.
func normalizeActorArg(raw string) (string, error) {
	actor := validation.NormalizeActor(raw)
	if actor == "" {
		return "", &pkgerrs.ConfigError{Field: "actor", Message: "actor is required"}
	}
	if !validation.IsValidActor(actor) {
		return "", &pkgerrs.ConfigError{Field: "actor", Message: fmt.Sprintf("%q is not a valid handle or DID", raw)}
	}
	return actor, nil
}

// clampLimit normalizes a requested page size: non-positive values take the
// default, values above the PDS maximum are capped.
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
