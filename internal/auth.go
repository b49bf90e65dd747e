package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	pkgerrs "github.com/jamesprial/go-bluesky-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-bluesky-api-wrapper/pkg/types"
)

// CreateSessionEndpoint is the XRPC procedure that exchanges account
// credentials for a session record.
const CreateSessionEndpoint = "com.atproto.server.createSession"

// Authenticator obtains a session record from a PDS.
type Authenticator struct {
	client      *http.Client
	identifier  string
	userAgent   string
	credentials []byte
	BaseURL     *url.URL
	sessionURL  *url.URL
	logger      zerolog.Logger
}

// sessionRequest is the createSession request body.
type sessionRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// NewAuthenticator creates a new authenticator for the given PDS host.
// If a nil httpClient is provided, http.DefaultClient will be used.
func NewAuthenticator(httpClient *http.Client, identifier, password, host, userAgent string, logger zerolog.Logger) (*Authenticator, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	parsedURL, err := ParseBaseURL(host)
	if err != nil {
		return nil, &pkgerrs.AuthError{Err: fmt.Errorf("failed to parse host URL: %w", err)}
	}

	sessionURL, err := parsedURL.Parse(xrpcPathPrefix + CreateSessionEndpoint)
	if err != nil {
		return nil, &pkgerrs.AuthError{Err: fmt.Errorf("failed to resolve createSession URL: %w", err)}
	}

	// Prepare the credential body upfront; it is identical for every attempt.
	credentials, err := json.Marshal(sessionRequest{Identifier: identifier, Password: password})
	if err != nil {
		return nil, &pkgerrs.AuthError{Err: fmt.Errorf("failed to encode credentials: %w", err)}
	}

	return &Authenticator{
		client:      httpClient,
		identifier:  identifier,
		userAgent:   userAgent,
		credentials: credentials,
		BaseURL:     parsedURL,
		sessionURL:  sessionURL,
		logger:      logger,
	}, nil
}

// CreateSession performs the createSession call and returns the server's
// response verbatim as a session record. The record's contents are not
// validated; a record without a usable token only fails once a query needs
// the token.
func (a *Authenticator) CreateSession(ctx context.Context) (types.Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.sessionURL.String(), bytes.NewReader(a.credentials))
	if err != nil {
		return nil, &pkgerrs.AuthError{Err: fmt.Errorf("failed to create session request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", a.userAgent)

	a.logger.Debug().
		Str("url", a.sessionURL.String()).
		Str("identifier", a.identifier).
		Msg("creating session")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &pkgerrs.AuthError{Err: fmt.Errorf("failed to execute session request: %w", err)}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &pkgerrs.AuthError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response body: %w", err),
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &pkgerrs.AuthError{
			StatusCode: resp.StatusCode,
			Body:       string(bodyBytes),
		}
	}

	var sess types.Session
	if err := json.Unmarshal(bodyBytes, &sess); err != nil {
		return nil, &pkgerrs.AuthError{
			StatusCode: resp.StatusCode,
			Body:       string(bodyBytes),
			Err:        fmt.Errorf("failed to unmarshal session response: %w", err),
		}
	}

	a.logger.Debug().
		Str("handle", sess.Handle()).
		Str("did", sess.DID()).
		Msg("session established")

	return sess, nil
}
