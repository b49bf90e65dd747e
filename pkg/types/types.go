package types

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the record returned by com.atproto.server.createSession, kept
// verbatim as decoded JSON. The wrapper never validates which fields the
// server included, so unknown fields survive a save/load round trip
// untouched. Well-known fields are reached through the accessor methods.
type Session map[string]any

// accessTokenKeys lists the session fields that may carry the bearer token,
// in lookup order. The first key holding a non-empty string wins.
var accessTokenKeys = []string{"accessJwt", "jwt"}

// AccessToken returns the bearer token stored in the session record.
// It checks "accessJwt" first and falls back to "jwt"; a field that is
// absent, not a string, or an empty string does not count. The second
// return value reports whether a usable token was found.
func (s Session) AccessToken() (string, bool) {
	for _, key := range accessTokenKeys {
		if tok, ok := s[key].(string); ok && tok != "" {
			return tok, true
		}
	}
	return "", false
}

// RefreshToken returns the refresh token, if the record carries one.
// The wrapper itself never uses it; it is exposed for callers that manage
// their own session lifecycle.
func (s Session) RefreshToken() (string, bool) {
	tok, ok := s["refreshJwt"].(string)
	return tok, ok && tok != ""
}

// Handle returns the account handle from the record, or "" when absent.
func (s Session) Handle() string {
	h, _ := s["handle"].(string)
	return h
}

// DID returns the account DID from the record, or "" when absent.
func (s Session) DID() string {
	d, _ := s["did"].(string)
	return d
}

// AccessTokenExpiry decodes the expiry claim of the access token without
// verifying its signature. It is informational only: nothing in the client
// consults it before issuing requests, and requests made with an expired
// token fail the same way as any other server rejection.
func (s Session) AccessTokenExpiry() (time.Time, error) {
	tok, ok := s.AccessToken()
	if !ok {
		return time.Time{}, fmt.Errorf("session has no access token")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse access token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("read exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("access token has no exp claim")
	}
	return exp.Time, nil
}

// Payload holds a decoded JSON response body. XRPC query endpoints return
// arbitrary JSON and the wrapper performs no schema validation, so a Payload
// is one of nil, bool, float64, string, []any, or map[string]any, exactly as
// encoding/json produces them. Callers interpret the structure themselves.
type Payload any

// Pagination captures the shared pagination behaviour of Bluesky listing
// endpoints. Bluesky uses opaque cursor strings: each page of results may
// include a "cursor" member which, passed back on the next call, continues
// the listing from where it left off.
type Pagination struct {
	// Limit specifies the number of items to retrieve.
	// The PDS enforces a maximum of 100 items per request.
	// If 0 or negative, the wrapper sends its default of 50.
	Limit int

	// Cursor is the opaque continuation token from a previous response.
	// Leave empty to start from the first page; the wrapper omits the
	// parameter entirely in that case. The wrapper forwards cursors but
	// never follows them itself.
	Cursor string
}

// TimelineRequest describes a request for the authenticated account's
// home timeline.
type TimelineRequest struct {
	Pagination
}

// FollowsRequest describes a request for the accounts a given actor follows.
type FollowsRequest struct {
	// Actor is the handle or DID whose follows to list. Required.
	Actor string
	Pagination
}

// FollowersRequest describes a request for the accounts following a
// given actor.
type FollowersRequest struct {
	// Actor is the handle or DID whose followers to list. Required.
	Actor string
	Pagination
}

// AuthorFeedRequest describes a request for posts authored by a given actor.
type AuthorFeedRequest struct {
	// Actor is the handle or DID whose feed to retrieve. Required.
	Actor string
	Pagination
}

// SearchPostsRequest describes a full-text post search.
type SearchPostsRequest struct {
	// Query is the search string. Required.
	Query string
	Pagination
}

// SearchActorsRequest describes a search for accounts.
type SearchActorsRequest struct {
	// Query is the search string. Required.
	Query string
	Pagination
}

// ProfileRequest describes a request for a single actor's profile.
// Profiles are not paginated.
type ProfileRequest struct {
	// Actor is the handle or DID to look up. Required.
	Actor string
}
