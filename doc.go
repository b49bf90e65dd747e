// Package bsky provides a minimal Go client for the Bluesky HTTP API.
//
// # Overview
//
// This package lets Go applications authenticate against an AT Protocol
// personal data server (PDS) with a handle and app password, persist the
// resulting session record to disk, and issue authenticated read queries.
// Responses are returned as decoded JSON values without any schema
// interpretation; callers pick out the fields they need.
//
// # Features
//
//   - Session establishment via com.atproto.server.createSession
//   - Session persistence to a flat JSON file and reuse across runs
//   - Typed wrappers for timeline, follows, followers, author feed,
//     profile, and search endpoints
//   - A generic Fetch primitive for any other XRPC query endpoint
//   - Opaque payloads: responses pass through exactly as the server sent them
//   - Structured logging support via zerolog
//
// # Quick Start
//
// Basic setup requires the PDS host and account credentials:
//
//	config := &bsky.Config{
//		Host:     "https://bsky.social",
//		Handle:   "alice.bsky.social",
//		Password: "app-password",
//	}
//
//	client, err := bsky.NewClient(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err := client.CreateSession(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Configuration can also come from the environment (PDSHOST, BLUESKY_HANDLE,
// BLUESKY_PASSWORD, optionally seeded from a .env file):
//
//	config, err := bsky.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Sessions
//
// CreateSession authenticates once and returns the server's session record
// verbatim. Save it with SaveSession and resume it in later runs without
// re-authenticating:
//
//	if err := bsky.SaveSession(sess, bsky.DefaultSessionFile); err != nil {
//		log.Fatal(err)
//	}
//
//	// later, in another process
//	sess, err := bsky.LoadSession(bsky.DefaultSessionFile)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := client.ResumeSession(sess); err != nil {
//		log.Fatal(err)
//	}
//
// The record is opaque: the client only reads its bearer token (the
// "accessJwt" field, falling back to "jwt"), and only at the moment a query
// is issued. There is no token refresh; once the token expires, queries fail
// with the server's rejection and the fix is a fresh CreateSession.
//
// # Common Operations
//
// Fetch the home timeline:
//
//	timeline, err := client.GetTimeline(ctx, &types.TimelineRequest{
//		Pagination: types.Pagination{Limit: 25},
//	})
//
// List who an account follows:
//
//	follows, err := client.GetFollows(ctx, &types.FollowsRequest{Actor: "alice.bsky.social"})
//
// Reach an endpoint without a wrapper:
//
//	payload, err := client.Fetch(ctx, "app.bsky.feed.getLikes", url.Values{
//		"uri": []string{postURI},
//	})
//
// Payloads are plain decoded JSON. Index into them with type assertions, or
// re-encode them with encoding/json:
//
//	if feed, ok := timeline.(map[string]any); ok {
//		items, _ := feed["feed"].([]any)
//		fmt.Printf("fetched %d items\n", len(items))
//	}
//
// # Pagination
//
// Listing endpoints use opaque cursor strings. Each response may carry a
// top-level "cursor" member; pass it as the next request's Cursor to
// continue. The client never follows cursors itself:
//
//	req := &types.TimelineRequest{Pagination: types.Pagination{Limit: 100}}
//	for {
//		page, err := client.GetTimeline(ctx, req)
//		if err != nil {
//			return err
//		}
//		process(page)
//
//		cursor, ok := bsky.NextCursor(page)
//		if !ok {
//			break // no more pages
//		}
//		req.Cursor = cursor
//	}
//
// An empty Cursor means "first page" and is omitted from the request
// entirely; only non-empty cursors are sent.
//
// # Error Handling
//
// The library uses specific error types, defined in pkg/errors, for
// different failure scenarios:
//
//	timeline, err := client.GetTimeline(ctx, nil)
//	if err != nil {
//		var apiErr *errors.APIError
//		var authErr *errors.AuthError
//		switch {
//		case stderrors.As(err, &apiErr):
//			// the PDS rejected the query (includes expired tokens)
//		case stderrors.As(err, &authErr):
//			// no usable session or token
//		}
//	}
//
// ConfigError covers bad configuration and arguments, AuthError covers
// createSession failures and missing tokens, RequestError covers transport
// failures, APIError covers non-2xx responses, DecodeError covers
// undecodable success bodies, and StorageError covers the session file.
// Errors are returned immediately; the client never retries.
//
// # Logging
//
// Enable debug logging by providing a zerolog logger in the config:
//
//	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
//
//	config := &bsky.Config{
//		// ... other config ...
//		Logger: &logger,
//	}
//
// Debug events cover request URLs, response status, and timing. Credentials
// and tokens are never logged.
//
// # Security Considerations
//
// Use app passwords, not the account's main password; they can be revoked
// individually from account settings.
//
// The saved session file embeds bearer tokens. SaveSession writes it with
// mode 0600; treat the file like a credential.
//
// When using custom HTTP clients, keep TLS verification enabled and set a
// reasonable timeout. The default client uses a 30 second timeout.
//
// # Bluesky API Documentation
//
// For detailed information about endpoints, parameters, and response shapes,
// refer to https://docs.bsky.app/docs/category/http-reference.
package bsky
