package bsky

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	pkgerrs "github.com/jamesprial/go-bluesky-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-bluesky-api-wrapper/pkg/types"
)

// newEdgeClient builds a client with an installed session pointed at the
// given server.
func newEdgeClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	client, err := NewClient(&Config{
		Host:       server.URL,
		Handle:     "tester.bsky.social",
		Password:   "app-password",
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := client.ResumeSession(types.Session{"accessJwt": "edge-token"}); err != nil {
		t.Fatalf("ResumeSession returned error: %v", err)
	}
	return client
}

// TestPayloadShapesPassThrough checks that whatever JSON the server returns
// comes back to the caller as the matching decoded value, with no schema
// imposed in between.
func TestPayloadShapesPassThrough(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{
			name: "object",
			body: `{"feed":[],"cursor":"abc"}`,
			want: map[string]any{"feed": []any{}, "cursor": "abc"},
		},
		{
			name: "deeply nested object",
			body: `{"thread":{"post":{"record":{"reply":{"root":{"uri":"at://x"}}}}}}`,
			want: map[string]any{
				"thread": map[string]any{
					"post": map[string]any{
						"record": map[string]any{
							"reply": map[string]any{
								"root": map[string]any{"uri": "at://x"},
							},
						},
					},
				},
			},
		},
		{
			name: "top-level array",
			body: `[{"a":1},{"b":2}]`,
			want: []any{map[string]any{"a": float64(1)}, map[string]any{"b": float64(2)}},
		},
		{
			name: "bare string",
			body: `"just a string"`,
			want: "just a string",
		},
		{
			name: "bare number",
			body: `42.5`,
			want: float64(42.5),
		},
		{
			name: "bare boolean",
			body: `true`,
			want: true,
		},
		{
			name: "null body",
			body: `null`,
			want: nil,
		},
		{
			name: "mixed-type array",
			body: `[1,"two",null,{"three":3},[4]]`,
			want: []any{float64(1), "two", nil, map[string]any{"three": float64(3)}, []any{float64(4)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(server.Close)

			client := newEdgeClient(t, server)

			payload, err := client.Fetch(context.Background(), "app.bsky.feed.getTimeline", nil)
			if err != nil {
				t.Fatalf("Fetch returned error: %v", err)
			}
			if !reflect.DeepEqual(payload, types.Payload(tt.want)) {
				t.Errorf("payload = %#v, want %#v", payload, tt.want)
			}
		})
	}
}

// TestMalformedJSONResponse checks that a truncated body on a success status
// surfaces as a decode error naming the operation.
func TestMalformedJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"feed": [{"post":`))
	}))
	t.Cleanup(server.Close)

	client := newEdgeClient(t, server)

	_, err := client.GetTimeline(context.Background(), nil)
	if err == nil {
		t.Fatal("expected an error for malformed JSON, got nil")
	}

	var decErr *pkgerrs.DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected DecodeError, got %T", err)
	}
	if decErr.Operation != "app.bsky.feed.getTimeline" {
		t.Errorf("operation = %q, want the endpoint name", decErr.Operation)
	}
}

// TestEmptyResponse checks that a completely empty 200 body is a decode
// error rather than a silent nil payload.
func TestEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client := newEdgeClient(t, server)

	_, err := client.GetTimeline(context.Background(), nil)
	if err == nil {
		t.Fatal("expected an error for empty body, got nil")
	}

	var decErr *pkgerrs.DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected DecodeError, got %T", err)
	}
}

// TestHTMLErrorPage checks that a proxy-style HTML error keeps its raw body
// on the API error even though it is not an XRPC error document.
func TestHTMLErrorPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html><body><h1>502 Bad Gateway</h1></body></html>`))
	}))
	t.Cleanup(server.Close)

	client := newEdgeClient(t, server)

	_, err := client.GetTimeline(context.Background(), nil)
	if err == nil {
		t.Fatal("expected an error for 502 response, got nil")
	}

	var apiErr *pkgerrs.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status code = %d, want 502", apiErr.StatusCode)
	}
	if apiErr.ErrorCode != "" {
		t.Errorf("expected no error code for HTML body, got %q", apiErr.ErrorCode)
	}
	if !strings.Contains(apiErr.Body, "Bad Gateway") {
		t.Errorf("expected raw body preserved, got %q", apiErr.Body)
	}
}

// TestErrorBodyWithExtraFields checks that an XRPC error document carrying
// fields beyond error and message still decodes the standard pair.
func TestErrorBodyWithExtraFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"RateLimitExceeded","message":"too many requests","retryAfter":30}`))
	}))
	t.Cleanup(server.Close)

	client := newEdgeClient(t, server)

	_, err := client.GetTimeline(context.Background(), nil)

	var apiErr *pkgerrs.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.ErrorCode != "RateLimitExceeded" {
		t.Errorf("error code = %q, want RateLimitExceeded", apiErr.ErrorCode)
	}
	if apiErr.Message != "too many requests" {
		t.Errorf("message = %q, want too many requests", apiErr.Message)
	}
	if !strings.Contains(apiErr.Body, "retryAfter") {
		t.Errorf("expected full body preserved, got %q", apiErr.Body)
	}
}
