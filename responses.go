package bsky

import "github.com/jamesprial/go-bluesky-api-wrapper/pkg/types"

// NextCursor extracts the continuation token from a query response.
// Listing endpoints include a top-level "cursor" member while more results
// remain; passing it as the next request's Cursor resumes the listing. The
// second return value is false when the payload is not a JSON object, has no
// cursor member, or the member is not a non-empty string.
//
// The wrapper only ever hands cursors back to the caller; following them is
// the caller's loop to write.
func NextCursor(p types.Payload) (string, bool) {
	obj, ok := p.(map[string]any)
	if !ok {
		return "", false
	}
	cursor, ok := obj["cursor"].(string)
	if !ok || cursor == "" {
		return "", false
	}
	return cursor, true
}
