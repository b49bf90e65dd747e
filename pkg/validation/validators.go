// Package validation provides format checks for AT protocol identifiers
// used in requests: handles, DIDs, and NSID endpoint names. Responses are
// never validated; the wrapper passes payloads through opaquely.
package validation

import (
	"regexp"
	"strings"
)

// Length limits from the AT protocol identifier specs.
const (
	maxHandleLength = 253
	maxDIDLength    = 2048
	maxNSIDLength   = 317
)

// Regular expressions for validating AT protocol identifier formats
var (
	// handleRegex matches handles: two or more dot-separated DNS labels,
	// each 1-63 chars of [a-zA-Z0-9-] not starting or ending with a hyphen,
	// with the final label starting with a letter (e.g. "alice.bsky.social")
	handleRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)

	// didRegex matches DIDs: "did:" + lowercase method + method-specific
	// identifier that does not end in ':' or '%' (e.g. "did:plc:z72i7hdynmk6r22z27h6tvur")
	didRegex = regexp.MustCompile(`^did:[a-z]+:[a-zA-Z0-9._:%-]*[a-zA-Z0-9._-]$`)

	// nsidRegex matches NSIDs: a reversed domain authority followed by a
	// name segment (e.g. "app.bsky.feed.getTimeline")
	nsidRegex = regexp.MustCompile(`^[a-zA-Z]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+\.[a-zA-Z]([a-zA-Z0-9]{0,62})?$`)
)

// IsValidHandle checks if a string is a valid AT protocol handle
func IsValidHandle(s string) bool {
	return s != "" && len(s) <= maxHandleLength && handleRegex.MatchString(s)
}

// IsValidDID checks if a string is a valid DID
func IsValidDID(s string) bool {
	return s != "" && len(s) <= maxDIDLength && didRegex.MatchString(s)
}

// IsValidActor checks if a string identifies an account: a handle or a DID
func IsValidActor(s string) bool {
	return IsValidHandle(s) || IsValidDID(s)
}

// IsValidNSID checks if a string is a valid NSID, the dotted form that
// names every XRPC endpoint
func IsValidNSID(s string) bool {
	return s != "" && len(s) <= maxNSIDLength && nsidRegex.MatchString(s)
}

// NormalizeActor prepares user-supplied actor input for a request: trims
// surrounding whitespace, strips one leading "@", and lowercases handles.
// DIDs keep their case since their identifiers are case-sensitive.
func NormalizeActor(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "@")
	if strings.HasPrefix(s, "did:") {
		return s
	}
	return strings.ToLower(s)
}
