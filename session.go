package bsky

import (
	"encoding/json"
	"fmt"
	"os"

	pkgerrs "github.com/jamesprial/go-bluesky-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-bluesky-api-wrapper/pkg/types"
)

// DefaultSessionFile is the session file path the bundled commands use when
// none is given.
const DefaultSessionFile = "session.json"

// sessionFileMode keeps the saved record readable only by the owning user;
// it embeds a bearer token.
const sessionFileMode = 0o600

// SaveSession writes a session record to path as pretty-printed JSON with
// two-space indentation.
//
// The file is overwritten in place with no temp-and-rename step, so a crash
// mid-write can leave a truncated file; LoadSession reports such a file as a
// storage error, and a fresh CreateSession replaces it.
func SaveSession(sess types.Session, path string) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return &pkgerrs.StorageError{Path: path, Operation: "encode", Err: err}
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, sessionFileMode); err != nil {
		return &pkgerrs.StorageError{Path: path, Operation: "write", Err: err}
	}
	return nil
}

// LoadSession reads a session record previously written by SaveSession.
// The record's contents are not validated; whatever the file holds is
// returned as-is.
//
// A missing file, an unreadable file, and malformed JSON all return a
// *errors.StorageError; the wrapped cause tells them apart.
func LoadSession(path string) (types.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &pkgerrs.StorageError{Path: path, Operation: "read", Err: err}
	}

	var sess types.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, &pkgerrs.StorageError{
			Path:      path,
			Operation: "decode",
			Err:       fmt.Errorf("malformed session file: %w", err),
		}
	}
	return sess, nil
}
