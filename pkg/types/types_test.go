package types

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSession_AccessToken(t *testing.T) {
	tests := []struct {
		name      string
		session   Session
		wantToken string
		wantOK    bool
	}{
		{
			name:      "accessJwt present",
			session:   Session{"accessJwt": "token-a", "jwt": "token-b"},
			wantToken: "token-a",
			wantOK:    true,
		},
		{
			name:      "falls back to jwt",
			session:   Session{"jwt": "token-b"},
			wantToken: "token-b",
			wantOK:    true,
		},
		{
			name:      "empty accessJwt falls back to jwt",
			session:   Session{"accessJwt": "", "jwt": "token-b"},
			wantToken: "token-b",
			wantOK:    true,
		},
		{
			name:      "non-string accessJwt falls back to jwt",
			session:   Session{"accessJwt": 42, "jwt": "token-b"},
			wantToken: "token-b",
			wantOK:    true,
		},
		{
			name:    "both empty",
			session: Session{"accessJwt": "", "jwt": ""},
			wantOK:  false,
		},
		{
			name:    "neither present",
			session: Session{"handle": "alice.bsky.social"},
			wantOK:  false,
		},
		{
			name:    "nil session",
			session: nil,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := tt.session.AccessToken()
			if ok != tt.wantOK {
				t.Fatalf("AccessToken() ok = %v, want %v", ok, tt.wantOK)
			}
			if token != tt.wantToken {
				t.Errorf("AccessToken() = %q, want %q", token, tt.wantToken)
			}
		})
	}
}

func TestSession_RefreshToken(t *testing.T) {
	tests := []struct {
		name      string
		session   Session
		wantToken string
		wantOK    bool
	}{
		{
			name:      "present",
			session:   Session{"refreshJwt": "refresh-token"},
			wantToken: "refresh-token",
			wantOK:    true,
		},
		{
			name:    "absent",
			session: Session{"accessJwt": "token-a"},
			wantOK:  false,
		},
		{
			name:    "empty string",
			session: Session{"refreshJwt": ""},
			wantOK:  false,
		},
		{
			name:    "non-string",
			session: Session{"refreshJwt": true},
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := tt.session.RefreshToken()
			if ok != tt.wantOK {
				t.Fatalf("RefreshToken() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && token != tt.wantToken {
				t.Errorf("RefreshToken() = %q, want %q", token, tt.wantToken)
			}
		})
	}
}

func TestSession_HandleAndDID(t *testing.T) {
	sess := Session{
		"handle": "alice.bsky.social",
		"did":    "did:plc:z72i7hdynmk6r22z27h6tvur",
	}

	if got := sess.Handle(); got != "alice.bsky.social" {
		t.Errorf("Handle() = %q, want %q", got, "alice.bsky.social")
	}
	if got := sess.DID(); got != "did:plc:z72i7hdynmk6r22z27h6tvur" {
		t.Errorf("DID() = %q, want %q", got, "did:plc:z72i7hdynmk6r22z27h6tvur")
	}

	empty := Session{}
	if got := empty.Handle(); got != "" {
		t.Errorf("Handle() on empty session = %q, want empty", got)
	}
	if got := empty.DID(); got != "" {
		t.Errorf("DID() on empty session = %q, want empty", got)
	}

	nonString := Session{"handle": 7, "did": []any{"x"}}
	if got := nonString.Handle(); got != "" {
		t.Errorf("Handle() on non-string field = %q, want empty", got)
	}
	if got := nonString.DID(); got != "" {
		t.Errorf("DID() on non-string field = %q, want empty", got)
	}
}

// signedToken builds a real JWT carrying the given claims, signed with a
// throwaway key. Expiry decoding never verifies signatures, so the key does
// not matter.
func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func TestSession_AccessTokenExpiry(t *testing.T) {
	expiry := time.Unix(1735689600, 0) // 2025-01-01T00:00:00Z

	t.Run("returns exp claim", func(t *testing.T) {
		sess := Session{"accessJwt": signedToken(t, jwt.MapClaims{"exp": expiry.Unix()})}

		got, err := sess.AccessTokenExpiry()
		if err != nil {
			t.Fatalf("AccessTokenExpiry() error = %v", err)
		}
		if got.Unix() != expiry.Unix() {
			t.Errorf("AccessTokenExpiry() = %v, want %v", got, expiry)
		}
	})

	t.Run("reads token from jwt fallback key", func(t *testing.T) {
		sess := Session{"jwt": signedToken(t, jwt.MapClaims{"exp": expiry.Unix()})}

		got, err := sess.AccessTokenExpiry()
		if err != nil {
			t.Fatalf("AccessTokenExpiry() error = %v", err)
		}
		if got.Unix() != expiry.Unix() {
			t.Errorf("AccessTokenExpiry() = %v, want %v", got, expiry)
		}
	})

	t.Run("token without exp claim", func(t *testing.T) {
		sess := Session{"accessJwt": signedToken(t, jwt.MapClaims{"sub": "did:plc:abc"})}

		_, err := sess.AccessTokenExpiry()
		if err == nil {
			t.Fatal("expected an error for token without exp claim, got nil")
		}
		if !strings.Contains(err.Error(), "no exp claim") {
			t.Errorf("expected error about missing exp claim, got %v", err)
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		sess := Session{"accessJwt": "not-a-jwt"}

		_, err := sess.AccessTokenExpiry()
		if err == nil {
			t.Fatal("expected an error for malformed token, got nil")
		}
	})

	t.Run("no token in session", func(t *testing.T) {
		sess := Session{"handle": "alice.bsky.social"}

		_, err := sess.AccessTokenExpiry()
		if err == nil {
			t.Fatal("expected an error for session without token, got nil")
		}
		if !strings.Contains(err.Error(), "no access token") {
			t.Errorf("expected error about missing token, got %v", err)
		}
	})
}
