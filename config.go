package bsky

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	pkgerrs "github.com/jamesprial/go-bluesky-api-wrapper/pkg/errors"
)

// Environment variables read by LoadConfig.
const (
	// EnvHost names the PDS base URL, e.g. "https://bsky.social".
	EnvHost = "PDSHOST"
	// EnvHandle names the account identifier used for login.
	EnvHandle = "BLUESKY_HANDLE"
	// EnvPassword names the account's app password.
	EnvPassword = "BLUESKY_PASSWORD"
)

// DefaultEnvFile is the env file LoadConfig looks for in the working
// directory.
const DefaultEnvFile = ".env"

// LoadEnvFile parses a simple KEY=VALUE-per-line file: blank lines and lines
// starting with "#" are ignored, each remaining line is split at its first
// "=", and whitespace is trimmed from both key and value. There is no quote
// or escape processing; a quoted value keeps its quotes. Lines without "="
// are skipped.
//
// A missing file is not an error and yields an empty map, so callers can
// treat the file as optional.
func LoadEnvFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, &pkgerrs.ConfigError{Message: fmt.Sprintf("failed to read env file %s: %v", path, err)}
	}

	env := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		env[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}
	return env, nil
}

// LoadConfig builds a Config from the process environment, optionally
// pre-populated from DefaultEnvFile in the working directory. Values set in
// the process environment take precedence over the file, and the loader
// never writes to the process environment.
//
// Required variables: PDSHOST, BLUESKY_HANDLE, BLUESKY_PASSWORD. A variable
// that is absent (or empty) in both sources fails with a config error naming
// it, before any network activity.
func LoadConfig() (*Config, error) {
	return LoadConfigFromFile(DefaultEnvFile)
}

// LoadConfigFromFile is LoadConfig with an explicit env file path.
func LoadConfigFromFile(path string) (*Config, error) {
	fileEnv, err := LoadEnvFile(path)
	if err != nil {
		return nil, err
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		return fileEnv[key]
	}

	for _, key := range []string{EnvHost, EnvHandle, EnvPassword} {
		if lookup(key) == "" {
			return nil, &pkgerrs.ConfigError{Field: key, Message: "missing required env var"}
		}
	}

	return &Config{
		Host:     lookup(EnvHost),
		Handle:   lookup(EnvHandle),
		Password: lookup(EnvPassword),
	}, nil
}
