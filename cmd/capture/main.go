// Command capture fetches one small page from each sample feed and writes
// the raw responses to disk as pretty-printed JSON, one file per endpoint.
// The files are handy as fixtures and for eyeballing response shapes.
//
// Run login first; capture reuses the saved session.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	bsky "github.com/jamesprial/go-bluesky-api-wrapper"
	"github.com/jamesprial/go-bluesky-api-wrapper/pkg/types"
)

type options struct {
	EnvFile     string `short:"e" long:"env-file" description:"env file to pre-populate configuration from (default .env)"`
	SessionFile string `short:"f" long:"session-file" description:"session file to reuse (default session.json)"`
	OutDir      string `short:"d" long:"out-dir" description:"directory to write response files into" default:"."`
	Limit       int    `short:"l" long:"limit" description:"items to request per feed" default:"5"`
	Query       string `short:"q" long:"query" description:"search query for the searchPosts capture" default:"bluesky"`
	Verbose     bool   `short:"v" long:"verbose" description:"enable debug logging"`
}

func main() {
	opts := &options{}
	if _, err := flags.Parse(opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}
	if opts.EnvFile == "" {
		opts.EnvFile = bsky.DefaultEnvFile
	}
	if opts.SessionFile == "" {
		opts.SessionFile = bsky.DefaultSessionFile
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if opts.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	config, err := bsky.LoadConfigFromFile(opts.EnvFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	config.Logger = &log.Logger

	client, err := bsky.NewClient(config)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create client")
	}

	sess, err := bsky.LoadSession(opts.SessionFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load session, run login first")
	}
	if err := client.ResumeSession(sess); err != nil {
		log.Fatal().Err(err).Msg("failed to resume session")
	}

	ctx := context.Background()
	pagination := types.Pagination{Limit: opts.Limit}

	captures := []struct {
		name  string
		file  string
		fetch func() (types.Payload, error)
	}{
		{"timeline", "response_timeline.json", func() (types.Payload, error) {
			return client.GetTimeline(ctx, &types.TimelineRequest{Pagination: pagination})
		}},
		{"follows", "response_follows.json", func() (types.Payload, error) {
			return client.GetFollows(ctx, &types.FollowsRequest{Actor: config.Handle, Pagination: pagination})
		}},
		{"author feed", "response_author_feed.json", func() (types.Payload, error) {
			return client.GetAuthorFeed(ctx, &types.AuthorFeedRequest{Actor: config.Handle, Pagination: pagination})
		}},
		{"search posts", "response_search_posts.json", func() (types.Payload, error) {
			return client.SearchPosts(ctx, &types.SearchPostsRequest{Query: opts.Query, Pagination: pagination})
		}},
	}

	for _, capture := range captures {
		payload, err := capture.fetch()
		if err != nil {
			log.Fatal().Err(err).Str("capture", capture.name).Msg("fetch failed")
		}

		path := filepath.Join(opts.OutDir, capture.file)
		if err := writeJSON(path, payload); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("write failed")
		}
		fmt.Printf("Saved %s response to %s\n", capture.name, path)
	}
}

func writeJSON(path string, payload types.Payload) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
