// Command feeds prints the authenticated account's timeline and follows,
// then interactively prompts for an author feed and a post search. Payloads
// are printed as indented JSON exactly as the server returned them.
//
// Run login first; feeds reuses the saved session and never authenticates
// on its own.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	bsky "github.com/jamesprial/go-bluesky-api-wrapper"
	"github.com/jamesprial/go-bluesky-api-wrapper/pkg/types"
)

type options struct {
	EnvFile     string `short:"e" long:"env-file" description:"env file to pre-populate configuration from (default .env)"`
	SessionFile string `short:"f" long:"session-file" description:"session file to reuse (default session.json)"`
	Limit       int    `short:"l" long:"limit" description:"items to request per feed" default:"20"`
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

	timeline, err := client.GetTimeline(ctx, &types.TimelineRequest{Pagination: pagination})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get timeline")
	}
	printSection("Timeline", timeline)

	follows, err := client.GetFollows(ctx, &types.FollowsRequest{Actor: config.Handle, Pagination: pagination})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get follows")
	}
	printSection("Follows", follows)

	scanner := bufio.NewScanner(os.Stdin)

	actor := prompt(scanner, "Enter an actor handle or DID for author feed: ")
	if actor != "" {
		feed, err := client.GetAuthorFeed(ctx, &types.AuthorFeedRequest{Actor: actor, Pagination: pagination})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to get author feed")
		}
		printSection("Author Feed for "+actor, feed)
	}

	query := prompt(scanner, "Enter search query (or blank to skip): ")
	if query != "" {
		results, err := client.SearchPosts(ctx, &types.SearchPostsRequest{Query: query, Pagination: pagination})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to search posts")
		}
		printSection("Search Posts ("+query+")", results)
	}
}

// printSection writes a payload to stdout under a "== title ==" header.
func printSection(title string, payload types.Payload) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to encode payload")
	}
	fmt.Printf("== %s ==\n%s\n", title, data)
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}
