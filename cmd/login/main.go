// Command login creates a Bluesky session and saves it for later use by the
// other commands.
//
// Configuration comes from the environment (PDSHOST, BLUESKY_HANDLE,
// BLUESKY_PASSWORD), optionally pre-populated from a .env file.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	bsky "github.com/jamesprial/go-bluesky-api-wrapper"
)

type options struct {
	EnvFile     string `short:"e" long:"env-file" description:"env file to pre-populate configuration from (default .env)"`
	SessionFile string `short:"o" long:"session-file" description:"where to save the session record (default session.json)"`
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

	ctx := context.Background()

	log.Info().Str("host", config.Host).Str("handle", config.Handle).Msg("creating session")
	sess, err := client.CreateSession(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session")
	}

	if err := bsky.SaveSession(sess, opts.SessionFile); err != nil {
		log.Fatal().Err(err).Msg("failed to save session")
	}
	log.Info().Str("path", opts.SessionFile).Msg("session saved")

	fmt.Printf("Logged in as %s (%s)\n", sess.Handle(), sess.DID())
	if expiry, err := sess.AccessTokenExpiry(); err == nil {
		fmt.Printf("Access token expires at %s\n", expiry.Format(time.RFC3339))
	}
}
