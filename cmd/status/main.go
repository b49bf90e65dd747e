// Command status inspects a saved session file without contacting a server.
//
// It reports the account the session belongs to and when its access token
// expires. The expiry is informational only; nothing refreshes the token,
// and an expired session simply needs a new login.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"

	bsky "github.com/jamesprial/go-bluesky-api-wrapper"
)

type options struct {
	SessionFile string `short:"f" long:"session-file" description:"session file to inspect (default session.json)"`
}

func main() {
	opts := &options{}
	if _, err := flags.Parse(opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}
	if opts.SessionFile == "" {
		opts.SessionFile = bsky.DefaultSessionFile
	}

	sess, err := bsky.LoadSession(opts.SessionFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load session: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Session file:  %s\n", opts.SessionFile)
	fmt.Printf("Handle:        %s\n", orUnknown(sess.Handle()))
	fmt.Printf("DID:           %s\n", orUnknown(sess.DID()))

	if _, ok := sess.AccessToken(); !ok {
		fmt.Println("Access token:  none (run login to create a session)")
		os.Exit(1)
	}
	fmt.Println("Access token:  present")

	if _, ok := sess.RefreshToken(); ok {
		fmt.Println("Refresh token: present")
	}

	expiry, err := sess.AccessTokenExpiry()
	if err != nil {
		fmt.Printf("Token expiry:  unknown (%v)\n", err)
		return
	}

	fmt.Printf("Token expiry:  %s\n", expiry.Format(time.RFC3339))
	if time.Now().After(expiry) {
		fmt.Println("The access token has expired; run login again.")
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "(unknown)"
	}
	return s
}
