package commands

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

var AuthoriseCmd = Authorise{
	workdir:     DEFAULT_WORKDIR,
	credentials: DEFAULT_CREDENTIALS,
}

type Authorise struct {
	workdir     string
	credentials string
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises smartsheet-backup to upload backup files to Google Drive"
}

func (cmd *Authorise) Usage() string {
	return "--credentials <file>"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options] --credentials <file>\n", APP)
	fmt.Println()
	fmt.Println("  Authorises smartsheet-backup to upload backup files to Google Drive and caches the")
	fmt.Println("  authorisation tokens in the working directory")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    smartsheet-backup authorise --credentials "credentials.json"`)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("authorise", flag.ExitOnError)

	flagset.StringVar(&cmd.workdir, "workdir", cmd.workdir, "Directory for working files (Google Drive tokens)")
	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the Google 'credentials.json' file")

	return flagset
}

func (cmd *Authorise) Execute(args ...any) error {
	ctx, _ := parse(args...)

	if strings.TrimSpace(cmd.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(cmd.workdir) == "" {
		return fmt.Errorf("--workdir is a required option")
	}

	if err := authenticate(ctx, cmd.credentials, DRIVE, cmd.workdir); err != nil {
		return fmt.Errorf("authorisation error (%v)", err)
	}

	return nil
}

// authenticate runs the OAuth2 'installed application' flow with a loopback redirect and saves
// the resulting tokens.
func authenticate(ctx context.Context, credentials, scope, workdir string) error {
	config, err := getOAuth2Config(credentials, scope)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}

	config.RedirectURL = fmt.Sprintf("http://%v/", listener.Addr())

	state := "state-token"
	authorised := make(chan string, 1)
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, rq *http.Request) {
		code := rq.FormValue("code")

		if rq.FormValue("state") != state || code == "" {
			http.Error(w, "Invalid authorisation response", http.StatusBadRequest)
			return
		}

		fmt.Fprintln(w, "smartsheet-backup authorised - you can close this window")

		select {
		case authorised <- code:
		default:
		}
	})

	srv := &http.Server{
		Handler: mux,
	}

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			warnf("%v", err)
		}
	}()

	defer srv.Shutdown(context.Background())

	fmt.Println()
	fmt.Println("Open the following link in your browser to authorise Google Drive access:")
	fmt.Println()
	fmt.Printf("  %v\n", config.AuthCodeURL(state, oauth2.AccessTypeOffline))
	fmt.Println()

	select {
	case <-ctx.Done():
		warnf("Authorisation cancelled")
		return ctx.Err()

	case code := <-authorised:
		token, err := config.Exchange(ctx, code)
		if err != nil {
			return fmt.Errorf("unable to retrieve token from web (%v)", err)
		}

		tokens := tokensFile(credentials, workdir)
		if err := saveToken(tokens, token); err != nil {
			return err
		}

		infof("Saved Google Drive authorisation tokens to %v", tokens)
	}

	return nil
}
