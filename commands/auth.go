package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const DRIVE = "https://www.googleapis.com/auth/drive.file"

// authorize returns an HTTP client using the Google tokens cached by the 'authorise' command.
func authorize(credentials, scope, workdir string) (*http.Client, error) {
	config, err := getOAuth2Config(credentials, scope)
	if err != nil {
		return nil, err
	}

	tokens := tokensFile(credentials, workdir)
	token, err := tokenFromFile(tokens)
	if err != nil {
		return nil, fmt.Errorf("no Google authorisation tokens in %v - run '%v authorise' first (%v)", tokens, APP, err)
	}

	return config.Client(context.Background(), token), nil
}

func getOAuth2Config(credentials, scope string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	return google.ConfigFromJSON(b, scope)
}

// tokensFile returns the path of the tokens file for a credentials file e.g. <workdir>/.google/credentials.drive
func tokensFile(credentials, workdir string) string {
	_, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	return filepath.Join(workdir, ".google", fmt.Sprintf("%s.drive", name))
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := oauth2.Token{}
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, err
	}

	return &token, nil
}

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth2 token (%v)", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
