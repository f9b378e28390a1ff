// Package smartsheet is a minimal read-only client for the Smartsheet REST API, covering the
// calls needed to back up a sheet: list sheets, get sheet and get cell history.
package smartsheet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/net/context/ctxhttp"
	"golang.org/x/oauth2"
)

const (
	DefaultURL     = "https://api.smartsheet.com/2.0"
	DefaultTimeout = 30 * time.Second
)

type Client struct {
	url     string
	timeout time.Duration
	base    *http.Client
	http    *http.Client
}

type Option func(*Client)

// WithURL overrides the API base URL.
func WithURL(url string) Option {
	return func(c *Client) {
		c.url = strings.TrimSuffix(url, "/")
	}
}

// WithTimeout sets the timeout applied to each API call. Zero disables the timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient sets the underlying HTTP client used by the OAuth2 transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.base = client
		}
	}
}

// NewClient returns a client that authenticates every request with the access token.
func NewClient(token string, options ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("missing Smartsheet access token")
	}

	c := Client{
		url:     DefaultURL,
		timeout: DefaultTimeout,
		base:    http.DefaultClient,
	}

	for _, option := range options {
		option(&c)
	}

	if u, err := url.Parse(c.url); err != nil {
		return nil, fmt.Errorf("invalid Smartsheet API URL '%v' (%v)", c.url, err)
	} else if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid Smartsheet API URL '%v'", c.url)
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.base)
	tokens := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})

	c.http = oauth2.NewClient(ctx, tokens)

	return &c, nil
}

// ListSheets returns every sheet visible to the access token.
func (c *Client) ListSheets(ctx context.Context) ([]SheetSummary, error) {
	query := url.Values{}
	query.Set("includeAll", "true")

	b, err := c.get(ctx, "/sheets", query)
	if err != nil {
		return nil, err
	}

	var response indexResult[SheetSummary]
	if err := json.Unmarshal(b, &response); err != nil {
		return nil, fmt.Errorf("invalid 'list sheets' response (%v)", err)
	}

	return response.Data, nil
}

// GetSheet retrieves a sheet with its columns and rows, plus any of the optional 'include' fields.
func (c *Client) GetSheet(ctx context.Context, id int64, include ...string) (*Sheet, error) {
	query := url.Values{}
	if len(include) > 0 {
		query.Set("include", strings.Join(include, ","))
	}

	b, err := c.get(ctx, fmt.Sprintf("/sheets/%v", id), query)
	if err != nil {
		return nil, err
	}

	var sheet Sheet
	if err := json.Unmarshal(b, &sheet); err != nil {
		return nil, fmt.Errorf("invalid 'get sheet' response (%v)", err)
	}

	return &sheet, nil
}

// GetCellHistory returns the history of a single cell exactly as received from the API.
func (c *Client) GetCellHistory(ctx context.Context, sheetID, rowID, columnID int64) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("includeAll", "true")

	path := fmt.Sprintf("/sheets/%v/rows/%v/columns/%v/history", sheetID, rowID, columnID)

	b, err := c.get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(b) {
		return nil, fmt.Errorf("invalid 'cell history' response for row %v, column %v", rowID, columnID)
	}

	return json.RawMessage(b), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	uri := c.url + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}

	rq, err := http.NewRequest(http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}

	rq.Header.Set("Accept", "application/json")

	response, err := ctxhttp.Do(ctx, c.http, rq)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, newAPIError(response.StatusCode, body)
	}

	return body, nil
}
