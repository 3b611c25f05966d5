// Package yahoo pulls league structure from the Yahoo Fantasy API: teams,
// standings, rosters, scoring settings, transactions, and weekly matchups.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
)

const (
	// BaseURL for the Yahoo Fantasy v2 API
	BaseURL = "https://fantasysports.yahooapis.com/fantasy/v2"

	authURL  = "https://api.login.yahoo.com/oauth2/request_auth"
	tokenURL = "https://api.login.yahoo.com/oauth2/get_token"
)

// Client handles authenticated Yahoo Fantasy API requests. Tokens come from
// a credentials file on disk and refresh automatically through oauth2.
type Client struct {
	baseURL string
	http    *http.Client
}

// credentials mirrors the oauth2.json layout the league has carried since the
// original setup: app key/secret plus the last issued token pair.
type credentials struct {
	ConsumerKey    string    `json:"consumer_key"`
	ConsumerSecret string    `json:"consumer_secret"`
	AccessToken    string    `json:"access_token"`
	RefreshToken   string    `json:"refresh_token"`
	TokenTime      time.Time `json:"token_time"`
}

// NewClient builds a client from the credentials file. The returned client
// refreshes its access token as needed for the life of the process.
func NewClient(ctx context.Context, baseURL, credentialsPath string) (*Client, error) {
	if baseURL == "" {
		baseURL = BaseURL
	}

	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("reading yahoo credentials: %w", err)
	}

	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parsing yahoo credentials: %w", err)
	}
	if creds.ConsumerKey == "" || creds.RefreshToken == "" {
		return nil, fmt.Errorf("yahoo credentials missing consumer_key or refresh_token")
	}

	conf := &oauth2.Config{
		ClientID:     creds.ConsumerKey,
		ClientSecret: creds.ConsumerSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
	}

	token := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		Expiry:       creds.TokenTime.Add(time.Hour),
	}

	return &Client{
		baseURL: baseURL,
		http:    conf.Client(ctx, token),
	}, nil
}

// NewClientWithHTTP builds a client over a caller-supplied HTTP client, used
// in tests against a stub server.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// getJSON fetches an API resource and decodes the response envelope.
func (c *Client) getJSON(ctx context.Context, resource string) (map[string]any, error) {
	url := fmt.Sprintf("%s/%s?format=json", c.baseURL, resource)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading yahoo response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo returned %d for %s: %s", resp.StatusCode, resource, truncate(body, 200))
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding yahoo response: %w (body: %s)", err, truncate(body, 200))
	}

	return result, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
