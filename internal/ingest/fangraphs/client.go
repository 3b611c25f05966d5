// Package fangraphs fetches season batting and pitching leaderboards and
// parses them into per-player stat rows.
package fangraphs

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

const (
	// BaseURL for Fangraphs leaderboards
	BaseURL = "https://www.fangraphs.com/leaders.aspx"

	// UserAgent for requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval to stay under the site's rate limits
	MinRequestInterval = 2 * time.Second

	cacheTTL = 12 * time.Hour
)

// Cache stores raw leaderboard HTML between runs. Season leaderboards are
// slow to fetch and change at most daily.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Client fetches leaderboards over plain HTTP, falling back to a headless
// browser render when the site blocks the request.
type Client struct {
	baseURL     string
	http        *http.Client
	cache       Cache
	lastRequest time.Time
	interval    time.Duration

	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewClient creates a leaderboard client. cache may be nil, in which case
// every call fetches.
func NewClient(baseURL string, cache Cache) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 60 * time.Second},
		cache:    cache,
		interval: MinRequestInterval,
		allocCtx: allocCtx,
		cancel:   cancel,
	}
}

// Close releases the headless browser allocator.
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// BattingStats fetches the season batting leaderboard, all qualified and
// unqualified batters, in leaderboard order.
func (c *Client) BattingStats(ctx context.Context, year int) ([]StatRow, error) {
	return c.leaderboard(ctx, "bat", year)
}

// PitchingStats fetches the season pitching leaderboard.
func (c *Client) PitchingStats(ctx context.Context, year int) ([]StatRow, error) {
	return c.leaderboard(ctx, "pit", year)
}

func (c *Client) leaderboard(ctx context.Context, stats string, year int) ([]StatRow, error) {
	html, err := c.fetchHTML(ctx, stats, year)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing leaderboard HTML: %w", err)
	}

	rows, err := ParseLeaderboard(doc)
	if err != nil {
		return nil, err
	}

	log.Printf("[fangraphs] ✓ Got %d %s rows for %d", len(rows), stats, year)
	return rows, nil
}

func (c *Client) fetchHTML(ctx context.Context, stats string, year int) (string, error) {
	cacheKey := fmt.Sprintf("fangraphs:%s:%d", stats, year)
	if c.cache != nil {
		if html, err := c.cache.Get(ctx, cacheKey); err == nil && html != "" {
			log.Printf("[fangraphs] Using cached %s leaderboard for %d", stats, year)
			return html, nil
		}
	}

	c.rateLimit()
	url := fmt.Sprintf("%s?pos=all&stats=%s&lg=all&qual=1&season=%d&season1=%d&ind=0&page=1_2000", c.baseURL, stats, year, year)

	html, err := c.fetchPlain(ctx, url)
	if err != nil || !strings.Contains(html, "<table") {
		// The site intermittently blocks bare HTTP clients; a rendered
		// browser fetch gets through.
		log.Printf("[fangraphs] Plain fetch failed (%v), retrying with headless browser", err)
		html, err = c.fetchRendered(ctx, url)
		if err != nil {
			return "", fmt.Errorf("fetching %s leaderboard for %d: %w", stats, year, err)
		}
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, html, cacheTTL); err != nil {
			log.Printf("[fangraphs] ⚠ Could not cache leaderboard: %v", err)
		}
	}
	return html, nil
}

func (c *Client) rateLimit() {
	if !c.lastRequest.IsZero() {
		if elapsed := time.Since(c.lastRequest); elapsed < c.interval {
			time.Sleep(c.interval - elapsed)
		}
	}
	c.lastRequest = time.Now()
}

func (c *Client) fetchPlain(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("leaderboard returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) fetchRendered(ctx context.Context, url string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, 120*time.Second)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`table`, chromedp.ByQuery),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp error: %w", err)
	}
	if html == "" {
		return "", fmt.Errorf("empty HTML content returned")
	}
	return html, nil
}
