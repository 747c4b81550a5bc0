// Package oembed fetches tweet embed data through fallback CORS proxies.
package oembed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/metrics"
	"github.com/MrSnakeDoc/stash/internal/utils"
)

// ErrAllProxiesFailed is returned once every configured proxy has been
// tried without success. Callers treat it as a signal to fall back to
// manual entry, never as a fatal condition.
var ErrAllProxiesFailed = errors.New("could not fetch tweet data")

// DefaultProxies are the relay endpoints tried in order of preference.
// Each is a prefix the URL-encoded target is appended to.
var DefaultProxies = []string{
	"https://api.allorigins.win/raw?url=",
	"https://corsproxy.io/?",
	"https://api.codetabs.com/v1/proxy?quest=",
}

const oembedEndpoint = "https://publish.twitter.com/oembed"

// maxPayloadBytes caps how much of a proxy response is read.
const maxPayloadBytes = 1 << 20

// Payload is the oEmbed response describing a tweet for display.
type Payload struct {
	HTML       string `json:"html"`
	AuthorName string `json:"author_name"`
	AuthorURL  string `json:"author_url"`
	URL        string `json:"url"`
}

// Client retrieves oEmbed payloads with sequential proxy fallback.
type Client struct {
	proxies []string
	http    *http.Client
	timeout time.Duration
	logger  logger.Logger
}

// New creates a Client. proxies defaults to DefaultProxies when empty;
// timeout bounds each individual proxy attempt so an unresponsive relay
// cannot suspend the fetch indefinitely.
func New(proxies []string, timeout time.Duration, log logger.Logger) *Client {
	if len(proxies) == 0 {
		proxies = DefaultProxies
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		proxies: proxies,
		http:    &http.Client{},
		timeout: timeout,
		logger:  log,
	}
}

// Fetch retrieves the oEmbed payload for a canonical tweet URL.
// Proxies are tried strictly in order; the first well-formed response
// wins and no further proxies are contacted. There is no retry within a
// single proxy and no parallel racing. After exhausting the list the
// caller receives a single aggregated error wrapping ErrAllProxiesFailed.
func (c *Client) Fetch(ctx context.Context, tweetURL string) (*Payload, error) {
	target := fmt.Sprintf("%s?url=%s&omit_script=true", oembedEndpoint, url.QueryEscape(tweetURL))

	for _, proxy := range c.proxies {
		metrics.FetchAttempts.WithLabelValues(proxy).Inc()

		payload, err := c.attempt(ctx, proxy, target)
		if err == nil {
			return payload, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		metrics.FetchFailures.WithLabelValues(proxy).Inc()
		c.logger.Debug("proxy attempt failed",
			logger.String("proxy", proxy),
			logger.Error(err))
	}

	metrics.FetchExhausted.Inc()
	return nil, fmt.Errorf("%w: all %d proxies failed", ErrAllProxiesFailed, len(c.proxies))
}

// attempt issues one request through one proxy.
func (c *Client) attempt(ctx context.Context, proxy, target string) (*Payload, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, proxy+url.QueryEscape(target), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Proxies relay whatever the upstream gave them, so probe before
	// decoding: a well-formed payload must carry an html fragment.
	if !gjson.ValidBytes(body) || gjson.GetBytes(body, "html").String() == "" {
		return nil, errors.New("malformed oEmbed payload")
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return &payload, nil
}
