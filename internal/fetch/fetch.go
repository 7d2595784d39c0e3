// Package fetch resolves a URL to prompt material. It is deliberately
// coarse: one GET, scripts and markup stripped, whitespace collapsed.
// It is not an HTML parsing engine.
package fetch

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Document is the reduced content of a fetched page.
type Document struct {
	// Title is the page title, empty when none was found.
	Title string

	// Text is the visible text with tags dropped and whitespace
	// collapsed.
	Text string
}

// Config controls the fetch client.
type Config struct {
	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration

	// MaxBytes caps how much of the response body is read.
	MaxBytes int64

	// Retry controls how transient failures are retried.
	Retry RetryConfig
}

// DefaultConfig returns the standard fetch settings.
func DefaultConfig() Config {
	return Config{
		Timeout:  20 * time.Second,
		MaxBytes: 2 << 20, // 2 MiB
		Retry:    DefaultRetryConfig(),
	}
}

// Client fetches pages with retries and reduces them to text.
type Client struct {
	http     *retryClient
	maxBytes int64
}

// NewClient creates a fetch client from cfg. Zero fields fall back to
// DefaultConfig values.
func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = def.MaxBytes
	}
	return &Client{
		http:     newRetryClient(&http.Client{Timeout: cfg.Timeout}, cfg.Retry),
		maxBytes: cfg.MaxBytes,
	}
}

// ValidateURL checks that rawurl is an absolute http(s) URL with a
// host. Called before any network activity.
func ValidateURL(rawurl string) error {
	u, err := url.Parse(strings.TrimSpace(rawurl))
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", rawurl, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme %q (need http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", rawurl)
	}
	return nil
}

// Fetch downloads the page at rawurl and reduces it to a Document.
func (c *Client) Fetch(ctx context.Context, rawurl string) (*Document, error) {
	if err := ValidateURL(rawurl); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSpace(rawurl), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "quizforge")
	req.Header.Set("Accept", "text/html, text/plain;q=0.9, */*;q=0.5")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawurl, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", rawurl, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawurl, err)
	}

	doc := Reduce(string(body))
	if doc.Text == "" {
		return nil, fmt.Errorf("fetch %s: no readable text content", rawurl)
	}
	return doc, nil
}

var (
	titleRe   = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	dropRe    = regexp.MustCompile(`(?is)<(script|style|noscript|template)\b[^>]*>.*?</(script|style|noscript|template)>`)
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	tagRe     = regexp.MustCompile(`(?s)<[^>]*>`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// Reduce strips a raw HTML (or plain text) body down to a Document.
func Reduce(body string) *Document {
	var title string
	if m := titleRe.FindStringSubmatch(body); m != nil {
		title = collapse(html.UnescapeString(m[1]))
	}

	text := dropRe.ReplaceAllString(body, " ")
	text = commentRe.ReplaceAllString(text, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	text = collapse(text)

	return &Document{Title: title, Text: text}
}

func collapse(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
