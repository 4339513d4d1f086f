// Package mediawiki implements page retrieval and search against the
// MediaWiki Action API served by Wikipedia.
package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/wikicollect"
)

// DefaultLanguage is the Wikipedia language edition used when none is set.
const DefaultLanguage = "en"

// DefaultTimeout is the default timeout for API requests.
const DefaultTimeout = 10 * time.Second

// MaxSearchLimit is the largest srlimit the API accepts for regular clients.
const MaxSearchLimit = 500

// Ensure Client implements the domain interfaces at compile time.
var (
	_ wikicollect.ContentFetcher = (*Client)(nil)
	_ wikicollect.Searcher       = (*Client)(nil)
)

// Client talks to one Wikipedia language edition.
type Client struct {
	userAgent string
	language  string
	baseURL   string
	format    wikicollect.ContentFormat
	timeout   time.Duration
	client    *http.Client

	cleaner   wikicollect.Cleaner
	converter wikicollect.Converter
}

// Option configures a Client.
type Option func(*Client)

// WithLanguage sets the language edition, e.g. "en" or "fr".
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

// WithBaseURL overrides the API endpoint. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithTimeout sets the timeout for API requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets the HTTP client. Its timeout takes precedence over
// WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithMarkdown makes FetchPage return Markdown bodies. HTML extracts are
// passed through cleaner, when set, and then converter.
func WithMarkdown(cleaner wikicollect.Cleaner, converter wikicollect.Converter) Option {
	return func(c *Client) {
		c.format = wikicollect.FormatMarkdown
		c.cleaner = cleaner
		c.converter = converter
	}
}

// NewClient creates a Client. userAgent identifies the caller to the API
// and is required.
func NewClient(userAgent string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(userAgent) == "" {
		return nil, wikicollect.Errorf(wikicollect.ECONFIG, "client identifier (user agent) required")
	}

	c := &Client{
		userAgent: userAgent,
		language:  DefaultLanguage,
		format:    wikicollect.FormatText,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.format == wikicollect.FormatMarkdown && c.converter == nil {
		return nil, wikicollect.Errorf(wikicollect.ECONFIG, "markdown format requires a converter")
	}
	if c.baseURL == "" {
		c.baseURL = fmt.Sprintf("https://%s.wikipedia.org/w/api.php", c.language)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}

	return c, nil
}

// Language returns the configured language edition.
func (c *Client) Language() string {
	return c.language
}

// FetchPage retrieves the extract of the named page. The API treats "|"
// as a title separator, so names containing it return EINVALID.
func (c *Client) FetchPage(ctx context.Context, pageName string) (*wikicollect.Page, error) {
	if strings.TrimSpace(pageName) == "" {
		return nil, wikicollect.Errorf(wikicollect.EINVALID, "page name required")
	}
	if strings.Contains(pageName, "|") {
		return nil, wikicollect.Errorf(wikicollect.EINVALID, "page name %q must not contain \"|\"", pageName)
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("titles", pageName)
	params.Set("redirects", "1")
	if c.format == wikicollect.FormatText {
		params.Set("explaintext", "1")
		params.Set("exsectionformat", "wiki")
	}

	var resp extractsResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, wikicollect.WrapError(wikicollect.EREMOTE, err, "fetch page %q", pageName)
	}

	if len(resp.Query.Pages) == 0 {
		return nil, wikicollect.Errorf(wikicollect.EREMOTE, "fetch page %q: empty response", pageName)
	}
	p := resp.Query.Pages[0]
	if p.Missing || p.Invalid {
		return nil, wikicollect.Errorf(wikicollect.EREMOTE, "fetch page %q: page does not exist", pageName)
	}

	body := p.Extract
	if c.format == wikicollect.FormatMarkdown {
		md, err := c.toMarkdown(body)
		if err != nil {
			return nil, wikicollect.WrapError(wikicollect.EREMOTE, err, "convert page %q", pageName)
		}
		body = md
	}

	return &wikicollect.Page{
		Name:  pageName,
		Title: wikicollect.NormalizeTitle(pageName),
		Body:  body,
	}, nil
}

func (c *Client) toMarkdown(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	if c.cleaner != nil {
		cleaned, err := c.cleaner.Clean(html)
		if err != nil {
			return "", err
		}
		html = cleaned
	}
	// Stub extracts can be all markup that the cleaner removes.
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	return c.converter.Convert(html)
}

// Search runs a full-text search and returns up to limit entries.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]wikicollect.SearchResultEntry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, wikicollect.Errorf(wikicollect.EINVALID, "search query required")
	}
	if limit < 1 || limit > MaxSearchLimit {
		return nil, wikicollect.Errorf(wikicollect.EINVALID, "search limit must be between 1 and %d", MaxSearchLimit)
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(limit))

	var resp searchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, wikicollect.WrapError(wikicollect.EREMOTE, err, "search %q", query)
	}

	entries := make([]wikicollect.SearchResultEntry, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		entries = append(entries, wikicollect.SearchResultEntry{
			PageName:  strings.ReplaceAll(hit.Title, " ", "_"),
			PageID:    hit.PageID,
			Size:      hit.Size,
			WordCount: hit.WordCount,
		})
	}
	return entries, nil
}

// get issues one GET request and decodes the JSON response into v.
func (c *Client) get(ctx context.Context, params url.Values, v any) error {
	params.Set("format", "json")
	params.Set("formatversion", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	// API failures arrive as HTTP 200 with an "error" object.
	var env struct {
		Error *apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if env.Error != nil {
		return env.Error
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Info)
}

type extractsResponse struct {
	Query struct {
		Pages []struct {
			PageID  int    `json:"pageid"`
			Title   string `json:"title"`
			Extract string `json:"extract"`
			Missing bool   `json:"missing"`
			Invalid bool   `json:"invalid"`
		} `json:"pages"`
	} `json:"query"`
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title     string `json:"title"`
			PageID    int    `json:"pageid"`
			Size      int    `json:"size"`
			WordCount int    `json:"wordcount"`
		} `json:"search"`
	} `json:"query"`
}
