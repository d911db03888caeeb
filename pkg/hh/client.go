package hh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://api.hh.ru/vacancies"
	defaultUserAgent = "HH-User-Agent"
	defaultPerPage   = 100
	defaultMaxPages  = 20
	defaultTimeout   = 30 * time.Second
	maxPerPage       = 100
)

// ErrConnection wraps every transport-level failure: network errors and
// non-2xx responses
var ErrConnection = errors.New("hh: connection failed")

// NewClient instantiates an hh.ru API client
func NewClient(cfg Config) (*Client, error) {
	rawBase := strings.TrimSuffix(cfg.BaseURL, "/")
	if rawBase == "" {
		rawBase = defaultBaseURL
	}
	baseURL, err := url.ParseRequestURI(rawBase)
	if err != nil {
		return nil, fmt.Errorf("hh: parse base url: %w", err)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	perPage := cfg.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		return nil, fmt.Errorf("hh: per_page must not exceed %d, got %d", maxPerPage, perPage)
	}

	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	headers := http.Header{}
	headers.Set("User-Agent", userAgent)

	c := &Client{
		baseURL:    baseURL,
		headers:    headers,
		perPage:    perPage,
		maxPages:   maxPages,
		httpClient: httpClient,
	}
	c.lastParams = c.searchParams("", 0)
	return c, nil
}

// Connect checks that the API answers a bare GET with a 2xx status
func (c *Client) Connect(ctx context.Context) error {
	resp, err := c.get(ctx, nil)
	if err != nil {
		c.connected.Store(false)
		return err
	}
	drain(resp.Body)

	c.connected.Store(true)
	return nil
}

// Connected reports whether a Connect call has succeeded
func (c *Client) Connected() bool {
	return c.connected.Load()
}

// LoadVacancies fetches up to MaxPages pages of vacancies matching keyword,
// stopping at the first empty page. It connects first when needed.
//
// Every call accumulates into its own buffer, so a call never returns items
// of an earlier or concurrent one.
func (c *Client) LoadVacancies(ctx context.Context, keyword string) ([]Item, error) {
	if !c.connected.Load() {
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
	}

	vacancies := make([]Item, 0)
	for page := 0; page < c.maxPages; page++ {
		params := c.searchParams(keyword, page)
		c.remember(params)

		items, err := c.fetchPage(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("hh: page %d: %w", page, err)
		}
		vacancies = append(vacancies, items...)

		if len(items) == 0 {
			break
		}
	}

	return vacancies, nil
}

// Params returns a copy of the query parameters of the last request
func (c *Client) Params() url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneValues(c.lastParams)
}

func (c *Client) searchParams(keyword string, page int) url.Values {
	params := url.Values{}
	params.Set("text", keyword)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(c.perPage))
	return params
}

func (c *Client) remember(params url.Values) {
	c.mu.Lock()
	c.lastParams = params
	c.mu.Unlock()
}

func (c *Client) fetchPage(ctx context.Context, params url.Values) ([]Item, error) {
	resp, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return payload.Items, nil
}

// get performs a GET with the client headers; on success the caller owns the
// response body
func (c *Client) get(ctx context.Context, params url.Values) (*http.Response, error) {
	u := *c.baseURL
	if len(params) > 0 {
		query := u.Query()
		for k, v := range params {
			query[k] = append([]string(nil), v...)
		}
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("hh: build request: %w", err)
	}
	for k, v := range c.headers {
		req.Header[k] = append([]string(nil), v...)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: API error (%d): %s", ErrConnection, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return resp, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 1<<20))
	_ = body.Close()
}
