package hh

import (
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"
)

// Config defines hh.ru API client settings
type Config struct {
	BaseURL    string
	UserAgent  string
	PerPage    int
	MaxPages   int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client queries the hh.ru vacancies search API.
//
// A Client is safe for concurrent use; each LoadVacancies call builds its
// own query and result buffer.
type Client struct {
	baseURL    *url.URL
	headers    http.Header
	perPage    int
	maxPages   int
	httpClient *http.Client

	connected atomic.Bool

	mu         sync.Mutex
	lastParams url.Values
}

// Item is one raw vacancy payload as returned by the API
type Item = map[string]any

type searchResponse struct {
	Items []Item `json:"items"`
	Found int    `json:"found"`
	Pages int    `json:"pages"`
	Page  int    `json:"page"`
}
