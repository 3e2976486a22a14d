package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://developers.zomato.com/api/v2.1"
	DefaultTimeout = 20 * time.Second
)

var (
	ErrNoConnectivity = errors.New("directory unreachable")
	ErrBadStatus      = errors.New("directory returned unexpected status")
	ErrDecodeFailure  = errors.New("directory response could not be decoded")
)

// Client issues GET requests against the restaurant directory API.
// It performs no retries and no caching; every failure is reported once.
type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid directory base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid directory base url %q", baseURL)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: timeout}).DialContext

	return &Client{
		baseURL: u,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout, Transport: transport},
	}, nil
}

// Get fetches path with the given query and decodes the JSON body into T.
// Nil query values are left out of the request.
func Get[T any](ctx context.Context, c *Client, path string, query map[string]*string) (T, error) {
	var out T

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(path, query), nil)
	if err != nil {
		return out, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("user-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrNoConnectivity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return out, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	return out, nil
}

func (c *Client) requestURL(path string, query map[string]*string) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	u.RawQuery = EncodeQuery(query)
	return u.String()
}

// EncodeQuery percent-encodes query parameters in key order. The directory
// rejects literal commas, so they are always sent as %2C.
func EncodeQuery(query map[string]*string) string {
	keys := make([]string, 0, len(query))
	for k, v := range query {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, escape(k)+"="+escape(*query[k]))
	}
	return strings.ReplaceAll(strings.Join(parts, "&"), ",", "%2C")
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// String returns a pointer to s, for building query maps.
func String(s string) *string {
	return &s
}

// Float returns a pointer to v, for optional search coordinates.
func Float(v float64) *float64 {
	return &v
}
