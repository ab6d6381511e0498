package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/ldcurate"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/temoto/robotstxt"
	"golang.org/x/sync/singleflight"
)

// Robots cache defaults.
const (
	DefaultRobotsCacheSize = 1024
	DefaultRobotsCacheTTL  = time.Hour
)

// maxRobotsSize follows the 500 KiB limit crawlers commonly apply.
const maxRobotsSize = 500 << 10

// Ensure RobotsChecker implements ldcurate.RobotsChecker.
var _ ldcurate.RobotsChecker = (*RobotsChecker)(nil)

// RobotsChecker answers robots.txt questions, fetching each host's file
// once per TTL. Concurrent lookups for the same host share one request.
type RobotsChecker struct {
	client    *http.Client
	userAgent string
	size      int
	ttl       time.Duration

	cache *expirable.LRU[string, *robotstxt.RobotsData]
	group singleflight.Group
}

// RobotsOption configures a RobotsChecker.
type RobotsOption func(*RobotsChecker)

// WithRobotsUserAgent sets the agent matched against robots.txt groups
// and sent when fetching robots.txt.
func WithRobotsUserAgent(ua string) RobotsOption {
	return func(c *RobotsChecker) {
		c.userAgent = ua
	}
}

// WithRobotsTTL sets how long a parsed robots.txt is reused.
func WithRobotsTTL(ttl time.Duration) RobotsOption {
	return func(c *RobotsChecker) {
		c.ttl = ttl
	}
}

// WithRobotsCacheSize sets how many hosts are cached.
func WithRobotsCacheSize(n int) RobotsOption {
	return func(c *RobotsChecker) {
		c.size = n
	}
}

// NewRobotsChecker creates a RobotsChecker using client for requests.
// If client is nil, http.DefaultClient is used.
func NewRobotsChecker(client *http.Client, opts ...RobotsOption) *RobotsChecker {
	if client == nil {
		client = http.DefaultClient
	}
	c := &RobotsChecker{
		client:    client,
		userAgent: ldcurate.DefaultUserAgent,
		size:      DefaultRobotsCacheSize,
		ttl:       DefaultRobotsCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cache = expirable.NewLRU[string, *robotstxt.RobotsData](c.size, nil, c.ttl)
	return c
}

// Allowed reports whether the configured agent may fetch rawURL.
//
// A robots.txt that cannot be reached, or that answers 4xx, allows
// everything; a 5xx answer disallows everything.
func (c *RobotsChecker) Allowed(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false, ldcurate.Errorf(ldcurate.EINVALID, "invalid URL %q", rawURL)
	}

	origin := u.Scheme + "://" + u.Host
	data, err := c.robots(ctx, origin)
	if err != nil {
		return false, err
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return data.TestAgent(path, c.userAgent), nil
}

func (c *RobotsChecker) robots(ctx context.Context, origin string) (*robotstxt.RobotsData, error) {
	if data, ok := c.cache.Get(origin); ok {
		return data, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The fetch is shared by every waiter, so it must not inherit any one
	// caller's cancellation.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(origin, func() (any, error) {
		data, err := c.fetch(shared, origin)
		if err != nil {
			data = allowAll()
		}
		c.cache.Add(origin, data)
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*robotstxt.RobotsData), nil
	}
}

func (c *RobotsChecker) fetch(ctx context.Context, origin string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsSize))
	if err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}

	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return allowAll(), nil
	}
	return data, nil
}

func allowAll() *robotstxt.RobotsData {
	data, _ := robotstxt.FromStatusAndBytes(http.StatusNotFound, nil)
	return data
}
