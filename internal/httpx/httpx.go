package httpx

import (
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultUserAgent identifies outbound quote requests.
const DefaultUserAgent = "rebalancer/1.0"

// Client is a small wrapper around http.Client with sane defaults for quote providers.
// It satisfies the HTTPClient interfaces declared by the provider packages.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Headers   map[string]string

	log zerolog.Logger
}

func New(timeout time.Duration, log zerolog.Logger) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 5 * time.Second,
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout, Transport: transport},
		UserAgent: DefaultUserAgent,
		log:       log.With().Str("component", "httpx").Logger(),
	}
}

// Do sends req after filling in the default headers. The request's own
// context bounds the call.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	for k, v := range c.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	start := time.Now()
	res, err := c.HTTP.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("host", req.URL.Host).Str("path", req.URL.Path).Msg("request failed")
		return nil, err
	}
	c.log.Debug().
		Str("host", req.URL.Host).
		Str("path", req.URL.Path).
		Int("status", res.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request done")
	return res, nil
}
