package twelvedata

import (
	"net/http"
	"net/url"
)

const baseURL = "https://api.twelvedata.com"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=twelvedata_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TwelveDataAPIClient is a client for the Twelve Data REST API.
type TwelveDataAPIClient struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP httpClient.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
}

// TwelveDataAPIClientOption is a configuration option for the Twelve Data API client.
type TwelveDataAPIClientOption func(*TwelveDataAPIClient)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) TwelveDataAPIClientOption {
	return func(c *TwelveDataAPIClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) TwelveDataAPIClientOption {
	return func(c *TwelveDataAPIClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) TwelveDataAPIClientOption {
	return func(c *TwelveDataAPIClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewTwelveDataAPIClient creates a new Twelve Data API client. The key is sent as
// the apikey query parameter on every request.
func NewTwelveDataAPIClient(key string, options ...TwelveDataAPIClientOption) (*TwelveDataAPIClient, error) {
	var client = &TwelveDataAPIClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	if key != "" {
		// https://twelvedata.com/docs#authentication
		client.query.Add("apikey", key)
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

// with returns a shallow copy of the client with per-call options applied.
func (c *TwelveDataAPIClient) with(opts []TwelveDataAPIClientOption) *TwelveDataAPIClient {
	var override = &TwelveDataAPIClient{
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
		header:     c.header.Clone(),
		query:      c.query,
	}
	for _, opt := range opts {
		opt(override)
	}
	return override
}
