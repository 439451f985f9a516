package twelvedata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized is returned when the API key is missing or rejected.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRateLimited is returned when the API credits for the current minute are spent.
	ErrRateLimited = errors.New("rate limited")
)

// APIError is an error object returned in place of a quote payload.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twelvedata error %d: %s", e.Code, e.Message)
}

// Number is a numeric field that Twelve Data sends either as a JSON string or a number.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*n = Number(strings.TrimSpace(str))
		return nil
	}
	*n = Number(s)
	return nil
}

// Quote is one entry of the /quote endpoint. When the symbol is unknown the
// provider fills Code, Message and Status instead of the price fields.
type Quote struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Exchange      string `json:"exchange"`
	Currency      string `json:"currency"`
	Datetime      string `json:"datetime"`
	Timestamp     int64  `json:"timestamp"`
	Open          Number `json:"open"`
	High          Number `json:"high"`
	Low           Number `json:"low"`
	Close         Number `json:"close"`
	PreviousClose Number `json:"previous_close"`

	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Valid reports whether the entry is a quote rather than an error object.
func (q Quote) Valid() bool {
	return q.Code == 0 || q.Code == http.StatusOK
}

// GetQuote retrieves the quote for a single symbol. An error object returned by
// the provider is not an error here: the caller inspects Code via Valid.
func (c *TwelveDataAPIClient) GetQuote(ctx context.Context, symbol string, opts ...TwelveDataAPIClientOption) (Quote, error) {
	body, err := c.RawQuote(ctx, []string{symbol}, opts...)
	if err != nil {
		return Quote{}, err
	}
	var q Quote
	if err := json.Unmarshal(body, &q); err != nil {
		return Quote{}, fmt.Errorf("decoding quote response: %w", err)
	}
	return q, nil
}

// GetQuotes retrieves quotes for a batch of symbols in one request and returns
// them keyed by the requested symbol.
//
// The API answers a single-symbol request with a bare object and a larger
// batch with an object keyed by symbol; both shapes come back as a map here.
// Per-symbol error objects are kept in the map (see Quote.Valid); an error
// object for the whole request is returned as *APIError.
func (c *TwelveDataAPIClient) GetQuotes(ctx context.Context, symbols []string, opts ...TwelveDataAPIClientOption) (map[string]Quote, error) {
	if len(symbols) == 0 {
		return nil, errors.New("no symbols requested")
	}

	if len(symbols) == 1 {
		q, err := c.GetQuote(ctx, symbols[0], opts...)
		if err != nil {
			return nil, err
		}
		if !q.Valid() {
			return nil, &APIError{Code: q.Code, Message: q.Message}
		}
		return map[string]Quote{symbols[0]: q}, nil
	}

	body, err := c.RawQuote(ctx, symbols, opts...)
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding quote response: %w", err)
	}
	if apiErr := topLevelError(raw, symbols); apiErr != nil {
		return nil, apiErr
	}

	quotes := make(map[string]Quote, len(symbols))
	for _, sym := range symbols {
		item, ok := raw[sym]
		if !ok {
			continue
		}
		var q Quote
		if err := json.Unmarshal(item, &q); err != nil {
			return nil, fmt.Errorf("decoding quote %s: %w", sym, err)
		}
		quotes[sym] = q
	}
	return quotes, nil
}

// RawQuote performs the /quote request and returns the undecoded body.
func (c *TwelveDataAPIClient) RawQuote(ctx context.Context, symbols []string, opts ...TwelveDataAPIClientOption) ([]byte, error) {
	override := c.with(opts)

	query := maps.Clone(override.query)
	query.Set("symbol", strings.Join(symbols, ","))

	url := fmt.Sprintf("%s/quote?%s", override.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = override.header

	res, err := override.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized

	case http.StatusTooManyRequests:
		return nil, ErrRateLimited

	default:
		return nil, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(res.Body, 4<<20)); err != nil {
		return nil, fmt.Errorf("reading quote response: %w", err)
	}
	return buf.Bytes(), nil
}

// topLevelError detects a batch answered with a single error object, e.g.
// {"code":401,"message":"...","status":"error"}.
func topLevelError(raw map[string]json.RawMessage, symbols []string) *APIError {
	for _, sym := range symbols {
		if _, ok := raw[sym]; ok {
			return nil
		}
	}
	var status string
	if s, ok := raw["status"]; ok {
		_ = json.Unmarshal(s, &status)
	}
	if status != "error" {
		return nil
	}
	apiErr := &APIError{}
	_ = json.Unmarshal(raw["code"], &apiErr.Code)
	_ = json.Unmarshal(raw["message"], &apiErr.Message)
	return apiErr
}
