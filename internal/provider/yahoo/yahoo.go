package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"rebalancer/internal/provider"
	"rebalancer/internal/provider/ratelimit"
)

// ErrSymbolNotFound is returned when Yahoo reports that it has no data for a symbol.
var ErrSymbolNotFound = errors.New("symbol not found")

// TimestampLayout formats the date of the latest bar.
const TimestampLayout = "2006-01-02 15:04:05"

// HTTPClient describes an HTTP client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	Name     string // display name, default: Yahoo
	BaseURL  string // default: https://query1.finance.yahoo.com
	Range    string // history window, default: 1d
	Interval string // bar size, default: 1d

	// Limiter gates every chart request, including each symbol of a Fetch.
	Limiter ratelimit.Limiter
}

// Bar is one point of the daily history.
type Bar struct {
	Time  time.Time
	Close decimal.Decimal
}

// Provider prices symbols from the Yahoo Finance chart API, one request per symbol.
type Provider struct {
	cfg    Config
	client HTTPClient
	log    zerolog.Logger
}

func New(cfg Config, hc HTTPClient, log zerolog.Logger) *Provider {
	if cfg.Name == "" {
		cfg.Name = "Yahoo"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://query1.finance.yahoo.com"
	}
	if cfg.Range == "" {
		cfg.Range = "1d"
	}
	if cfg.Interval == "" {
		cfg.Interval = "1d"
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Provider{
		cfg:    cfg,
		client: hc,
		log:    log.With().Str("component", "yahoo").Logger(),
	}
}

func (p *Provider) Name() string { return p.cfg.Name }

// Fetch asks for each symbol in turn and takes the latest close as the price.
// Symbols Yahoo does not know are skipped. An error is returned only when
// nothing was priced and at least one request failed for another reason.
func (p *Provider) Fetch(ctx context.Context, symbols []string) (map[string]provider.Quote, error) {
	out := make(map[string]provider.Quote, len(symbols))
	var firstErr error
	for _, sym := range symbols {
		bars, err := p.History(ctx, sym)
		if err != nil {
			if !errors.Is(err, ErrSymbolNotFound) && firstErr == nil {
				firstErr = err
			}
			p.log.Debug().Err(err).Str("symbol", sym).Msg("history unavailable")
			continue
		}
		if len(bars) == 0 {
			continue
		}
		last := bars[len(bars)-1]
		out[sym] = provider.Quote{
			Symbol:    sym,
			Price:     last.Close,
			Timestamp: last.Time.Format(TimestampLayout),
			Source:    p.cfg.Name,
		}
	}
	if len(out) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// Check reports whether the symbol has at least one day of recent history.
// A clean "not found" is (false, nil); any other failure is returned as an error.
func (p *Provider) Check(ctx context.Context, symbol string) (bool, error) {
	bars, err := p.History(ctx, symbol)
	if errors.Is(err, ErrSymbolNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(bars) > 0, nil
}

// History returns the bars with a close for the configured range, oldest first.
// Bars are stamped at midnight in the exchange's UTC offset.
func (p *Provider) History(ctx context.Context, symbol string) ([]Bar, error) {
	body, err := p.Raw(ctx, symbol)
	if err != nil {
		return nil, err
	}

	var api chartResponse
	if err := json.Unmarshal(body, &api); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if api.Chart.Error != nil {
		if isNotFound(api.Chart.Error.Code) {
			return nil, fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
		}
		return nil, fmt.Errorf("provider error: code=%s desc=%q", api.Chart.Error.Code, api.Chart.Error.Description)
	}
	if len(api.Chart.Result) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
	}

	res := api.Chart.Result[0]
	loc := time.FixedZone(res.Meta.Timezone, res.Meta.GMTOffset)
	var closes []*json.Number
	if len(res.Indicators.Quote) > 0 {
		closes = res.Indicators.Quote[0].Close
	}

	bars := make([]Bar, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		c, err := decimal.NewFromString(closes[i].String())
		if err != nil {
			continue
		}
		t := time.Unix(ts, 0).In(loc)
		bars = append(bars, Bar{
			Time:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc),
			Close: c,
		})
	}
	return bars, nil
}

// Raw performs the chart request and returns the undecoded body. A 404 is
// reported as ErrSymbolNotFound.
func (p *Provider) Raw(ctx context.Context, symbol string) ([]byte, error) {
	q := url.Values{}
	q.Set("range", p.cfg.Range)
	q.Set("interval", p.cfg.Interval)
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", strings.TrimRight(p.cfg.BaseURL, "/"), url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	if p.cfg.Limiter != nil {
		if err := p.cfg.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<10))
		return nil, fmt.Errorf("GET %s -> %d: %s", req.URL.Path, resp.StatusCode, string(b))
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(resp.Body, 4<<20)); err != nil {
		return nil, fmt.Errorf("reading chart response: %w", err)
	}
	return buf.Bytes(), nil
}

func isNotFound(code string) bool {
	return strings.EqualFold(strings.TrimSpace(code), "Not Found")
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta struct {
		Currency  string `json:"currency"`
		Symbol    string `json:"symbol"`
		Timezone  string `json:"timezone"`
		GMTOffset int    `json:"gmtoffset"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*json.Number `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}
