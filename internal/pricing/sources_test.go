package pricing_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"rebalancer/internal/config"
	"rebalancer/internal/httpx"
	"rebalancer/internal/pricing"
)

const chartVOO = `{"chart":{"result":[{"meta":{"gmtoffset":-18000,"timezone":"EST"},
"timestamp":[1709908200],"indicators":{"quote":[{"close":[469.32]}]}}],"error":null}}`

func upstreams(t *testing.T) (td, yh *httptest.Server, tdCalls, yhCalls *atomic.Int32) {
	t.Helper()
	tdCalls, yhCalls = &atomic.Int32{}, &atomic.Int32{}

	td = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tdCalls.Add(1)
		if r.URL.Query().Get("apikey") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Query().Get("symbol") {
		case "QQQM,VOO":
			_, _ = w.Write([]byte(`{"QQQM":{"symbol":"QQQM","close":"375.65","datetime":"2024-03-08"},
"VOO":{"code":404,"message":"not found","status":"error"}}`))
		case "QQQM":
			_, _ = w.Write([]byte(`{"symbol":"QQQM","close":"375.65","datetime":"2024-03-08"}`))
		default:
			_, _ = w.Write([]byte(`{"code":404,"message":"not found","status":"error"}`))
		}
	}))
	t.Cleanup(td.Close)

	yh = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		yhCalls.Add(1)
		if strings.HasSuffix(r.URL.Path, "/VOO") {
			_, _ = w.Write([]byte(chartVOO))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	t.Cleanup(yh.Close)
	return td, yh, tdCalls, yhCalls
}

func testConfig(tdURL, yhURL, key string) config.Config {
	cfg := config.Default()
	cfg.TwelveData.APIKey = key
	cfg.TwelveData.BaseURL = tdURL
	cfg.TwelveData.MaxRequestsPerMinute = 0
	cfg.Yahoo.BaseURL = yhURL
	return cfg
}

func TestNewSources_PrimaryAndSecondary(t *testing.T) {
	t.Parallel()

	td, yh, tdCalls, yhCalls := upstreams(t)
	hc := httpx.New(5*time.Second, zerolog.Nop())

	s, err := pricing.NewSources(testConfig(td.URL, yh.URL, "secret"), hc, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, s.Providers, 2)
	require.Len(t, s.Checkers, 2)
	require.NotNil(t, s.TwelveData)

	got := s.Resolver(zerolog.Nop()).Resolve(t.Context(), []string{"QQQM", "VOO"})
	require.Len(t, got, 2)
	require.Equal(t, "TwelveData", got["QQQM"].Source)
	require.Equal(t, "Yahoo", got["VOO"].Source)
	require.Equal(t, "2024-03-08 00:00:00", got["VOO"].Timestamp)
	require.EqualValues(t, 1, tdCalls.Load())
	require.EqualValues(t, 1, yhCalls.Load())

	// the primary result is cached per symbol
	got = s.Resolver(zerolog.Nop()).Resolve(t.Context(), []string{"QQQM"})
	require.Equal(t, "375.65", got["QQQM"].Price.String())
	require.EqualValues(t, 1, tdCalls.Load())

	v := s.Validator(zerolog.Nop())
	require.True(t, v.IsQuotable(t.Context(), "QQQM"))
	require.True(t, v.IsQuotable(t.Context(), "VOO"))
	require.False(t, v.IsQuotable(t.Context(), "NOPE"))
}

func TestNewSources_NoKeyMeansSecondaryOnly(t *testing.T) {
	t.Parallel()

	td, yh, tdCalls, _ := upstreams(t)
	hc := httpx.New(5*time.Second, zerolog.Nop())

	s, err := pricing.NewSources(testConfig(td.URL, yh.URL, ""), hc, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, s.Providers, 1)
	require.Nil(t, s.TwelveData)

	got := s.Resolver(zerolog.Nop()).Resolve(t.Context(), []string{"QQQM", "VOO"})
	require.Len(t, got, 1)
	require.Contains(t, got, "VOO")
	require.Zero(t, tdCalls.Load())
}

func TestNewSources_SecondaryOutageFailsOpen(t *testing.T) {
	t.Parallel()

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(down.Close)

	hc := httpx.New(5*time.Second, zerolog.Nop())
	s, err := pricing.NewSources(testConfig(down.URL, down.URL, "secret"), hc, zerolog.Nop())
	require.NoError(t, err)

	require.True(t, s.Validator(zerolog.Nop()).IsQuotable(t.Context(), "VOO"))
	require.Empty(t, s.Resolver(zerolog.Nop()).Resolve(t.Context(), []string{"VOO"}))
}

func TestNewSources_YahooLimitAppliesPerSymbol(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		hits []time.Time
	)
	yh := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits = append(hits, time.Now())
		mu.Unlock()
		_, _ = w.Write([]byte(chartVOO))
	}))
	t.Cleanup(yh.Close)

	// 600 rpm with a burst of one: a request every 100ms
	cfg := testConfig("", yh.URL, "")
	cfg.Yahoo.MaxRequestsPerMinute = 600
	cfg.Yahoo.Burst = 1

	s, err := pricing.NewSources(cfg, httpx.New(5*time.Second, zerolog.Nop()), zerolog.Nop())
	require.NoError(t, err)

	got := s.Resolver(zerolog.Nop()).Resolve(t.Context(), []string{"A", "B", "C"})
	require.Len(t, got, 3)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, hits, 3)
	for i := 1; i < len(hits); i++ {
		require.GreaterOrEqual(t, hits[i].Sub(hits[i-1]), 90*time.Millisecond, "gap %d", i)
	}
}
