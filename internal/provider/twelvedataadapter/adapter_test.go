package twelvedataadapter_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"rebalancer/internal/provider"
	"rebalancer/internal/provider/twelvedata"
	"rebalancer/internal/provider/twelvedataadapter"
)

var (
	_ provider.Provider = (*twelvedataadapter.Adapter)(nil)
	_ provider.Checker  = (*twelvedataadapter.Adapter)(nil)
)

func TestFetch_AcceptsOnlyPricedEntries(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock client
	ctrl := gomock.NewController(t)
	client := NewMockQuoteClient(ctrl)

	symbols := []string{"QQQM", "VOO", "BRK.B", "ODD"}

	// Assert: one batch request for every symbol
	client.EXPECT().
		GetQuotes(gomock.Any(), symbols).
		Return(map[string]twelvedata.Quote{
			"QQQM":  {Symbol: "QQQM", Close: "375.65", Datetime: "2024-03-08"},
			"VOO":   {Symbol: "VOO", Close: "105.75", Datetime: "2024-03-08", Code: 200},
			"BRK.B": {Code: 404, Message: "not found", Status: "error"},
			"ODD":   {Symbol: "ODD", Close: ""},
		}, nil).
		Times(1)

	adapter := twelvedataadapter.New(twelvedataadapter.Config{}, client)

	// Act
	quotes, err := adapter.Fetch(t.Context(), symbols)
	require.NoError(t, err)

	// Assert: only affirmatively priced symbols are present
	require.Len(t, quotes, 2)
	require.True(t, decimal.RequireFromString("375.65").Equal(quotes["QQQM"].Price))
	require.Equal(t, "2024-03-08", quotes["QQQM"].Timestamp)
	require.Equal(t, "TwelveData", quotes["QQQM"].Source)
	require.True(t, decimal.RequireFromString("105.75").Equal(quotes["VOO"].Price))
	require.NotContains(t, quotes, "BRK.B")
	require.NotContains(t, quotes, "ODD")
}

func TestFetch_IgnoresUnrequestedAndMalformed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := NewMockQuoteClient(ctrl)

	client.EXPECT().
		GetQuotes(gomock.Any(), []string{"A", "B"}).
		Return(map[string]twelvedata.Quote{
			"A":     {Close: "abc"},
			"B":     {Close: "-1"},
			"EXTRA": {Close: "10"},
		}, nil)

	adapter := twelvedataadapter.New(twelvedataadapter.Config{Name: "TD"}, client)
	quotes, err := adapter.Fetch(t.Context(), []string{"A", "B"})
	require.NoError(t, err)
	require.Empty(t, quotes)
}

func TestFetch_SingleSymbolErrorObjectIsAMiss(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := NewMockQuoteClient(ctrl)

	client.EXPECT().
		GetQuotes(gomock.Any(), []string{"NOPE"}).
		Return(nil, &twelvedata.APIError{Code: 404, Message: "not found"})

	adapter := twelvedataadapter.New(twelvedataadapter.Config{}, client)
	quotes, err := adapter.Fetch(t.Context(), []string{"NOPE"})
	require.NoError(t, err)
	require.Empty(t, quotes)
}

func TestFetch_PropagatesTransportErrors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := NewMockQuoteClient(ctrl)

	client.EXPECT().
		GetQuotes(gomock.Any(), []string{"A", "B"}).
		Return(nil, twelvedata.ErrRateLimited)

	adapter := twelvedataadapter.New(twelvedataadapter.Config{}, client)
	quotes, err := adapter.Fetch(t.Context(), []string{"A", "B"})
	require.ErrorIs(t, err, twelvedata.ErrRateLimited)
	require.Nil(t, quotes)
}

func TestFetch_NoSymbolsSkipsRequest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := NewMockQuoteClient(ctrl)
	client.EXPECT().GetQuotes(gomock.Any(), gomock.Any()).Times(0)

	adapter := twelvedataadapter.New(twelvedataadapter.Config{}, client)
	quotes, err := adapter.Fetch(t.Context(), nil)
	require.NoError(t, err)
	require.Empty(t, quotes)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		quote  twelvedata.Quote
		err    error
		want   bool
		wantEr bool
	}{
		{name: "no code", quote: twelvedata.Quote{Symbol: "VOO"}, want: true},
		{name: "code 200", quote: twelvedata.Quote{Code: 200}, want: true},
		{name: "code 404", quote: twelvedata.Quote{Code: 404}, want: false},
		{name: "code 400", quote: twelvedata.Quote{Code: 400}, want: false},
		{name: "transport error", err: errors.New("boom"), wantEr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			client := NewMockQuoteClient(ctrl)
			client.EXPECT().GetQuote(gomock.Any(), "VOO").Return(tc.quote, tc.err)

			adapter := twelvedataadapter.New(twelvedataadapter.Config{}, client)
			ok, err := adapter.Check(t.Context(), "VOO")
			if tc.wantEr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, ok)
		})
	}
}
