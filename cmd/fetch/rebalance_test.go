package main

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rebalancer/internal/provider"
	"rebalancer/internal/rebalance"
)

func TestParseHoldings(t *testing.T) {
	t.Parallel()

	holdings, targets, err := parseHoldings([]string{"qqqm=50:50", "BRK.B=14:25", "VOO=52:25:105.75"})
	require.NoError(t, err)
	require.Len(t, holdings, 3)

	assert.Equal(t, "QQQM", holdings[0].Symbol)
	assert.Equal(t, "50", holdings[0].Units.String())
	assert.False(t, holdings[0].LastPrice.Valid)

	assert.True(t, holdings[2].LastPrice.Valid)
	assert.Equal(t, "105.75", holdings[2].LastPrice.Decimal.String())

	assert.Equal(t, "25", targets["BRK.B"].String())
}

func TestParseHoldings_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
	}{
		{name: "none", args: nil},
		{name: "no equals", args: []string{"VOO"}},
		{name: "empty symbol", args: []string{"=1:2"}},
		{name: "missing pct", args: []string{"VOO=1"}},
		{name: "too many parts", args: []string{"VOO=1:2:3:4"}},
		{name: "bad units", args: []string{"VOO=x:2"}},
		{name: "negative units", args: []string{"VOO=-1:2"}},
		{name: "bad pct", args: []string{"VOO=1:y"}},
		{name: "bad last price", args: []string{"VOO=1:2:z"}},
		{name: "duplicate", args: []string{"VOO=1:2", "voo=3:4"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := parseHoldings(tc.args)
			require.Error(t, err)
		})
	}
}

func TestPrintPlan(t *testing.T) {
	t.Parallel()

	holdings, targets, err := parseHoldings([]string{"QQQM=50:50", "BRK.B=14:25", "VOO=52:25:105.75", "NEW=1:0"})
	require.NoError(t, err)
	quotes := map[string]provider.Quote{
		"QQQM":  {Symbol: "QQQM", Price: decimal.RequireFromString("375.65")},
		"BRK.B": {Symbol: "BRK.B", Price: decimal.RequireFromString("450.25")},
	}

	res := rebalance.Compute(holdings, quotes, targets, decimal.NewFromInt(5000))

	var buf bytes.Buffer
	require.NoError(t, printPlan(&buf, res, "USD"))

	out := buf.String()
	assert.Contains(t, out, "Sell")
	assert.Contains(t, out, "32.13")
	assert.Contains(t, out, "$35,585.00")
	assert.Contains(t, out, "NEW: no price available")
}

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$8,896.25", formatMoney(decimal.RequireFromString("8896.25"), "USD"))
	assert.Equal(t, "1.50 XYZ", formatMoney(decimal.RequireFromString("1.5"), "XYZ"))
}
