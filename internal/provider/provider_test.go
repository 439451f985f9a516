package provider

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeSymbol(t *testing.T) {
	require.Equal(t, "BRK.B", NormalizeSymbol("  brk.b "))
	require.Equal(t, "", NormalizeSymbol("   "))
}

func TestNormalizeSymbols(t *testing.T) {
	got := NormalizeSymbols([]string{"voo", " QQQM", "", "VOO", "brk.b", "  "})
	require.Equal(t, []string{"VOO", "QQQM", "BRK.B"}, got)
	require.Empty(t, NormalizeSymbols(nil))
}
