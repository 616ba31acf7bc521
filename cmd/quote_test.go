package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldhouse-group/facility-cli/internal/catalog"
	"github.com/fieldhouse-group/facility-cli/internal/cost"
)

func TestParseUnits(t *testing.T) {
	units, err := parseUnits([]string{"baseball_tunnels=8", "courts=2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"baseball_tunnels": 8, "courts": 2}, units)
}

func TestParseUnits_Empty(t *testing.T) {
	units, err := parseUnits(nil)
	require.NoError(t, err)
	assert.Nil(t, units)
}

func TestParseUnits_Invalid(t *testing.T) {
	for _, bad := range []string{"tunnels", "=3", "tunnels=x", "tunnels=-1"} {
		_, err := parseUnits([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestFormatQuoteTable(t *testing.T) {
	calc := cost.NewCalculator(catalog.Default())
	quote, err := calc.BuildEquipmentQuote("baseball_softball", map[string]int{"baseball_tunnels": 8}, catalog.TierMid, 1.0)
	require.NoError(t, err)

	var b strings.Builder
	formatQuoteTable(&b, quote)
	out := b.String()

	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "GRAND TOTAL")
	assert.Contains(t, out, "$126,960.00")
	assert.Contains(t, out, "$42,320.00") // flat installation allowance
}
