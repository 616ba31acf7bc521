package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldhouse-group/facility-cli/internal/catalog"
)

func TestFormatSportsList(t *testing.T) {
	var b strings.Builder
	formatSportsList(&b, catalog.Default())
	out := b.String()

	assert.Contains(t, out, "baseball_softball")
	assert.Contains(t, out, "basketball")
	assert.Contains(t, out, "turf")
}

func TestFormatItemsList(t *testing.T) {
	var b strings.Builder
	formatItemsList(&b, catalog.Default(), "")
	out := b.String()

	assert.Contains(t, out, "tunnel_net")
	assert.Contains(t, out, "INSTALL")
}

func TestFormatItemsList_CategoryFilter(t *testing.T) {
	cat := catalog.Default()

	var b strings.Builder
	formatItemsList(&b, cat, catalog.CategoryFlooring)
	out := b.String()

	for id, item := range cat.Items {
		if item.Category == catalog.CategoryFlooring {
			assert.Contains(t, out, id)
		} else {
			assert.NotContains(t, out, id)
		}
	}
}
