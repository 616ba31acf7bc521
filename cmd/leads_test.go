package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fieldhouse-group/facility-cli/internal/lead"
)

func TestFormatLeadsList(t *testing.T) {
	created := time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC)
	leads := []lead.Lead{
		{
			ID:         "5f1c9d7e-2a6b-4c3d-8e9f-0a1b2c3d4e5f",
			Name:       "Jordan Lee",
			Email:      "jordan@example.com",
			City:       "Springfield",
			State:      "IL",
			SyncStatus: lead.SyncDone,
			CreatedAt:  created,
		},
		{
			ID:         "aaaabbbb-0000-0000-0000-000000000000",
			Name:       "Sam Rivera",
			Email:      "sam@example.com",
			SyncStatus: lead.SyncFailed,
			CreatedAt:  created,
		},
	}

	var b strings.Builder
	formatLeadsList(&b, leads)
	out := b.String()

	assert.Contains(t, out, "5f1c9d7e")
	assert.NotContains(t, out, "5f1c9d7e-2a6b")
	assert.Contains(t, out, "Springfield, IL")
	assert.Contains(t, out, "synced")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "2026-03-14 15:09")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "12345678", truncateID("123456789abc"))
	assert.Equal(t, "short", truncateID("short"))
}
