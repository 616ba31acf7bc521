package lead

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_BurstThenBlocked(t *testing.T) {
	l := NewLimiter(time.Hour, 2)

	require.NoError(t, l.Allow("1.2.3.4"))
	require.NoError(t, l.Allow("1.2.3.4"))

	err := l.Allow("1.2.3.4")
	require.Error(t, err)

	var rle *RateLimitError
	require.ErrorAs(t, err, &rle)
	assert.Greater(t, rle.RetryAfter, time.Duration(0))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := NewLimiter(time.Hour, 1)

	require.NoError(t, l.Allow("1.2.3.4"))
	require.Error(t, l.Allow("1.2.3.4"))
	require.NoError(t, l.Allow("5.6.7.8"))
}

func TestLimiter_MinimumBurst(t *testing.T) {
	l := NewLimiter(time.Hour, 0)
	require.NoError(t, l.Allow("k"))
	require.Error(t, l.Allow("k"))
}
