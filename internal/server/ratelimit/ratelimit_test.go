package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		SearchLimit:   2,
		SearchWindow:  time.Hour,
		SearchBurst:   2,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		// CleanupInterval zero keeps the cleanup goroutine out of tests.
	}
}

func TestAllow_SearchBurstThenLimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/search", "POST")
		require.True(t, allowed, "request %d should be within burst", i)
	}

	allowed, info := l.Allow("10.0.0.1", "/search", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 2, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestAllow_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		l.Allow("10.0.0.1", "/search", "POST")
	}
	allowed, _ := l.Allow("10.0.0.1", "/search", "POST")
	require.False(t, allowed)

	allowed, _ = l.Allow("10.0.0.2", "/search", "POST")
	assert.True(t, allowed, "a different client has its own bucket")
}

func TestAllow_HealthNeverLimited(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 1
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestAllow_DisabledPassesEverything(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := l.Allow("10.0.0.1", "/search", "POST")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestAllow_TokensRefillOverTime(t *testing.T) {
	cfg := testConfig()
	cfg.SearchLimit = 100
	cfg.SearchWindow = time.Second // 100 tokens/sec for a fast test
	cfg.SearchBurst = 1
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("10.0.0.1", "/search", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "/search", "POST")
	require.False(t, allowed)

	time.Sleep(50 * time.Millisecond)

	allowed, _ = l.Allow("10.0.0.1", "/search", "POST")
	assert.True(t, allowed, "bucket should have refilled")
}

func TestDropStale(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	l.Allow("10.0.0.1", "/search", "POST")
	l.mu.Lock()
	l.access["10.0.0.1:/search:POST"] = time.Now().Add(-2 * time.Hour)
	l.mu.Unlock()

	l.dropStale()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.buckets)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	require.True(t, cfg.Enabled)
	assert.Equal(t, 30, cfg.SearchLimit)
	assert.Equal(t, time.Hour, cfg.SearchWindow)
	assert.Equal(t, 1000, cfg.DefaultLimit)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_SEARCH_LIMIT", "5")
	t.Setenv("RATE_LIMIT_SEARCH_WINDOW", "10m")

	cfg := LoadConfig()

	assert.Equal(t, 5, cfg.SearchLimit)
	assert.Equal(t, 10*time.Minute, cfg.SearchWindow)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()

	assert.False(t, cfg.Enabled)
}
