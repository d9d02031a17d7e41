package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_Take(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)

	for i := 0; i < 10; i++ {
		allowed, _, _ := bucket.take()
		assert.True(t, allowed, "request %d", i+1)
	}

	allowed, remaining, resetTime := bucket.take()
	assert.False(t, allowed, "11th request should be denied")
	assert.Equal(t, 0, remaining)
	assert.True(t, resetTime.After(time.Now()), "reset time should be in the future")
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)
	for i := 0; i < 10; i++ {
		bucket.take()
	}

	time.Sleep(1100 * time.Millisecond)

	allowed, _, _ := bucket.take()
	assert.True(t, allowed, "a token should have been refilled")
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/resume", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/resume", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Positive(t, info.RetryAfter)
}

func TestLimiter_DefaultTierSharedAcrossPaths(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 2, DefaultWindow: time.Minute})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("127.0.0.1", "/resume/experience/exp-1", "DELETE")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("127.0.0.1", "/resume/experience/exp-2", "DELETE")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("127.0.0.1", "/resume/education/edu-1", "DELETE")
	assert.False(t, allowed, "ids in the path must not mint fresh buckets")

	allowed, _ = limiter.Allow("127.0.0.1", "/resume", "GET")
	assert.True(t, allowed, "other methods have their own bucket")
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/resume", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}

	allowed, _ := limiter.Allow("192.168.1.1", "/resume", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/ai/match", "POST")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_EndpointTiers(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: []EndpointConfig{{Path: "/ai/", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5}},
		Unlimited:       DefaultUnlimited(),
	})
	defer limiter.Stop()

	paths := []string{"/ai/generate", "/ai/keywords", "/ai/match", "/ai/parse-pdf", "/ai/learn"}
	for _, path := range paths {
		allowed, info := limiter.Allow("127.0.0.1", path, "POST")
		require.True(t, allowed, path)
		assert.Equal(t, 5, info.Limit)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/ai/generate", "POST")
	assert.False(t, allowed, "all /ai/ endpoints share one allowance")
	assert.Equal(t, 5, info.Limit)

	allowed, info = limiter.Allow("127.0.0.1", "/resume", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)

	for i := 0; i < 2000; i++ {
		allowed, _ = limiter.Allow("127.0.0.1", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Minute})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var allowedCount atomic.Int32
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/resume", "GET"); allowed {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(100), allowedCount.Load())
}

func TestLimiter_EvictIdle(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow(fmt.Sprintf("10.0.0.%d", i), "/resume", "GET")
		require.True(t, allowed)
	}
	allowed, _ := limiter.Allow("10.0.0.0", "/resume", "GET")
	require.False(t, allowed)

	limiter.evictIdle(time.Now().Add(time.Minute))

	limiter.mu.Lock()
	assert.Empty(t, limiter.buckets)
	limiter.mu.Unlock()

	allowed, _ = limiter.Allow("10.0.0.0", "/resume", "GET")
	assert.True(t, allowed, "an evicted client starts with a full bucket")
}

func TestLimiter_Burst(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    10,
		DefaultWindow:   time.Minute,
		EndpointConfigs: []EndpointConfig{{Path: "/resume/export/", Method: "GET", Limit: 10, Window: time.Minute, Burst: 5}},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/resume/export/pdf", "GET")
		require.True(t, allowed, "burst request %d", i+1)
	}
	allowed, _ := limiter.Allow("127.0.0.1", "/resume/export/docx", "GET")
	assert.False(t, allowed)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/resume", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)

	_, info = limiter.Allow("127.0.0.1", "/metrics", "GET")
	assert.Equal(t, 0, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	config := &Config{EndpointConfigs: DefaultEndpointConfigs(), Unlimited: DefaultUnlimited()}

	tests := []struct {
		path, method string
		wantPath     string
		wantLimit    int
	}{
		{"/ai/match", "POST", "/ai/", 30},
		{"/resume/export/pdf", "GET", "/resume/export/", 60},
		{"/sessions", "POST", "/sessions", 20},
		{"/health", "GET", "/health", 0},
		{"/metrics", "GET", "/metrics", 0},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, config)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantPath, got.Path)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}

	assert.Nil(t, MatchEndpoint("/resume", "GET", config))
	assert.Nil(t, MatchEndpoint("/ai/match", "GET", config))
	assert.Nil(t, MatchEndpoint("/health", "POST", config))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "50")
	t.Setenv("RATE_LIMIT_AI_PER_HOUR", "7")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	config := LoadConfig()

	assert.True(t, config.Enabled)
	assert.Equal(t, 50, config.DefaultLimit)
	assert.Equal(t, 7, config.EndpointConfigs[0].Limit)
	assert.True(t, config.Whitelist["10.0.0.2"])
	assert.Equal(t, DefaultUnlimited(), config.Unlimited)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
