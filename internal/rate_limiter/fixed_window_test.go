package ratelimiter

import (
	"testing"
	"time"

	"github.com/rithvisal/inksign/internal/config"
)

func TestFixedWindowLimiter(t *testing.T) {
	rl := NewRateLimiter(config.RateLimiterConfig{
		RequestsPerTimeFrame: 3,
		TimeFrame:            time.Minute,
		Enabled:              true,
	}, nil)

	for i := 0; i < 3; i++ {
		if ok, _ := rl.Allow("10.0.0.1"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, retryAfter := rl.Allow("10.0.0.1")
	if ok {
		t.Error("request over the limit should be rejected")
	}
	if retryAfter != time.Minute {
		t.Errorf("retryAfter = %v, want %v", retryAfter, time.Minute)
	}

	// Other clients keep their own window
	if ok, _ := rl.Allow("10.0.0.2"); !ok {
		t.Error("a different client should not be affected")
	}
}

func TestFixedWindowLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(config.RateLimiterConfig{
		RequestsPerTimeFrame: 1,
		TimeFrame:            time.Minute,
		Enabled:              false,
	}, nil)

	for i := 0; i < 10; i++ {
		if ok, _ := rl.Allow("10.0.0.1"); !ok {
			t.Fatal("disabled limiter should always allow")
		}
	}
}
