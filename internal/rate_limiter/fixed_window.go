package ratelimiter

import (
	"sync"
	"time"

	"github.com/rithvisal/inksign/internal/config"
	"go.uber.org/zap"
)

// FixedWindowRateLimiter counts requests per client within a fixed time
// window. Counts reset when the window elapses.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	clients map[string]int
	limit   int
	window  time.Duration
	enabled bool
	logger  *zap.SugaredLogger
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]int),
		limit:   cfg.RequestsPerTimeFrame,
		window:  cfg.TimeFrame,
		enabled: cfg.Enabled,
		logger:  logger,
	}
}

func (rl *FixedWindowRateLimiter) Enabled() bool {
	return rl.enabled
}

// Allow reports whether the client identified by ip may proceed and, when it
// may not, how long until the current window resets.
func (rl *FixedWindowRateLimiter) Allow(ip string) (bool, time.Duration) {
	if !rl.enabled {
		return true, 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	count, exists := rl.clients[ip]
	if !exists {
		go rl.resetCount(ip)
	}

	if count >= rl.limit {
		rl.logger.Debugf("Rate limit exceeded for client %s", ip)
		return false, rl.window
	}

	rl.clients[ip] = count + 1

	return true, 0
}

func (rl *FixedWindowRateLimiter) resetCount(ip string) {
	time.Sleep(rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	delete(rl.clients, ip)
}
