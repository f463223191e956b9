package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/contabildrive/drive-server/internal/logger"
)

// Login throttles login attempts per identifier+IP using a fixed
// window counter in Redis. Failures of Redis itself fail open so an
// unavailable cache never locks out the whole API.
type Login struct {
	rdb    *redis.Client
	max    int64
	window time.Duration
	logger *logger.Logger
}

func NewLogin(rdb *redis.Client, max int64, window time.Duration, l *logger.Logger) *Login {
	return &Login{
		rdb:    rdb,
		max:    max,
		window: window,
		logger: l,
	}
}

// Allow reports whether another attempt for the given identifier and
// source IP is permitted inside the current window.
func (l *Login) Allow(ctx context.Context, identifier, ip string) bool {
	key := fmt.Sprintf("login:%s:%s", identifier, ip)

	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Error("login limiter unavailable", "error", err)
		return true
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Error("failed to set login limiter expiry", "error", err)
		}
	}
	return count <= l.max
}

// Reset clears the counter after a successful login.
func (l *Login) Reset(ctx context.Context, identifier, ip string) {
	key := fmt.Sprintf("login:%s:%s", identifier, ip)
	if err := l.rdb.Del(ctx, key).Err(); err != nil {
		l.logger.Error("failed to reset login limiter", "error", err)
	}
}
