// Package guard enforces the operational safety cap on automated actions.
package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const counterKeyPrefix = "autopilot:automations:"

// counterTTL keeps day-scoped counters around briefly for inspection
// after the day rolls over.
const counterTTL = 48 * time.Hour

// DailyLimiter counts automation actions per UTC day in Redis and blocks
// further actions once the configured cap is reached. When Redis cannot
// answer, the limiter fails open: a broken counter must not stop VIP
// remediation, only the cap enforcement degrades.
type DailyLimiter struct {
	client *redis.Client
	max    int
	logger *zap.Logger
	now    func() time.Time
}

// NewDailyLimiter builds a limiter. A non-positive max disables the cap.
func NewDailyLimiter(client *redis.Client, max int, logger *zap.Logger) *DailyLimiter {
	return &DailyLimiter{client: client, max: max, logger: logger, now: time.Now}
}

// Allow reserves one automation slot for today. It returns the running
// count for the day and whether the action may proceed.
func (l *DailyLimiter) Allow(ctx context.Context) (int64, bool) {
	if l.max <= 0 || l.client == nil {
		return 0, true
	}

	key := l.key()
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("automation counter unavailable, allowing action", zap.Error(err))
		return 0, true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, counterTTL).Err(); err != nil {
			l.logger.Warn("failed to set automation counter expiry", zap.Error(err))
		}
	}

	if count > int64(l.max) {
		return count, false
	}
	return count, true
}

// Release returns a reserved slot, used when the action never executed.
func (l *DailyLimiter) Release(ctx context.Context) {
	if l.max <= 0 || l.client == nil {
		return
	}
	if err := l.client.Decr(ctx, l.key()).Err(); err != nil {
		l.logger.Warn("failed to release automation counter", zap.Error(err))
	}
}

func (l *DailyLimiter) key() string {
	return fmt.Sprintf("%s%s", counterKeyPrefix, l.now().UTC().Format("2006-01-02"))
}
