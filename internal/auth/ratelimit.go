package auth

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const signInAttemptKeyPrefix = "signin:attempts:"

// SignInLimiter throttles repeated failed sign-ins per identifier using a
// Redis counter with a rolling expiry. A nil client disables the limiter.
type SignInLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
	logger      *zap.Logger
}

// NewSignInLimiter builds a limiter. client may be nil.
func NewSignInLimiter(client *redis.Client, maxAttempts int, window time.Duration, logger *zap.Logger) *SignInLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &SignInLimiter{client: client, maxAttempts: maxAttempts, window: window, logger: logger}
}

// Limited reports whether the identifier has exhausted its attempts.
func (l *SignInLimiter) Limited(ctx context.Context, identifier string) (bool, error) {
	if l == nil || l.client == nil {
		return false, nil
	}
	count, err := l.client.Get(ctx, l.key(identifier)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= int64(l.maxAttempts), nil
}

// RecordFailure counts a failed attempt and refreshes the window.
func (l *SignInLimiter) RecordFailure(ctx context.Context, identifier string) {
	if l == nil || l.client == nil {
		return
	}
	key := l.key(identifier)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil && l.logger != nil {
		l.logger.Warn("failed to record sign-in attempt", zap.Error(err))
	}
}

// Reset clears the counter after a successful sign-in.
func (l *SignInLimiter) Reset(ctx context.Context, identifier string) {
	if l == nil || l.client == nil {
		return
	}
	if err := l.client.Del(ctx, l.key(identifier)).Err(); err != nil && l.logger != nil {
		l.logger.Warn("failed to reset sign-in attempts", zap.Error(err))
	}
}

func (l *SignInLimiter) key(identifier string) string {
	return signInAttemptKeyPrefix + strings.ToUpper(identifier)
}
