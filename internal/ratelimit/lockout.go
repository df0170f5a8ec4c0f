package ratelimit

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aidesk/ticket-backend/internal/config"
)

const lockoutKeyPrefix = "lockout:login:"

// LoginLockout throttles repeated failed logins per email. It fails open:
// a store error never blocks a legitimate login.
type LoginLockout struct {
	store       CounterStore
	maxFailures int64
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginLockout builds the lockout with configured threshold and window.
func NewLoginLockout(store CounterStore, cfg config.LockoutConfig, logger *zap.Logger) *LoginLockout {
	maxFailures := int64(cfg.MaxFailures)
	if maxFailures <= 0 {
		maxFailures = 10
	}
	return &LoginLockout{
		store:       store,
		maxFailures: maxFailures,
		window:      cfg.Window(),
		logger:      logger,
	}
}

// Locked reports whether the email has exceeded the failure threshold
// within the window.
func (l *LoginLockout) Locked(ctx context.Context, email string) bool {
	count, err := l.store.Count(ctx, lockoutKey(email))
	if err != nil {
		l.logger.Warn("lockout store unavailable; allowing login", zap.Error(err))
		return false
	}
	return count >= l.maxFailures
}

// RecordFailure counts one failed attempt.
func (l *LoginLockout) RecordFailure(ctx context.Context, email string) {
	if _, err := l.store.Incr(ctx, lockoutKey(email), l.window); err != nil {
		l.logger.Warn("failed to record login failure", zap.Error(err))
	}
}

// Clear resets the counter after a successful login.
func (l *LoginLockout) Clear(ctx context.Context, email string) {
	if err := l.store.Reset(ctx, lockoutKey(email)); err != nil {
		l.logger.Warn("failed to clear login failures", zap.Error(err))
	}
}

func lockoutKey(email string) string {
	return lockoutKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}
