package middleware

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/imthegoodboy/veristamp/internal/domain"
	"github.com/imthegoodboy/veristamp/internal/ratelimit"
)

// RateLimiterConfig holds configuration for rate limiting
type RateLimiterConfig struct {
	// Max requests per window, zero disables the middleware
	Max int
	// Window duration, shown to clients via Retry-After
	Window time.Duration
}

// RateLimit returns a middleware that enforces a sliding-window request
// limit per caller. Callers are keyed by wallet address when the header is
// present, by client IP otherwise. Counter store failures are logged and
// the request is allowed through.
func RateLimit(limiter *ratelimit.RateLimiter, cfg RateLimiterConfig, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.Max <= 0 {
			return c.Next()
		}

		caller := c.Get(WalletHeader)
		if caller == "" {
			caller = c.IP()
		}

		err := limiter.Check(c.Context(), caller, cfg.Max)
		if err == nil {
			return c.Next()
		}

		var exceeded *ratelimit.LimitExceededError
		if errors.As(err, &exceeded) {
			c.Set("X-RateLimit-Limit", strconv.Itoa(exceeded.Limit))
			c.Set("X-RateLimit-Remaining", "0")
			c.Set("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
			return domain.ErrRateLimited
		}

		// Fail open when the counter store is unreachable
		logger.Warn("rate limit check failed",
			slog.String("error", err.Error()),
		)
		return c.Next()
	}
}
