package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"srtm-backend/internal/shared/metrics"
	"srtm-backend/internal/shared/server/respond"
)

const (
	defaultRateLimitGroup = "DEFAULT"
	limiterIdleTTL        = 10 * time.Minute
)

// RateLimitRule is a token bucket: Rate tokens per second, up to Burst.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

// RateLimitConfig maps each request to a group and each group to a rule.
// Groups without a rule are not limited.
type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	GroupFor     func(*gin.Context) string
	Limiter      *RateLimiter
}

// RateLimiter keeps one limiter per client and group. Limiters idle for
// longer than limiterIdleTTL are dropped.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	now       func() time.Time
	lastSweep time.Time
}

type clientLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{limiters: make(map[string]*clientLimiter), now: now, lastSweep: now()}
}

func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = defaultRateLimitGroup
	}
	return func(c *gin.Context) {
		group := cfg.groupOf(c)
		rule, ok := cfg.Rules[group]
		if !ok {
			c.Next()
			return
		}
		allowed, wait := cfg.Limiter.Allow(c.ClientIP()+"|"+group, rule)
		if allowed {
			c.Next()
			return
		}
		metrics.IncRateLimited(group)
		if wait <= 0 {
			wait = time.Second
		}
		c.Header("Retry-After", strconv.Itoa(int((wait+time.Second-1)/time.Second)))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "too many requests", gin.H{
			"group":        group,
			"retryAfterMs": wait.Milliseconds(),
		})
	}
}

func (cfg RateLimitConfig) groupOf(c *gin.Context) string {
	if cfg.GroupFor != nil {
		if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
			return g
		}
	}
	return cfg.DefaultGroup
}

// Allow reports whether a request for key may proceed under rule, and if not,
// how long the caller should wait. A nil limiter or a non-positive rule allows everything.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweepLocked(now)
	entry, ok := l.limiters[key]
	if !ok {
		entry = &clientLimiter{lim: rate.NewLimiter(rate.Limit(rule.Rate), rule.Burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	res := entry.lim.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Second
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// sweepLocked runs at most once per limiterIdleTTL. A dropped client starts
// again with a full bucket, which is what an idle limiter holds anyway.
func (l *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < limiterIdleTTL {
		return
	}
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= limiterIdleTTL {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}
