package httpmiddleware

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jeswin2007cs/scms/internal/response"
)

// TokenBucket is an in-memory per-client limiter. Each key holds up to
// burst tokens and regains perMinute tokens per minute. State is lost on restart.
type TokenBucket struct {
	burst     float64
	perSecond float64
	now       func() time.Time

	mu      sync.Mutex
	clients map[string]*allowance
	swept   time.Time
}

// sweepEvery bounds how often allow scans for idle clients.
const sweepEvery = time.Minute

type allowance struct {
	tokens float64
	seen   time.Time
}

// NewTokenBucket creates a limiter allowing perMinute requests per client,
// with bursts up to burst. A non-positive perMinute disables limiting.
func NewTokenBucket(burst, perMinute int) *TokenBucket {
	if burst <= 0 {
		burst = perMinute
	}
	return &TokenBucket{
		burst:     float64(burst),
		perSecond: float64(perMinute) / 60,
		now:       time.Now,
		clients:   make(map[string]*allowance),
	}
}

// Middleware limits by client IP and route so a flood on one login form
// does not lock the client out of the other.
func (l *TokenBucket) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.perSecond <= 0 {
			c.Next()
			return
		}
		key := c.ClientIP() + " " + c.FullPath()
		if !l.allow(key) {
			slog.Warn("rate limited", slog.String("ip", c.ClientIP()), slog.String("route", c.FullPath()))
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.GeneralError(errRateLimited))
			return
		}
		c.Next()
	}
}

var errRateLimited = errors.New("too many attempts, try again later")

func (l *TokenBucket) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.swept) >= sweepEvery {
		l.sweep(now)
	}
	a, ok := l.clients[key]
	if !ok {
		a = &allowance{tokens: l.burst, seen: now}
		l.clients[key] = a
	}
	a.tokens = math.Min(l.burst, a.tokens+now.Sub(a.seen).Seconds()*l.perSecond)
	a.seen = now

	if a.tokens < 1 {
		return false
	}
	a.tokens--
	return true
}

// sweep forgets clients whose bucket has refilled; they are indistinguishable
// from clients never seen. Caller holds l.mu.
func (l *TokenBucket) sweep(now time.Time) {
	for key, a := range l.clients {
		if a.tokens+now.Sub(a.seen).Seconds()*l.perSecond >= l.burst {
			delete(l.clients, key)
		}
	}
	l.swept = now
}
