package crawler

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter enforces the fixed pause between consecutive requests to the same
// domain. Burst is 1, so the first request passes immediately and every
// later one waits out the interval.
type Limiter struct {
	interval time.Duration
	domains  map[string]*rate.Limiter
	mu       sync.Mutex
}

// NewLimiter creates a limiter with the given inter-request interval.
func NewLimiter(interval time.Duration) *Limiter {
	return &Limiter{
		interval: interval,
		domains:  make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to the URL's domain is allowed, or the context
// is cancelled.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	return l.domainLimiter(extractDomain(rawURL)).Wait(ctx)
}

func (l *Limiter) domainLimiter(domain string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.domains[domain]; ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Every(l.interval), 1)
	l.domains[domain] = lim
	return lim
}

// extractDomain extracts the lowercased hostname from a URL string.
func extractDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "unknown"
	}
	domain := parsed.Hostname()
	if domain == "" {
		return "unknown"
	}
	return strings.ToLower(domain)
}
