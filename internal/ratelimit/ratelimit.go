package ratelimit

import (
	"fmt"
	"sync"
	"time"

	gerr "github.com/jekabolt/wedding-rsvp/internal/errors"
)

// Limiter implements a simple in-memory fixed window rate limiter
type Limiter struct {
	mu       sync.RWMutex
	counters map[string]*counter
	window   time.Duration
	max      int
	done     chan struct{}
	stopOnce sync.Once
}

type counter struct {
	count     int
	expiresAt time.Time
}

// NewLimiter creates a new rate limiter with the specified window and max requests
func NewLimiter(window time.Duration, max int) *Limiter {
	l := &Limiter{
		counters: make(map[string]*counter),
		window:   window,
		max:      max,
		done:     make(chan struct{}),
	}
	go l.cleanup()
	return l
}

// Allow checks if a request for the given key is allowed
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		l.counters[key] = &counter{
			count:     1,
			expiresAt: now.Add(l.window),
		}
		return true
	}

	if c.count >= l.max {
		return false
	}

	c.count++
	return true
}

// Stop ends the cleanup goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}

// cleanup periodically removes expired counters
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
		}
		l.mu.Lock()
		now := time.Now()
		for key, c := range l.counters {
			if now.After(c.expiresAt) {
				delete(l.counters, key)
			}
		}
		l.mu.Unlock()
	}
}

const (
	keyIPLookup    = "ip_lookup"
	keyIPSubmit    = "ip_submit"
	keyEmailSubmit = "email_submit"
)

type Config struct {
	LookupPerMinute    int `mapstructure:"lookup_per_minute"`
	SubmitPerHour      int `mapstructure:"submit_per_hour"`
	EmailSubmitPerHour int `mapstructure:"email_submit_per_hour"`
}

// DefaultConfig is used for every zero field of a Config.
var DefaultConfig = Config{
	LookupPerMinute:    20,
	SubmitPerHour:      30,
	EmailSubmitPerHour: 10,
}

func (c Config) withDefaults() Config {
	if c.LookupPerMinute <= 0 {
		c.LookupPerMinute = DefaultConfig.LookupPerMinute
	}
	if c.SubmitPerHour <= 0 {
		c.SubmitPerHour = DefaultConfig.SubmitPerHour
	}
	if c.EmailSubmitPerHour <= 0 {
		c.EmailSubmitPerHour = DefaultConfig.EmailSubmitPerHour
	}
	return c
}

// MultiKeyLimiter manages multiple rate limiters for different types of operations
type MultiKeyLimiter struct {
	limiters map[string]*Limiter
	mu       sync.RWMutex
}

// NewCustomMultiKeyLimiter creates a limiter with custom limits
func NewCustomMultiKeyLimiter(c Config) *MultiKeyLimiter {
	c = c.withDefaults()
	return &MultiKeyLimiter{
		limiters: map[string]*Limiter{
			keyIPLookup:    NewLimiter(time.Minute, c.LookupPerMinute),
			keyIPSubmit:    NewLimiter(time.Hour, c.SubmitPerHour),
			keyEmailSubmit: NewLimiter(time.Hour, c.EmailSubmitPerHour),
		},
	}
}

// CheckLookup verifies if an email lookup is allowed from the given IP
func (m *MultiKeyLimiter) CheckLookup(ip string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.limiters[keyIPLookup].Allow(ip) {
		return fmt.Errorf("too many lookups from %s: %w", ip, gerr.ErrRateLimited)
	}

	return nil
}

// CheckSubmit verifies if an RSVP can be submitted from the given IP and email
func (m *MultiKeyLimiter) CheckSubmit(ip, email string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.limiters[keyIPSubmit].Allow(ip) {
		return fmt.Errorf("too many submissions from %s: %w", ip, gerr.ErrRateLimited)
	}

	if email != "" && !m.limiters[keyEmailSubmit].Allow(email) {
		return fmt.Errorf("too many submissions for %s: %w", email, gerr.ErrRateLimited)
	}

	return nil
}

// Stop ends the cleanup goroutines of every limiter.
func (m *MultiKeyLimiter) Stop() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.limiters {
		l.Stop()
	}
}
