package notify

import (
	"sync"

	"golang.org/x/time/rate"
)

// Limiter implements per-patient notification rate limiting so a
// repeating distress keyword does not flood caregivers with duplicate
// warnings
type Limiter struct {
	limiters     map[int64]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter
func NewLimiter(notificationsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     make(map[int64]*rate.Limiter),
		defaultRate:  rate.Limit(notificationsPerSecond),
		defaultBurst: burst,
	}
}

// Allow checks if a notification for the given patient is allowed
// without waiting
func (l *Limiter) Allow(patientID int64) bool {
	return l.getLimiter(patientID).Allow()
}

// getLimiter returns the rate limiter for a patient
func (l *Limiter) getLimiter(patientID int64) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[patientID]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[patientID]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[patientID] = limiter

	return limiter
}

// SetPatientRate sets a custom rate limit for a specific patient
func (l *Limiter) SetPatientRate(patientID int64, notificationsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.limiters[patientID] = rate.NewLimiter(rate.Limit(notificationsPerSecond), burst)
}
