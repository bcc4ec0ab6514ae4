// Package cache provides short-lived caching of analysis results so the
// server does not rescore identical transcripts. Reports are cheap to
// recompute; the cache exists to absorb repeated submissions of the same
// conversation, not to be a durable store.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ReportKey generates a cache key for one analysis request. Everything
// that changes the report must be part of the key: transcript text,
// participant names (they drive speaker attribution), and stage.
func ReportKey(transcript, caregiverName, patientName, stage string) string {
	hash := sha256.Sum256(fmt.Appendf(nil, "%s\x00%s\x00%s\x00%s",
		transcript, caregiverName, patientName, stage))
	return "memorycare:v1:" + hex.EncodeToString(hash[:])
}
