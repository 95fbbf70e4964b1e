// Package cache keeps API responses in memory for the lifetime of the process
// so that toggling settings back and forth or re-centering on the same place
// does not hit the network again.
package cache

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/rs/zerolog/log"
)

const (
	numCounters = 1e4 // ~10x the expected number of entries
	maxEntries  = 1 << 10
	bufferItems = 64
)

// Store is a bounded, TTL-aware in-memory cache. A nil *Store is valid and
// always misses.
type Store[V any] struct {
	c   *ristretto.Cache[string, V]
	ttl time.Duration
}

// New creates a Store whose entries expire after ttl. A zero ttl keeps
// entries until they are evicted.
func New[V any](ttl time.Duration) (*Store[V], error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters: numCounters,
		MaxCost:     maxEntries,
		BufferItems: bufferItems,
		// Cost counts entries, not bytes.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create cache: %w", err)
	}
	return &Store[V]{c: c, ttl: ttl}, nil
}

// Get returns the cached value for key.
func (s *Store[V]) Get(key string) (V, bool) {
	if s == nil {
		var zero V
		return zero, false
	}
	return s.c.Get(key)
}

// Set stores value under key, best effort. The cache may reject the write,
// in which case later lookups miss. An accepted write is visible to the
// next Get.
func (s *Store[V]) Set(key string, value V) {
	if s == nil {
		return
	}
	if !s.c.SetWithTTL(key, value, 1, s.ttl) {
		log.Debug().Str("key", key).Msg("[cache] write dropped")
		return
	}
	s.c.Wait()
}

// Close stops the cache's background goroutines.
func (s *Store[V]) Close() {
	if s == nil {
		return
	}
	s.c.Close()
}

// TimingsKey builds a deterministic key from the parameters that affect
// prayer times, so different locations, methods and schools never collide.
func TimingsKey(date time.Time, lat, lon float64, method, school int) string {
	raw := fmt.Sprintf("%s|%.6f|%.6f|%d|%d", date.Format("2006-01-02"), lat, lon, method, school)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("timings:%x", h[:8])
}

// PlaceKey identifies a reverse lookup. Coordinates are rounded to four
// decimals (~11 m), well below the resolution of a place name.
func PlaceKey(lat, lon float64) string {
	return fmt.Sprintf("place:%.4f,%.4f", lat, lon)
}
