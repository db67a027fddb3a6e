// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"crypto/md5"
	"encoding/hex"
	"sync"
	"time"
)

// cacheEntry pairs a parsed response payload with the time it was stored.
type cacheEntry struct {
	at    time.Time
	value any
}

// respCache is a process-local response cache keyed by request signature.
// Staleness is checked at read time; entries are never proactively removed,
// so a long-lived client caching many distinct requests will grow. The
// clock is injected so tests can advance time without sleeping.
type respCache struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]cacheEntry
}

func newRespCache(now func() time.Time) *respCache {
	if now == nil {
		now = time.Now
	}
	return &respCache{
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

// get returns the cached value for key if its age is below maxAge.
func (rc *respCache) get(key string, maxAge time.Duration) (any, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	e, ok := rc.entries[key]
	if !ok {
		return nil, false
	}
	if rc.now().Sub(e.at) >= maxAge {
		return nil, false
	}
	return e.value, true
}

// put stores value under key stamped with the current clock time.
func (rc *respCache) put(key string, value any) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries[key] = cacheEntry{at: rc.now(), value: value}
}

// cacheKey returns the MD5 hash of method+url+body, encoded as a hex string.
// Two distinct bodies that serialize identically collide, which is acceptable
// for a helper of this scope.
func cacheKey(method, url string, body []byte) string {
	h := md5.New()
	_, _ = h.Write([]byte(method))
	_, _ = h.Write([]byte(url))
	_, _ = h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
