// Package cache keeps routing and geocoding answers in Postgres so repeated
// runs over the same itinerary do not spend upstream quota.
package cache

import (
	"strings"
	"time"
)

// DefaultTTL is how long a cached answer is trusted.
const DefaultTTL = 30 * 24 * time.Hour

// uniqueKeys trims keys and drops blanks and repeats, keeping first-seen order.
func uniqueKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func ttlSeconds(ttl time.Duration) float64 {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return ttl.Seconds()
}
