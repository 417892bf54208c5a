package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for the semantic answer cache. All
// implementations fail open: a backend problem reads as a miss and
// never blocks the pipeline.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a cache key from the normalized query and a context
// fingerprint (chart hash, mode, corpus version). Same question, same
// context, same key.
func Key(query, fingerprint string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	hash := sha256.Sum256([]byte(normalized + "|" + fingerprint))
	return "asterion:v1:" + hex.EncodeToString(hash[:])
}
