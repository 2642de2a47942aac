// Package cache stores INDRA subgraph responses so reruns over the same
// network skip the (slow) subgraph query.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"
)

// Cache defines the caching interface.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from a network identity and its node-name
// set. Editing the node set invalidates the cached response.
func Key(networkID string, nodeNames []string) string {
	names := append([]string(nil), nodeNames...)
	sort.Strings(names)
	hash := sha256.Sum256([]byte(networkID + "\x00" + strings.Join(names, "\x00")))
	return "indra:v1:" + hex.EncodeToString(hash[:])
}
