package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey derives a namespaced cache key of the form prefix:sha256(parts).
// Parts are JSON-marshaled before hashing so option structs contribute
// field by field and key derivation stays stable across runs.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash returns the SHA-256 digest of data as a 64-character hex string.
// The pipeline uses it to fingerprint topology content for cache lookups.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
