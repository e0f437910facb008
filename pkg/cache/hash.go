package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey returns "<stage>:<digest>", where the digest covers the JSON
// encoding of parts. Stage is "pattern" or "steps", so the two kinds of entry
// never collide even when their inputs match.
func hashKey(stage string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		// NaN and Inf dimensions don't encode; key them by their printed form.
		data = fmt.Appendf(nil, "%#v", parts)
	}
	return stage + ":" + Hash(data)
}

// Hash returns the hex SHA-256 digest of data. The pipeline uses it to
// identify a pattern by its text encoding, and FileCache to name entry files.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
