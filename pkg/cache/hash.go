package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/matzehuels/mosaic/pkg/layout"
)

// Key kinds. A key reads "<kind>:<sha256 hex>" so layouts and artifacts
// can share one store.
const (
	kindLayout   = "layout"
	kindArtifact = "artifact"
)

// keyOf hashes the JSON encoding of parts under kind. Key components are
// plain structs of numbers and strings; a value JSON cannot encode (NaN)
// still yields a stable key for its kind.
func keyOf(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashLayout fingerprints a computed layout. Artifact keys are derived
// from it, so moving one placement invalidates every format rendered from
// the old layout. It returns "" when the layout cannot be encoded.
func HashLayout(l layout.Result) string {
	data, err := json.Marshal(l)
	if err != nil {
		return ""
	}
	return Hash(data)
}
