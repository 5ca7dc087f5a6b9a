package hasher

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/satriahrh/gerch/domain"
)

// New returns a domain.Hasher backed by SHA‑256. The hex digest is used as
// the audio clip key, so it must stay URL-safe.
func New() domain.Hasher { return sha256Hasher{} }

type sha256Hasher struct{}

func (h sha256Hasher) Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
