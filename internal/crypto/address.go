package crypto

import (
	"crypto/sha256"
	"errors"

	"solhello/internal/domain"
)

// MaxSeedLength is the longest seed accepted by CreateWithSeed.
const MaxSeedLength = 32

// ErrSeedTooLong is returned for seeds longer than MaxSeedLength bytes.
var ErrSeedTooLong = errors.New("seed exceeds 32 bytes")

// CreateWithSeed derives the address the system program assigns to an account
// created from base and seed for owner: sha256(base || seed || owner).
func CreateWithSeed(base domain.PublicKey, seed string, owner domain.PublicKey) (domain.PublicKey, error) {
	if len(seed) > MaxSeedLength {
		return domain.PublicKey{}, ErrSeedTooLong
	}
	h := sha256.New()
	h.Write(base[:])
	h.Write([]byte(seed))
	h.Write(owner[:])
	var out domain.PublicKey
	copy(out[:], h.Sum(nil))
	return out, nil
}
