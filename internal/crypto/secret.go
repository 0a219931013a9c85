package crypto

import (
	"crypto/subtle"

	"solhello/internal/domain"
)

// Wipe zeroes secret material once it is no longer needed. The Go runtime may
// already hold copies, so this only narrows the window.
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
}

// WipeKeypair zeroes the secret half of kp in place.
func WipeKeypair(kp *domain.Keypair) {
	Wipe(kp.Private[:])
}
