package crypto

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"solhello/internal/domain"
)

// ErrInvalidKeypair is returned when a secret key does not match its public half.
var ErrInvalidKeypair = errors.New("invalid keypair: public key does not match secret key")

// GenerateKeypair returns a new random ed25519 keypair.
func GenerateKeypair() (domain.Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return domain.Keypair{}, err
	}
	var kp domain.Keypair
	copy(kp.Public[:], pub)
	copy(kp.Private[:], priv)
	Wipe(priv)
	return kp, nil
}

// KeypairFromSecret builds a keypair from the 64-byte secret key format used
// in Solana keypair files and checks that its public half is consistent.
func KeypairFromSecret(secret []byte) (domain.Keypair, error) {
	if len(secret) != ed25519.PrivateKeySize {
		return domain.Keypair{}, fmt.Errorf("secret key: want %d bytes, got %d", ed25519.PrivateKeySize, len(secret))
	}
	derived := ed25519.NewKeyFromSeed(secret[:ed25519.SeedSize])
	defer Wipe(derived)
	if !bytes.Equal(derived[ed25519.SeedSize:], secret[ed25519.SeedSize:]) {
		return domain.Keypair{}, ErrInvalidKeypair
	}
	var kp domain.Keypair
	copy(kp.Private[:], secret)
	copy(kp.Public[:], secret[ed25519.SeedSize:])
	return kp, nil
}

// Sign signs msg with the keypair's secret key.
func Sign(kp domain.Keypair, msg []byte) domain.Signature {
	var sig domain.Signature
	copy(sig[:], ed25519.Sign(ed25519.PrivateKey(kp.Private[:]), msg))
	return sig
}

// Verify checks sig over msg with pub.
func Verify(pub domain.PublicKey, msg []byte, sig domain.Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(pub[:]), msg, sig[:])
}
