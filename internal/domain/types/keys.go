package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	// PublicKeyLength is the size of an account address in bytes.
	PublicKeyLength = 32
	// PrivateKeyLength is the size of an ed25519 secret key (seed || public key).
	PrivateKeyLength = 64
	// SignatureLength is the size of an ed25519 signature.
	SignatureLength = 64
)

// PublicKey is an ed25519 public key used as an account address.
type PublicKey [PublicKeyLength]byte

// Slice returns the key as a []byte.
func (p PublicKey) Slice() []byte { return p[:] }

// IsZero reports whether p is the all-zero key.
func (p PublicKey) IsZero() bool { return p == PublicKey{} }

// String returns the base58 form of the key.
func (p PublicKey) String() string { return base58.Encode(p[:]) }

// MarshalText implements encoding.TextMarshaler.
func (p PublicKey) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PublicKey) UnmarshalText(text []byte) error {
	k, err := PublicKeyFromBase58(string(text))
	if err != nil {
		return err
	}
	*p = k
	return nil
}

// PublicKeyFromBase58 decodes a base58 address.
func PublicKeyFromBase58(s string) (PublicKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("decode public key %q: %w", s, err)
	}
	if len(b) != PublicKeyLength {
		return PublicKey{}, fmt.Errorf("public key %q: want %d bytes, got %d", s, PublicKeyLength, len(b))
	}
	var out PublicKey
	copy(out[:], b)
	return out, nil
}

// MustPublicKey decodes s and panics on failure. Intended for well-known addresses.
func MustPublicKey(s string) PublicKey {
	k, err := PublicKeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return k
}

// PrivateKey is an ed25519 signing key in crypto/ed25519 layout.
type PrivateKey [PrivateKeyLength]byte

// Slice returns the key as a []byte.
func (k PrivateKey) Slice() []byte { return k[:] }

// Public returns the public half stored in the trailing 32 bytes.
func (k PrivateKey) Public() PublicKey {
	var out PublicKey
	copy(out[:], k[32:])
	return out
}

// Keypair is a fee payer or program signing key.
type Keypair struct {
	Public  PublicKey
	Private PrivateKey
}

// Signature is an ed25519 transaction signature.
type Signature [SignatureLength]byte

// String returns the base58 form of the signature.
func (s Signature) String() string { return base58.Encode(s[:]) }

// SignatureFromBase58 decodes a base58 signature.
func SignatureFromBase58(s string) (Signature, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Signature{}, fmt.Errorf("decode signature %q: %w", s, err)
	}
	if len(b) != SignatureLength {
		return Signature{}, fmt.Errorf("signature %q: want %d bytes, got %d", s, SignatureLength, len(b))
	}
	var out Signature
	copy(out[:], b)
	return out, nil
}

// Hash is a 32-byte blockhash.
type Hash [32]byte

// String returns the base58 form of the hash.
func (h Hash) String() string { return base58.Encode(h[:]) }

// HashFromBase58 decodes a base58 blockhash.
func HashFromBase58(s string) (Hash, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Hash{}, fmt.Errorf("decode hash %q: %w", s, err)
	}
	if len(b) != len(Hash{}) {
		return Hash{}, fmt.Errorf("hash %q: want 32 bytes, got %d", s, len(b))
	}
	var out Hash
	copy(out[:], b)
	return out, nil
}
