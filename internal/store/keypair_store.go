package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"solhello/internal/crypto"
	"solhello/internal/domain"
)

// ErrPassphraseRequired is returned when loading an encrypted keypair without a passphrase.
var ErrPassphraseRequired = errors.New("keypair file is encrypted: passphrase required")

// KeypairFileStore reads and writes keypair files.
//
// Plain files use the Solana CLI layout: a JSON array of the 64 secret key
// bytes. With a passphrase the same array is sealed with scrypt and
// XChaCha20-Poly1305 and stored as a JSON object whose header is
// authenticated along with the ciphertext.
type KeypairFileStore struct {
	mu sync.Mutex
}

// NewKeypairFileStore returns a KeypairFileStore.
func NewKeypairFileStore() *KeypairFileStore { return &KeypairFileStore{} }

// SaveKeypair writes keypair to path, encrypted when passphrase is non-empty.
func (s *KeypairFileStore) SaveKeypair(path, passphrase string, keypair domain.Keypair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := encodeSecret(keypair.Private)
	if err != nil {
		return err
	}
	defer crypto.Wipe(raw)

	if passphrase != "" {
		if raw, err = seal(passphrase, raw, defaultKDF()); err != nil {
			return err
		}
	}
	return writeFile(path, raw, 0o600)
}

// LoadKeypair reads the keypair at path.
func (s *KeypairFileStore) LoadKeypair(path, passphrase string) (domain.Keypair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(path)
	if err != nil {
		return domain.Keypair{}, err
	}
	if b == nil {
		return domain.Keypair{}, fmt.Errorf("%w: %s", domain.ErrKeypairNotFound, path)
	}

	if bytes.HasPrefix(bytes.TrimSpace(b), []byte("{")) {
		if passphrase == "" {
			return domain.Keypair{}, ErrPassphraseRequired
		}
		if b, err = open(passphrase, b); err != nil {
			return domain.Keypair{}, err
		}
		defer crypto.Wipe(b)
	}

	secret, err := decodeSecret(b)
	if err != nil {
		return domain.Keypair{}, fmt.Errorf("keypair %s: %w", path, err)
	}
	defer crypto.Wipe(secret)
	return crypto.KeypairFromSecret(secret)
}

// encodeSecret renders the secret as a JSON number array; []byte would
// marshal as base64.
func encodeSecret(secret domain.PrivateKey) ([]byte, error) {
	nums := make([]int, len(secret))
	for i, v := range secret {
		nums[i] = int(v)
	}
	return json.Marshal(nums)
}

func decodeSecret(b []byte) ([]byte, error) {
	var nums []int
	if err := json.Unmarshal(b, &nums); err != nil {
		return nil, err
	}
	if len(nums) != domain.PrivateKeyLength {
		return nil, fmt.Errorf("want %d secret key bytes, got %d", domain.PrivateKeyLength, len(nums))
	}
	out := make([]byte, len(nums))
	for i, v := range nums {
		if v < 0 || v > 0xff {
			return nil, fmt.Errorf("secret key byte %d out of range: %d", i, v)
		}
		out[i] = byte(v)
	}
	return out, nil
}

// Compile-time assertion that KeypairFileStore implements domain.KeypairStore.
var _ domain.KeypairStore = (*KeypairFileStore)(nil)
