package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const (
	envelopeVersion = 2
	// envelopeKind names what an envelope holds.
	envelopeKind = "solana-keypair"
)

// ErrWrongPassphrase is returned when the passphrase is incorrect or the
// ciphertext has been modified.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted keypair file")

// kdfParams are the scrypt cost parameters stored next to the ciphertext.
type kdfParams struct {
	N int `json:"n"`
	R int `json:"r"`
	P int `json:"p"`
}

func defaultKDF() kdfParams { return kdfParams{N: 1 << 15, R: 8, P: 1} }

func (k kdfParams) key(passphrase string, salt []byte) ([]byte, error) {
	return scrypt.Key([]byte(passphrase), salt, k.N, k.R, k.P, chacha20poly1305.KeySize)
}

// envelopeHeader is authenticated but not encrypted.
type envelopeHeader struct {
	Version int       `json:"version"`
	Kind    string    `json:"kind"`
	Salt    []byte    `json:"salt"`
	KDF     kdfParams `json:"scrypt"`
}

// additionalData binds every header field to the ciphertext.
func (h envelopeHeader) additionalData() ([]byte, error) {
	return json.Marshal(h)
}

// envelope is the on-disk form of a sealed keypair.
type envelope struct {
	envelopeHeader
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

// seal encrypts raw under a key derived from passphrase with XChaCha20-Poly1305.
func seal(passphrase string, raw []byte, kdf kdfParams) ([]byte, error) {
	hdr := envelopeHeader{Version: envelopeVersion, Kind: envelopeKind, Salt: make([]byte, 16), KDF: kdf}
	if _, err := rand.Read(hdr.Salt); err != nil {
		return nil, err
	}
	key, err := kdf.key(passphrase, hdr.Salt)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	ad, err := hdr.additionalData()
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{
		envelopeHeader: hdr,
		Nonce:          nonce,
		Cipher:         aead.Seal(nil, nonce, raw, ad),
	})
}

// open reverses seal. Any change to the header fails authentication.
func open(passphrase string, b []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("parse keypair envelope: %w", err)
	}
	if env.Version != envelopeVersion {
		return nil, fmt.Errorf("unsupported keypair file version %d", env.Version)
	}
	if env.Kind != envelopeKind {
		return nil, fmt.Errorf("keypair file holds %q, not %q", env.Kind, envelopeKind)
	}

	key, err := env.KDF.key(passphrase, env.Salt)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(env.Nonce) != aead.NonceSize() {
		return nil, ErrWrongPassphrase
	}
	ad, err := env.additionalData()
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, env.Nonce, env.Cipher, ad)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}
