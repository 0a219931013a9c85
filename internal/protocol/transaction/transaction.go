package transaction

import (
	"errors"
	"fmt"

	"solhello/internal/crypto"
	"solhello/internal/domain"
)

// ErrMissingSigner is returned when a required signer has no keypair.
var ErrMissingSigner = errors.New("missing signer")

// Transaction is a message plus one signature per required signer.
type Transaction struct {
	Signatures []domain.Signature
	Message    Message
}

// Sign signs msg with the keypairs matching its required signers. Extra
// keypairs are ignored.
func Sign(msg Message, signers ...domain.Keypair) (Transaction, error) {
	raw, err := msg.Serialize()
	if err != nil {
		return Transaction{}, err
	}
	byKey := make(map[domain.PublicKey]domain.Keypair, len(signers))
	for _, s := range signers {
		byKey[s.Public] = s
	}

	tx := Transaction{Message: msg}
	for _, key := range msg.Signers() {
		kp, ok := byKey[key]
		if !ok {
			return Transaction{}, fmt.Errorf("%w: %s", ErrMissingSigner, key)
		}
		tx.Signatures = append(tx.Signatures, crypto.Sign(kp, raw))
	}
	return tx, nil
}

// ID returns the first signature, which the cluster uses to identify the transaction.
func (t Transaction) ID() domain.Signature {
	if len(t.Signatures) == 0 {
		return domain.Signature{}
	}
	return t.Signatures[0]
}

// Serialize encodes the signed transaction in wire format.
func (t Transaction) Serialize() ([]byte, error) {
	msg, err := t.Message.Serialize()
	if err != nil {
		return nil, err
	}
	b := make([]byte, 0, 1+len(t.Signatures)*domain.SignatureLength+len(msg))
	if b, err = AppendCompactU16(b, len(t.Signatures)); err != nil {
		return nil, err
	}
	for _, s := range t.Signatures {
		b = append(b, s[:]...)
	}
	return append(b, msg...), nil
}

// Build compiles, signs and serializes instructions in one step. The payer
// signs first; other signers follow in the order their keys were compiled.
func Build(
	payer domain.Keypair,
	blockhash domain.Hash,
	signers []domain.Keypair,
	instructions ...domain.Instruction,
) (Transaction, []byte, error) {
	msg, err := Compile(payer.Public, blockhash, instructions...)
	if err != nil {
		return Transaction{}, nil, err
	}
	tx, err := Sign(msg, append([]domain.Keypair{payer}, signers...)...)
	if err != nil {
		return Transaction{}, nil, err
	}
	wire, err := tx.Serialize()
	if err != nil {
		return Transaction{}, nil, err
	}
	return tx, wire, nil
}
