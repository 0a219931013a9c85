package transaction

import (
	"errors"
	"fmt"

	"solhello/internal/domain"
)

var errShortInput = errors.New("unexpected end of input")

type reader struct {
	b   []byte
	off int
}

func (r *reader) next(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.b) {
		return nil, errShortInput
	}
	out := r.b[r.off : r.off+n]
	r.off += n
	return out, nil
}

func (r *reader) compactU16() (int, error) {
	n, size, err := DecodeCompactU16(r.b[r.off:])
	if err != nil {
		return 0, err
	}
	r.off += size
	return n, nil
}

// Parse decodes a wire transaction produced by Transaction.Serialize.
func Parse(wire []byte) (Transaction, error) {
	r := &reader{b: wire}
	n, err := r.compactU16()
	if err != nil {
		return Transaction{}, fmt.Errorf("signature count: %w", err)
	}
	var tx Transaction
	for i := 0; i < n; i++ {
		b, err := r.next(domain.SignatureLength)
		if err != nil {
			return Transaction{}, fmt.Errorf("signature %d: %w", i, err)
		}
		var sig domain.Signature
		copy(sig[:], b)
		tx.Signatures = append(tx.Signatures, sig)
	}
	if tx.Message, err = parseMessage(r); err != nil {
		return Transaction{}, err
	}
	if r.off != len(wire) {
		return Transaction{}, fmt.Errorf("%d trailing bytes", len(wire)-r.off)
	}
	return tx, nil
}

func parseMessage(r *reader) (Message, error) {
	var msg Message
	h, err := r.next(3)
	if err != nil {
		return msg, fmt.Errorf("header: %w", err)
	}
	msg.Header = Header{
		NumRequiredSignatures:       h[0],
		NumReadonlySignedAccounts:   h[1],
		NumReadonlyUnsignedAccounts: h[2],
	}

	n, err := r.compactU16()
	if err != nil {
		return msg, fmt.Errorf("account count: %w", err)
	}
	for i := 0; i < n; i++ {
		b, err := r.next(domain.PublicKeyLength)
		if err != nil {
			return msg, fmt.Errorf("account %d: %w", i, err)
		}
		var k domain.PublicKey
		copy(k[:], b)
		msg.AccountKeys = append(msg.AccountKeys, k)
	}

	b, err := r.next(len(msg.RecentBlockhash))
	if err != nil {
		return msg, fmt.Errorf("blockhash: %w", err)
	}
	copy(msg.RecentBlockhash[:], b)

	if n, err = r.compactU16(); err != nil {
		return msg, fmt.Errorf("instruction count: %w", err)
	}
	for i := 0; i < n; i++ {
		var ci CompiledInstruction
		p, err := r.next(1)
		if err != nil {
			return msg, fmt.Errorf("instruction %d: %w", i, err)
		}
		ci.ProgramIDIndex = p[0]

		na, err := r.compactU16()
		if err != nil {
			return msg, fmt.Errorf("instruction %d accounts: %w", i, err)
		}
		accs, err := r.next(na)
		if err != nil {
			return msg, fmt.Errorf("instruction %d accounts: %w", i, err)
		}
		ci.Accounts = append([]uint8(nil), accs...)

		nd, err := r.compactU16()
		if err != nil {
			return msg, fmt.Errorf("instruction %d data: %w", i, err)
		}
		data, err := r.next(nd)
		if err != nil {
			return msg, fmt.Errorf("instruction %d data: %w", i, err)
		}
		ci.Data = append([]byte(nil), data...)
		msg.Instructions = append(msg.Instructions, ci)
	}
	return msg, nil
}

// Decompile resolves a compiled instruction's indexes back to keys. Writable
// and signer flags are recovered from the message header.
func (m Message) Decompile(ci CompiledInstruction) (domain.Instruction, error) {
	key := func(idx uint8) (domain.PublicKey, error) {
		if int(idx) >= len(m.AccountKeys) {
			return domain.PublicKey{}, fmt.Errorf("account index %d out of range", idx)
		}
		return m.AccountKeys[idx], nil
	}
	program, err := key(ci.ProgramIDIndex)
	if err != nil {
		return domain.Instruction{}, err
	}
	ix := domain.Instruction{ProgramID: program, Data: append([]byte(nil), ci.Data...)}
	for _, idx := range ci.Accounts {
		k, err := key(idx)
		if err != nil {
			return domain.Instruction{}, err
		}
		ix.Accounts = append(ix.Accounts, domain.AccountMeta{
			PublicKey:  k,
			IsSigner:   m.isSigner(int(idx)),
			IsWritable: m.isWritable(int(idx)),
		})
	}
	return ix, nil
}

func (m Message) isSigner(i int) bool { return i < int(m.Header.NumRequiredSignatures) }

func (m Message) isWritable(i int) bool {
	signers := int(m.Header.NumRequiredSignatures)
	if i < signers {
		return i < signers-int(m.Header.NumReadonlySignedAccounts)
	}
	return i < len(m.AccountKeys)-int(m.Header.NumReadonlyUnsignedAccounts)
}
