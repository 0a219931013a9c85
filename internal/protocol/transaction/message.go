package transaction

import (
	"errors"
	"fmt"

	"solhello/internal/domain"
)

// maxAccountKeys is bounded by the u8 account indexes in compiled instructions.
const maxAccountKeys = 256

var (
	// ErrNoInstructions is returned when compiling an empty message.
	ErrNoInstructions = errors.New("message has no instructions")
	// ErrTooManyAccounts is returned when a message references more than 256 keys.
	ErrTooManyAccounts = errors.New("message references too many accounts")
)

// Header counts the signer and readonly accounts at the front and back of AccountKeys.
type Header struct {
	NumRequiredSignatures       uint8
	NumReadonlySignedAccounts   uint8
	NumReadonlyUnsignedAccounts uint8
}

// CompiledInstruction references its program and accounts by index into AccountKeys.
type CompiledInstruction struct {
	ProgramIDIndex uint8
	Accounts       []uint8
	Data           []byte
}

// Message is the signed portion of a transaction.
type Message struct {
	Header          Header
	AccountKeys     []domain.PublicKey
	RecentBlockhash domain.Hash
	Instructions    []CompiledInstruction
}

type keyMeta struct {
	key      domain.PublicKey
	signer   bool
	writable bool
}

// Compile orders the accounts of instructions behind the fee payer and
// resolves every reference to an index.
func Compile(payer domain.PublicKey, blockhash domain.Hash, instructions ...domain.Instruction) (Message, error) {
	if len(instructions) == 0 {
		return Message{}, ErrNoInstructions
	}

	var metas []*keyMeta
	seen := make(map[domain.PublicKey]*keyMeta)
	add := func(key domain.PublicKey, signer, writable bool) {
		if m, ok := seen[key]; ok {
			m.signer = m.signer || signer
			m.writable = m.writable || writable
			return
		}
		m := &keyMeta{key: key, signer: signer, writable: writable}
		seen[key] = m
		metas = append(metas, m)
	}

	add(payer, true, true)
	for _, ix := range instructions {
		for _, acc := range ix.Accounts {
			add(acc.PublicKey, acc.IsSigner, acc.IsWritable)
		}
		add(ix.ProgramID, false, false)
	}
	if len(metas) > maxAccountKeys {
		return Message{}, fmt.Errorf("%d keys: %w", len(metas), ErrTooManyAccounts)
	}

	// Stable partition; the payer stays first because it was added first.
	var msg Message
	groups := [4][]domain.PublicKey{}
	for _, m := range metas {
		switch {
		case m.signer && m.writable:
			groups[0] = append(groups[0], m.key)
		case m.signer:
			groups[1] = append(groups[1], m.key)
		case m.writable:
			groups[2] = append(groups[2], m.key)
		default:
			groups[3] = append(groups[3], m.key)
		}
	}
	for _, g := range groups {
		msg.AccountKeys = append(msg.AccountKeys, g...)
	}
	msg.Header = Header{
		NumRequiredSignatures:       uint8(len(groups[0]) + len(groups[1])),
		NumReadonlySignedAccounts:   uint8(len(groups[1])),
		NumReadonlyUnsignedAccounts: uint8(len(groups[3])),
	}
	msg.RecentBlockhash = blockhash

	index := make(map[domain.PublicKey]uint8, len(msg.AccountKeys))
	for i, k := range msg.AccountKeys {
		index[k] = uint8(i)
	}
	for _, ix := range instructions {
		ci := CompiledInstruction{
			ProgramIDIndex: index[ix.ProgramID],
			Accounts:       make([]uint8, len(ix.Accounts)),
			Data:           append([]byte(nil), ix.Data...),
		}
		for i, acc := range ix.Accounts {
			ci.Accounts[i] = index[acc.PublicKey]
		}
		msg.Instructions = append(msg.Instructions, ci)
	}
	return msg, nil
}

// Signers returns the keys that must sign the message, in signature order.
func (m Message) Signers() []domain.PublicKey {
	return m.AccountKeys[:m.Header.NumRequiredSignatures]
}

// Serialize encodes the message in wire format. These are the bytes that get signed.
func (m Message) Serialize() ([]byte, error) {
	b := make([]byte, 0, 3+1+len(m.AccountKeys)*32+32+64)
	b = append(b,
		m.Header.NumRequiredSignatures,
		m.Header.NumReadonlySignedAccounts,
		m.Header.NumReadonlyUnsignedAccounts,
	)

	var err error
	if b, err = AppendCompactU16(b, len(m.AccountKeys)); err != nil {
		return nil, err
	}
	for _, k := range m.AccountKeys {
		b = append(b, k[:]...)
	}
	b = append(b, m.RecentBlockhash[:]...)

	if b, err = AppendCompactU16(b, len(m.Instructions)); err != nil {
		return nil, err
	}
	for _, ci := range m.Instructions {
		b = append(b, ci.ProgramIDIndex)
		if b, err = AppendCompactU16(b, len(ci.Accounts)); err != nil {
			return nil, err
		}
		b = append(b, ci.Accounts...)
		if b, err = AppendCompactU16(b, len(ci.Data)); err != nil {
			return nil, err
		}
		b = append(b, ci.Data...)
	}
	return b, nil
}
