package transaction_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"solhello/internal/crypto"
	"solhello/internal/domain"
	"solhello/internal/protocol/transaction"
)

func TestCompactU16(t *testing.T) {
	cases := []struct {
		n    int
		want []byte
	}{
		{0, []byte{0x00}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x80, 0x01}},
		{0x3fff, []byte{0xff, 0x7f}},
		{0x4000, []byte{0x80, 0x80, 0x01}},
		{0xffff, []byte{0xff, 0xff, 0x03}},
	}
	for _, tc := range cases {
		got, err := transaction.AppendCompactU16(nil, tc.n)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "encode %d", tc.n)

		n, size, err := transaction.DecodeCompactU16(got)
		require.NoError(t, err)
		require.Equal(t, tc.n, n)
		require.Equal(t, len(tc.want), size)
	}

	_, err := transaction.AppendCompactU16(nil, 0x10000)
	require.Error(t, err)
	_, _, err = transaction.DecodeCompactU16([]byte{0x80})
	require.Error(t, err)
}

func TestCompile_OrdersAccounts(t *testing.T) {
	payer := domain.PublicKey{1}
	base := domain.PublicKey{2}
	data := domain.PublicKey{3}
	program := domain.PublicKey{4}
	readonly := domain.PublicKey{5}

	msg, err := transaction.Compile(payer, domain.Hash{9},
		domain.Instruction{
			ProgramID: program,
			Accounts: []domain.AccountMeta{
				{PublicKey: readonly},
				{PublicKey: data, IsWritable: true},
				{PublicKey: base, IsSigner: true},
			},
			Data: []byte{7},
		},
		domain.Instruction{
			ProgramID: program,
			Accounts:  []domain.AccountMeta{{PublicKey: payer}, {PublicKey: readonly, IsWritable: true}},
		},
	)
	require.NoError(t, err)

	require.Equal(t, []domain.PublicKey{payer, base, readonly, data, program}, msg.AccountKeys)
	require.Equal(t, transaction.Header{
		NumRequiredSignatures:       2,
		NumReadonlySignedAccounts:   1,
		NumReadonlyUnsignedAccounts: 1,
	}, msg.Header)
	require.Equal(t, []domain.PublicKey{payer, base}, msg.Signers())

	require.Len(t, msg.Instructions, 2)
	require.Equal(t, uint8(4), msg.Instructions[0].ProgramIDIndex)
	require.Equal(t, []uint8{2, 3, 1}, msg.Instructions[0].Accounts)
	require.Equal(t, []uint8{0, 2}, msg.Instructions[1].Accounts)
}

func TestCompile_NoInstructions(t *testing.T) {
	_, err := transaction.Compile(domain.PublicKey{1}, domain.Hash{})
	require.ErrorIs(t, err, transaction.ErrNoInstructions)
}

func TestMessageSerialize_Layout(t *testing.T) {
	payer := domain.PublicKey{1}
	account := domain.PublicKey{2}
	program := domain.PublicKey{3}
	blockhash := domain.Hash{4}

	msg, err := transaction.Compile(payer, blockhash, domain.Instruction{
		ProgramID: program,
		Accounts:  []domain.AccountMeta{{PublicKey: account, IsWritable: true}},
		Data:      []byte{0x2a, 0, 0, 0},
	})
	require.NoError(t, err)

	raw, err := msg.Serialize()
	require.NoError(t, err)

	var want []byte
	want = append(want, 1, 0, 1) // header
	want = append(want, 3)       // account key count
	want = append(want, payer[:]...)
	want = append(want, account[:]...)
	want = append(want, program[:]...)
	want = append(want, blockhash[:]...)
	want = append(want, 1)          // instruction count
	want = append(want, 2)          // program id index
	want = append(want, 1, 1)       // one account, index 1
	want = append(want, 4)          // data length
	want = append(want, 0x2a, 0, 0, 0)
	require.Equal(t, want, raw)
}

func TestBuild_SignsInOrder(t *testing.T) {
	payer, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	base, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	ix := domain.Instruction{
		ProgramID: domain.PublicKey{9},
		Accounts:  []domain.AccountMeta{{PublicKey: base.Public, IsSigner: true}},
	}

	tx, wire, err := transaction.Build(payer, domain.Hash{1}, []domain.Keypair{base}, ix)
	require.NoError(t, err)
	require.Len(t, tx.Signatures, 2)
	require.Equal(t, tx.Signatures[0], tx.ID())

	msg, err := tx.Message.Serialize()
	require.NoError(t, err)
	require.True(t, crypto.Verify(payer.Public, msg, tx.Signatures[0]))
	require.True(t, crypto.Verify(base.Public, msg, tx.Signatures[1]))

	require.Equal(t, byte(2), wire[0])
	require.Equal(t, tx.Signatures[0][:], wire[1:65])
	require.Equal(t, tx.Signatures[1][:], wire[65:129])
	require.Equal(t, msg, wire[129:])
}

func TestSign_MissingSigner(t *testing.T) {
	payer, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	msg, err := transaction.Compile(payer.Public, domain.Hash{}, domain.Instruction{
		ProgramID: domain.PublicKey{9},
		Accounts:  []domain.AccountMeta{{PublicKey: domain.PublicKey{8}, IsSigner: true}},
	})
	require.NoError(t, err)

	_, err = transaction.Sign(msg, payer)
	require.ErrorIs(t, err, transaction.ErrMissingSigner)
}

func TestParse_RoundTrip(t *testing.T) {
	payer, err := crypto.GenerateKeypair()
	require.NoError(t, err)

	ix := domain.Instruction{
		ProgramID: domain.PublicKey{9},
		Accounts: []domain.AccountMeta{
			{PublicKey: domain.PublicKey{7}, IsWritable: true},
			{PublicKey: domain.PublicKey{8}},
		},
		Data: []byte{1, 2, 3},
	}
	tx, wire, err := transaction.Build(payer, domain.Hash{5}, nil, ix)
	require.NoError(t, err)

	got, err := transaction.Parse(wire)
	require.NoError(t, err)
	require.Equal(t, tx, got)

	back, err := got.Message.Decompile(got.Message.Instructions[0])
	require.NoError(t, err)
	require.Equal(t, ix, back)

	_, err = transaction.Parse(wire[:len(wire)-1])
	require.Error(t, err)
	_, err = transaction.Parse(append(wire, 0))
	require.Error(t, err)
}
