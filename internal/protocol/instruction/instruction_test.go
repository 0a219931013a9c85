package instruction_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"solhello/internal/domain"
	"solhello/internal/protocol/instruction"
)

func TestStoreNumber_EncodesLittleEndianU32(t *testing.T) {
	program := domain.PublicKey{1}
	account := domain.PublicKey{2}

	ix, err := instruction.StoreNumber(program, account, 42)
	require.NoError(t, err)
	require.Equal(t, program, ix.ProgramID)
	require.Equal(t, []domain.AccountMeta{{PublicKey: account, IsWritable: true}}, ix.Accounts)
	require.Equal(t, []byte{42, 0, 0, 0}, ix.Data)
}

func TestChangeNumber_EncodesOperationThenNumber(t *testing.T) {
	ix, err := instruction.ChangeNumber(domain.PublicKey{1}, domain.PublicKey{2}, 1, 0x01020304)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 4, 3, 2, 1}, ix.Data)
}

func TestExecuteImpact_EncodesExecuteTag(t *testing.T) {
	ix, err := instruction.ExecuteImpact(domain.PublicKey{1}, domain.PublicKey{2})
	require.NoError(t, err)
	require.Equal(t, []byte{instruction.MechExecute}, ix.Data)
}

func TestDecodeGreeting(t *testing.T) {
	g, err := instruction.DecodeGreeting([]byte{7, 1, 0, 0, 0xff})
	require.NoError(t, err)
	require.Equal(t, uint32(263), g.Number)

	_, err = instruction.DecodeGreeting([]byte{1, 2})
	require.Error(t, err)
}

func TestCreateAccountWithSeed(t *testing.T) {
	from := domain.PublicKey{1}
	newAccount := domain.PublicKey{2}
	owner := domain.PublicKey{3}

	ix := instruction.CreateAccountWithSeed(from, newAccount, from, "hello", 890880, 4, owner)
	require.Equal(t, instruction.SystemProgramID, ix.ProgramID)
	require.Equal(t, []domain.AccountMeta{
		{PublicKey: from, IsSigner: true, IsWritable: true},
		{PublicKey: newAccount, IsWritable: true},
	}, ix.Accounts)

	d := ix.Data
	require.Len(t, d, 4+32+8+5+8+8+32)
	require.Equal(t, uint32(3), binary.LittleEndian.Uint32(d[0:4]))
	require.Equal(t, from[:], d[4:36])
	require.Equal(t, uint64(5), binary.LittleEndian.Uint64(d[36:44]))
	require.Equal(t, "hello", string(d[44:49]))
	require.Equal(t, uint64(890880), binary.LittleEndian.Uint64(d[49:57]))
	require.Equal(t, uint64(4), binary.LittleEndian.Uint64(d[57:65]))
	require.Equal(t, owner[:], d[65:97])

	other := instruction.CreateAccountWithSeed(from, newAccount, domain.PublicKey{4}, "hello", 1, 4, owner)
	require.Len(t, other.Accounts, 3)
	require.Equal(t, domain.AccountMeta{PublicKey: domain.PublicKey{4}, IsSigner: true}, other.Accounts[2])
}

func TestToUint32(t *testing.T) {
	cases := map[float64]uint32{
		7:              7,
		42.9:           42,
		-1:             math.MaxUint32,
		math.NaN():     0,
		math.Inf(1):    0,
		math.Inf(-1):   0,
		1 << 32:        0,
		(1 << 32) + 5:  5,
		-(1 << 32) - 1: math.MaxUint32,
	}
	for in, want := range cases {
		require.Equal(t, want, instruction.ToUint32(in), "ToUint32(%v)", in)
	}
	require.Equal(t, uint8(1), instruction.ToUint8(257))
}
