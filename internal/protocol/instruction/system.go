package instruction

import (
	"encoding/binary"

	"solhello/internal/domain"
)

// SystemProgramID is the address of the native system program.
var SystemProgramID = domain.PublicKey{}

const systemCreateAccountWithSeed uint32 = 3

// CreateAccountWithSeed creates newAccount, an address derived from base and
// seed, funded by from and owned by owner.
func CreateAccountWithSeed(
	from, newAccount, base domain.PublicKey,
	seed string,
	lamports domain.Lamports,
	space uint64,
	owner domain.PublicKey,
) domain.Instruction {
	data := make([]byte, 0, 4+32+8+len(seed)+8+8+32)
	data = binary.LittleEndian.AppendUint32(data, systemCreateAccountWithSeed)
	data = append(data, base[:]...)
	data = binary.LittleEndian.AppendUint64(data, uint64(len(seed)))
	data = append(data, seed...)
	data = binary.LittleEndian.AppendUint64(data, uint64(lamports))
	data = binary.LittleEndian.AppendUint64(data, space)
	data = append(data, owner[:]...)

	accounts := []domain.AccountMeta{
		{PublicKey: from, IsSigner: true, IsWritable: true},
		{PublicKey: newAccount, IsSigner: false, IsWritable: true},
	}
	if base != from {
		accounts = append(accounts, domain.AccountMeta{PublicKey: base, IsSigner: true, IsWritable: false})
	}
	return domain.Instruction{ProgramID: SystemProgramID, Accounts: accounts, Data: data}
}
