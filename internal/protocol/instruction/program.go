package instruction

import (
	"fmt"
	"math"

	"github.com/near/borsh-go"

	"solhello/internal/domain"
)

// Mech program instruction tags.
const (
	MechExecute    uint8 = 0
	MechCreateCard uint8 = 1
)

type storeNumberData struct {
	Number uint32
}

type changeNumberData struct {
	Operation uint8
	Number    uint32
}

type mechData struct {
	Tag uint8
}

// StoreNumber overwrites the number held in account.
func StoreNumber(programID, account domain.PublicKey, number uint32) (domain.Instruction, error) {
	return programInstruction(programID, account, storeNumberData{Number: number})
}

// ChangeNumber applies operation (0 add, 1 subtract) with number to account.
func ChangeNumber(programID, account domain.PublicKey, operation uint8, number uint32) (domain.Instruction, error) {
	return programInstruction(programID, account, changeNumberData{Operation: operation, Number: number})
}

// ExecuteImpact runs the mech fight stored in account.
func ExecuteImpact(programID, account domain.PublicKey) (domain.Instruction, error) {
	return programInstruction(programID, account, mechData{Tag: MechExecute})
}

func programInstruction(programID, account domain.PublicKey, payload any) (domain.Instruction, error) {
	data, err := borsh.Serialize(payload)
	if err != nil {
		return domain.Instruction{}, fmt.Errorf("encode instruction data: %w", err)
	}
	return domain.Instruction{
		ProgramID: programID,
		Accounts:  []domain.AccountMeta{{PublicKey: account, IsWritable: true}},
		Data:      data,
	}, nil
}

// DecodeGreeting reads the GreetingAccount stored at the start of data.
func DecodeGreeting(data []byte) (domain.GreetingAccount, error) {
	var g domain.GreetingAccount
	if len(data) < domain.GreetingAccountSize {
		return g, fmt.Errorf("greeting account: want %d bytes, got %d", domain.GreetingAccountSize, len(data))
	}
	if err := borsh.Deserialize(&g, data[:domain.GreetingAccountSize]); err != nil {
		return g, fmt.Errorf("decode greeting account: %w", err)
	}
	return g, nil
}

// ToUint32 converts n the way a typed u32 array store does: NaN and
// infinities become 0, fractions are truncated, and the result wraps modulo 2^32.
func ToUint32(n float64) uint32 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	m := math.Mod(math.Trunc(n), 1<<32)
	if m < 0 {
		m += 1 << 32
	}
	return uint32(m)
}

// ToUint8 is ToUint32 reduced modulo 2^8.
func ToUint8(n float64) uint8 { return uint8(ToUint32(n)) }
