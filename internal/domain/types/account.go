package types

// AccountInfo is the on-chain state of an account.
type AccountInfo struct {
	Lamports   Lamports
	Owner      PublicKey
	Executable bool
	RentEpoch  uint64
	Data       []byte
}

// GreetingAccount is the borsh layout of the hello world data account.
type GreetingAccount struct {
	Number uint32
}

// GreetingAccountSize is the borsh-encoded size of GreetingAccount.
const GreetingAccountSize = 4
