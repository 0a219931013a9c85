package app

import (
	"fmt"
	"path/filepath"

	"solhello/internal/domain"
)

// Variant selects which program a binary drives.
type Variant string

const (
	// Hello stores the operator's number in a greeting account.
	Hello Variant = "hello"
	// Mech executes an impact against a mech account.
	Mech Variant = "mech"
)

// mechAccountSpace is the data account size allocated for the mech program.
const mechAccountSpace = 1024

// Validate reports whether v is a known variant.
func (v Variant) Validate() error {
	switch v {
	case Hello, Mech:
		return nil
	default:
		return fmt.Errorf("unknown variant %q", string(v))
	}
}

// Banner is printed before the first stage. Both programs share it.
func (v Variant) Banner() string {
	return "Let's say hello to a Solana account..."
}

// DefaultProgramKeypair is where the program build writes its keypair.
func (v Variant) DefaultProgramKeypair() string {
	name := "helloworld"
	if v == Mech {
		name = "mech"
	}
	return filepath.Join("dist", "program", name+"-keypair.json")
}

// DefaultAccountSpace is the data account size for the variant's program.
func (v Variant) DefaultAccountSpace() uint64 {
	if v == Mech {
		return mechAccountSpace
	}
	return domain.GreetingAccountSize
}
