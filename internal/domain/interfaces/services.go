package interfaces

import (
	"context"

	domaintypes "solhello/internal/domain/types"
)

// ConnectionService verifies the cluster endpoint is reachable.
type ConnectionService interface {
	EstablishConnection(ctx context.Context) error
}

// PayerService loads or creates the fee payer and makes sure it is funded.
type PayerService interface {
	EstablishPayer(ctx context.Context) error
	Payer() (domaintypes.Keypair, error)
}

// ProgramService checks the target program and derives its data account.
type ProgramService interface {
	CheckProgram(ctx context.Context) error
	ProgramID() (domaintypes.PublicKey, error)
	DataAccount() (domaintypes.PublicKey, error)
}

// CounterService submits the program's actions.
type CounterService interface {
	StoreNumber(ctx context.Context, number float64) error
	ChangeNumber(ctx context.Context, operation, number float64) error
	ExecuteImpact(ctx context.Context) error
	ReportGreetings(ctx context.Context) error
}
