package interfaces

import (
	"context"

	domaintypes "solhello/internal/domain/types"
)

// ClusterClient is how we talk to the cluster's JSON-RPC endpoint, all with context.
type ClusterClient interface {
	Endpoint() string
	GetVersion(ctx context.Context) (domaintypes.Version, error)
	GetBalance(ctx context.Context, account domaintypes.PublicKey) (domaintypes.Lamports, error)
	// GetAccountInfo returns nil without error when the account does not exist.
	GetAccountInfo(
		ctx context.Context,
		account domaintypes.PublicKey,
	) (*domaintypes.AccountInfo, error)
	GetMinimumBalanceForRentExemption(ctx context.Context, size uint64) (domaintypes.Lamports, error)
	GetLatestBlockhash(ctx context.Context) (domaintypes.Blockhash, error)
	GetFeeForMessage(ctx context.Context, message []byte) (domaintypes.Lamports, error)

	RequestAirdrop(
		ctx context.Context,
		account domaintypes.PublicKey,
		amount domaintypes.Lamports,
	) (domaintypes.Signature, error)
	SendTransaction(ctx context.Context, wire []byte) (domaintypes.Signature, error)
	GetSignatureStatuses(
		ctx context.Context,
		signatures ...domaintypes.Signature,
	) ([]*domaintypes.SignatureStatus, error)
	ConfirmTransaction(ctx context.Context, signature domaintypes.Signature) error
}
