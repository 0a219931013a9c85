package transaction

import (
	"context"
	"fmt"

	"solhello/internal/domain"
)

// Submit signs instructions against the cluster's latest blockhash, sends the
// transaction and waits for it to be confirmed.
func Submit(
	ctx context.Context,
	client domain.ClusterClient,
	payer domain.Keypair,
	signers []domain.Keypair,
	instructions ...domain.Instruction,
) (domain.Signature, error) {
	bh, err := client.GetLatestBlockhash(ctx)
	if err != nil {
		return domain.Signature{}, fmt.Errorf("latest blockhash: %w", err)
	}
	_, wire, err := Build(payer, bh.Hash, signers, instructions...)
	if err != nil {
		return domain.Signature{}, fmt.Errorf("build transaction: %w", err)
	}
	sig, err := client.SendTransaction(ctx, wire)
	if err != nil {
		return domain.Signature{}, err
	}
	if err := client.ConfirmTransaction(ctx, sig); err != nil {
		return sig, err
	}
	return sig, nil
}
