package rpc

import (
	"context"
	"encoding/json"
	"errors"

	"solhello/internal/crypto"
	"solhello/internal/domain"
)

type commitmentConfig struct {
	Commitment domain.Commitment `json:"commitment,omitempty"`
}

type accountInfoConfig struct {
	Commitment domain.Commitment `json:"commitment,omitempty"`
	Encoding   string            `json:"encoding"`
}

type sendConfig struct {
	Encoding            string            `json:"encoding"`
	PreflightCommitment domain.Commitment `json:"preflightCommitment,omitempty"`
}

type statusesConfig struct {
	SearchTransactionHistory bool `json:"searchTransactionHistory"`
}

type uint64Reply struct {
	Value uint64 `json:"value"`
}

type accountReply struct {
	Value *struct {
		Lamports   uint64   `json:"lamports"`
		Owner      string   `json:"owner"`
		Executable bool     `json:"executable"`
		RentEpoch  uint64   `json:"rentEpoch"`
		Data       []string `json:"data"`
	} `json:"value"`
}

type blockhashReply struct {
	Value struct {
		Blockhash            string `json:"blockhash"`
		LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
	} `json:"value"`
}

type feeReply struct {
	Value *uint64 `json:"value"`
}

type statusesReply struct {
	Value []*struct {
		Slot               uint64          `json:"slot"`
		Confirmations      *uint64         `json:"confirmations"`
		Err                json.RawMessage `json:"err"`
		ConfirmationStatus string          `json:"confirmationStatus"`
	} `json:"value"`
}

// ErrBlockhashExpired is returned by GetFeeForMessage when the message's
// blockhash is no longer valid.
var ErrBlockhashExpired = errors.New("blockhash not found or expired")

// GetVersion returns the cluster software version.
func (c *Client) GetVersion(ctx context.Context) (domain.Version, error) {
	var out domain.Version
	err := c.call(ctx, "getVersion", nil, &out)
	return out, err
}

// GetBalance returns the lamports held by account.
func (c *Client) GetBalance(ctx context.Context, account domain.PublicKey) (domain.Lamports, error) {
	var out uint64Reply
	err := c.call(ctx, "getBalance", []any{account.String(), commitmentConfig{c.commitment}}, &out)
	return domain.Lamports(out.Value), err
}

// GetAccountInfo returns the account's state, or nil if it does not exist.
func (c *Client) GetAccountInfo(ctx context.Context, account domain.PublicKey) (*domain.AccountInfo, error) {
	var out accountReply
	params := []any{account.String(), accountInfoConfig{Commitment: c.commitment, Encoding: crypto.EncodingBase64}}
	if err := c.call(ctx, "getAccountInfo", params, &out); err != nil {
		return nil, err
	}
	if out.Value == nil {
		return nil, nil
	}
	owner, err := domain.PublicKeyFromBase58(out.Value.Owner)
	if err != nil {
		return nil, &Error{Method: "getAccountInfo", Err: err}
	}
	info := &domain.AccountInfo{
		Lamports:   domain.Lamports(out.Value.Lamports),
		Owner:      owner,
		Executable: out.Value.Executable,
		RentEpoch:  out.Value.RentEpoch,
	}
	if info.Data, err = crypto.DecodeAccountData(out.Value.Data); err != nil {
		return nil, &Error{Method: "getAccountInfo", Err: err}
	}
	return info, nil
}

// GetMinimumBalanceForRentExemption returns the balance that keeps an account
// of size bytes alive indefinitely.
func (c *Client) GetMinimumBalanceForRentExemption(ctx context.Context, size uint64) (domain.Lamports, error) {
	var out uint64
	err := c.call(ctx, "getMinimumBalanceForRentExemption", []any{size, commitmentConfig{c.commitment}}, &out)
	return domain.Lamports(out), err
}

// GetLatestBlockhash returns a recent blockhash for new transactions.
func (c *Client) GetLatestBlockhash(ctx context.Context) (domain.Blockhash, error) {
	var out blockhashReply
	if err := c.call(ctx, "getLatestBlockhash", []any{commitmentConfig{c.commitment}}, &out); err != nil {
		return domain.Blockhash{}, err
	}
	h, err := domain.HashFromBase58(out.Value.Blockhash)
	if err != nil {
		return domain.Blockhash{}, &Error{Method: "getLatestBlockhash", Err: err}
	}
	return domain.Blockhash{Hash: h, LastValidBlockHeight: out.Value.LastValidBlockHeight}, nil
}

// GetFeeForMessage returns the fee the cluster would charge for a serialized message.
func (c *Client) GetFeeForMessage(ctx context.Context, message []byte) (domain.Lamports, error) {
	var out feeReply
	params := []any{crypto.B64(message), commitmentConfig{c.commitment}}
	if err := c.call(ctx, "getFeeForMessage", params, &out); err != nil {
		return 0, err
	}
	if out.Value == nil {
		return 0, &Error{Method: "getFeeForMessage", Err: ErrBlockhashExpired}
	}
	return domain.Lamports(*out.Value), nil
}

// RequestAirdrop asks the cluster faucet to credit account.
func (c *Client) RequestAirdrop(
	ctx context.Context,
	account domain.PublicKey,
	amount domain.Lamports,
) (domain.Signature, error) {
	var out string
	params := []any{account.String(), uint64(amount), commitmentConfig{c.commitment}}
	if err := c.call(ctx, "requestAirdrop", params, &out); err != nil {
		return domain.Signature{}, err
	}
	return parseSignature("requestAirdrop", out)
}

// SendTransaction submits a signed wire transaction.
func (c *Client) SendTransaction(ctx context.Context, wire []byte) (domain.Signature, error) {
	var out string
	params := []any{crypto.B64(wire), sendConfig{Encoding: crypto.EncodingBase64, PreflightCommitment: c.commitment}}
	if err := c.call(ctx, "sendTransaction", params, &out); err != nil {
		return domain.Signature{}, err
	}
	return parseSignature("sendTransaction", out)
}

// GetSignatureStatuses returns one status per signature; unknown signatures are nil.
func (c *Client) GetSignatureStatuses(
	ctx context.Context,
	signatures ...domain.Signature,
) ([]*domain.SignatureStatus, error) {
	sigs := make([]string, len(signatures))
	for i, s := range signatures {
		sigs[i] = s.String()
	}
	var out statusesReply
	params := []any{sigs, statusesConfig{SearchTransactionHistory: true}}
	if err := c.call(ctx, "getSignatureStatuses", params, &out); err != nil {
		return nil, err
	}

	statuses := make([]*domain.SignatureStatus, len(signatures))
	for i := range statuses {
		if i >= len(out.Value) || out.Value[i] == nil {
			continue
		}
		v := out.Value[i]
		st := &domain.SignatureStatus{
			Slot:               v.Slot,
			Confirmations:      v.Confirmations,
			ConfirmationStatus: domain.Commitment(v.ConfirmationStatus),
		}
		if len(v.Err) > 0 && string(v.Err) != "null" {
			st.Err = append([]byte(nil), v.Err...)
		}
		// Nodes that omit confirmationStatus report rooted slots with null confirmations.
		if st.ConfirmationStatus == "" && st.Confirmations == nil {
			st.ConfirmationStatus = domain.CommitmentFinalized
		}
		statuses[i] = st
	}
	return statuses, nil
}

func parseSignature(method, s string) (domain.Signature, error) {
	sig, err := domain.SignatureFromBase58(s)
	if err != nil {
		return domain.Signature{}, &Error{Method: method, Err: err}
	}
	return sig, nil
}
