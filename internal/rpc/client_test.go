package rpc_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/rpc/v2/json2"
	"github.com/stretchr/testify/require"

	"solhello/internal/crypto"
	"solhello/internal/domain"
	"solhello/internal/protocol/transaction"
	"solhello/internal/rpc"
	"solhello/internal/rpc/rpctest"
)

func newClient(t *testing.T) (*rpc.Client, *rpctest.Cluster) {
	t.Helper()
	cluster := rpctest.New(t)
	c := rpc.New(cluster.URL(),
		rpc.WithPollInterval(5*time.Millisecond),
		rpc.WithConfirmTimeout(time.Second),
	)
	return c, cluster
}

func TestClient_ReadMethods(t *testing.T) {
	ctx := context.Background()
	c, cluster := newClient(t)

	v, err := c.GetVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, "1.18.26", v.SolanaCore)

	owner := domain.PublicKey{7}
	account := domain.PublicKey{8}
	cluster.SetAccount(account, domain.AccountInfo{Lamports: 1234, Owner: owner, Data: []byte{42, 0, 0, 0}})

	bal, err := c.GetBalance(ctx, account)
	require.NoError(t, err)
	require.Equal(t, domain.Lamports(1234), bal)

	info, err := c.GetAccountInfo(ctx, account)
	require.NoError(t, err)
	require.NotNil(t, info)
	require.Equal(t, owner, info.Owner)
	require.Equal(t, []byte{42, 0, 0, 0}, info.Data)
	require.False(t, info.Executable)

	missing, err := c.GetAccountInfo(ctx, domain.PublicKey{9})
	require.NoError(t, err)
	require.Nil(t, missing)

	rent, err := c.GetMinimumBalanceForRentExemption(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, rpctest.RentExempt(4), rent)

	bh, err := c.GetLatestBlockhash(ctx)
	require.NoError(t, err)
	require.Equal(t, rpctest.Blockhash, bh.Hash.String())
	require.Equal(t, uint64(300), bh.LastValidBlockHeight)

	fee, err := c.GetFeeForMessage(ctx, []byte{1, 0, 0})
	require.NoError(t, err)
	require.Equal(t, domain.Lamports(rpctest.FeePerSignature), fee)
}

func TestClient_AirdropAndConfirm(t *testing.T) {
	ctx := context.Background()
	c, cluster := newClient(t)
	account := domain.PublicKey{3}

	sig, err := c.RequestAirdrop(ctx, account, domain.LamportsPerSOL)
	require.NoError(t, err)
	require.NoError(t, c.ConfirmTransaction(ctx, sig))

	require.Equal(t, []domain.Lamports{domain.LamportsPerSOL}, cluster.Airdrops())
	require.Equal(t, domain.Lamports(domain.LamportsPerSOL), cluster.Account(account).Lamports)
}

func TestClient_SendTransaction(t *testing.T) {
	ctx := context.Background()
	c, cluster := newClient(t)

	payer, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	program := domain.PublicKey{5}
	data := domain.PublicKey{6}
	cluster.SetAccount(payer.Public, domain.AccountInfo{Lamports: domain.LamportsPerSOL})
	cluster.SetAccount(data, domain.AccountInfo{Lamports: 1, Owner: program, Data: make([]byte, 4)})

	bh, err := c.GetLatestBlockhash(ctx)
	require.NoError(t, err)
	tx, wire, err := transaction.Build(payer, bh.Hash, nil, domain.Instruction{
		ProgramID: program,
		Accounts:  []domain.AccountMeta{{PublicKey: data, IsWritable: true}},
		Data:      []byte{9, 0, 0, 0},
	})
	require.NoError(t, err)

	sig, err := c.SendTransaction(ctx, wire)
	require.NoError(t, err)
	require.Equal(t, tx.ID(), sig)
	require.NoError(t, c.ConfirmTransaction(ctx, sig))

	require.Equal(t, []byte{9, 0, 0, 0}, cluster.Account(data).Data)
	require.Len(t, cluster.Sent(), 1)
}

func TestClient_ConfirmReportsFailure(t *testing.T) {
	ctx := context.Background()
	c, cluster := newClient(t)
	cluster.FailTransactions()

	payer, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	cluster.SetAccount(payer.Public, domain.AccountInfo{Lamports: domain.LamportsPerSOL})

	_, wire, err := transaction.Build(payer, domain.Hash{1}, nil, domain.Instruction{ProgramID: domain.PublicKey{5}})
	require.NoError(t, err)
	sig, err := c.SendTransaction(ctx, wire)
	require.NoError(t, err)

	err = c.ConfirmTransaction(ctx, sig)
	require.ErrorIs(t, err, rpc.ErrTransactionFailed)
}

func TestClient_ConfirmTimeout(t *testing.T) {
	cluster := rpctest.New(t)
	c := rpc.New(cluster.URL(),
		rpc.WithPollInterval(5*time.Millisecond),
		rpc.WithConfirmTimeout(30*time.Millisecond),
	)

	err := c.ConfirmTransaction(context.Background(), domain.Signature{1})
	require.ErrorIs(t, err, rpc.ErrConfirmTimeout)
}

func TestClient_ConfirmCancelled(t *testing.T) {
	c, _ := newClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.ConfirmTransaction(ctx, domain.Signature{1})
	require.ErrorIs(t, err, context.Canceled)
}

func TestClient_RPCError(t *testing.T) {
	c, cluster := newClient(t)
	cluster.Fail("getVersion", "node is unhealthy")

	_, err := c.GetVersion(context.Background())
	require.Error(t, err)

	var rpcErr *rpc.Error
	require.True(t, errors.As(err, &rpcErr))
	require.Equal(t, "getVersion", rpcErr.Method)

	var jsonErr *json2.Error
	require.True(t, errors.As(err, &jsonErr))
	require.Equal(t, "node is unhealthy", jsonErr.Message)
}

func TestClient_HTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	_, err := rpc.New(srv.URL).GetVersion(context.Background())
	require.ErrorContains(t, err, "429")
}
