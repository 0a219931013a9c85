package payer_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"solhello/internal/crypto"
	"solhello/internal/domain"
	"solhello/internal/rpc"
	"solhello/internal/rpc/rpctest"
	"solhello/internal/services/payer"
	"solhello/internal/store"
	"solhello/internal/util/console"
)

type fixture struct {
	cluster *rpctest.Cluster
	keys    *store.KeypairFileStore
	out     *bytes.Buffer
	path    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		cluster: rpctest.New(t),
		keys:    store.NewKeypairFileStore(),
		out:     &bytes.Buffer{},
		path:    filepath.Join(t.TempDir(), "id.json"),
	}
}

func (f *fixture) service(t *testing.T, passphrase string) *payer.Service {
	client := rpc.New(f.cluster.URL(),
		rpc.WithPollInterval(5*time.Millisecond),
		rpc.WithConfirmTimeout(time.Second),
	)
	cfg := payer.Config{KeypairPath: f.path, Passphrase: passphrase, AccountSpace: domain.GreetingAccountSize}
	return payer.New(client, f.keys, cfg, console.New(f.out, f.out, false), zaptest.NewLogger(t))
}

func wantFees() domain.Lamports {
	return rpctest.RentExempt(domain.GreetingAccountSize) + 100*rpctest.FeePerSignature
}

func TestEstablishPayer_EphemeralWhenMissing(t *testing.T) {
	f := newFixture(t)
	svc := f.service(t, "")

	require.NoError(t, svc.EstablishPayer(context.Background()))

	kp, err := svc.Payer()
	require.NoError(t, err)
	require.False(t, kp.Public.IsZero())
	require.Equal(t, []domain.Lamports{wantFees()}, f.cluster.Airdrops())
	require.Contains(t, f.out.String(), "Using account "+kp.Public.String()+" containing ")
	require.Contains(t, f.out.String(), " SOL to pay for fees\n")
}

func TestEstablishPayer_FundedNoAirdrop(t *testing.T) {
	f := newFixture(t)
	kp, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	require.NoError(t, f.keys.SaveKeypair(f.path, "", kp))
	f.cluster.SetAccount(kp.Public, domain.AccountInfo{Lamports: 2 * domain.LamportsPerSOL})

	svc := f.service(t, "")
	require.NoError(t, svc.EstablishPayer(context.Background()))

	got, err := svc.Payer()
	require.NoError(t, err)
	require.Equal(t, kp.Public, got.Public)
	require.Empty(t, f.cluster.Airdrops())
	require.Equal(t,
		"Using account "+kp.Public.String()+" containing 2 SOL to pay for fees\n",
		f.out.String())
}

func TestEstablishPayer_TopsUpShortfall(t *testing.T) {
	f := newFixture(t)
	kp, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	require.NoError(t, f.keys.SaveKeypair(f.path, "", kp))
	f.cluster.SetAccount(kp.Public, domain.AccountInfo{Lamports: 1000})

	require.NoError(t, f.service(t, "").EstablishPayer(context.Background()))
	require.Equal(t, []domain.Lamports{wantFees() - 1000}, f.cluster.Airdrops())
	require.Equal(t, wantFees(), f.cluster.Account(kp.Public).Lamports)
}

func TestEstablishPayer_EncryptedKeypair(t *testing.T) {
	f := newFixture(t)
	kp, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	require.NoError(t, f.keys.SaveKeypair(f.path, "correct horse", kp))

	err = f.service(t, "wrong").EstablishPayer(context.Background())
	require.ErrorIs(t, err, store.ErrWrongPassphrase)

	svc := f.service(t, "correct horse")
	require.NoError(t, svc.EstablishPayer(context.Background()))
	got, err := svc.Payer()
	require.NoError(t, err)
	require.Equal(t, kp.Public, got.Public)
}

func TestEstablishPayer_AirdropRejected(t *testing.T) {
	f := newFixture(t)
	f.cluster.Fail("requestAirdrop", "airdrop limit reached")

	svc := f.service(t, "")
	err := svc.EstablishPayer(context.Background())
	require.ErrorContains(t, err, "airdrop limit reached")

	_, err = svc.Payer()
	require.ErrorIs(t, err, payer.ErrNoPayer)
}
