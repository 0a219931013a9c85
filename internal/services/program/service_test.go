package program_test

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
	"solhello/internal/services/program"
	"solhello/internal/store"
	"solhello/internal/util/console"
)

var programID = domain.PublicKey{0xaa, 0xbb, 0xcc}

type fixture struct {
	cluster *rpctest.Cluster
	client  *rpc.Client
	keys    *store.KeypairFileStore
	payer   *payer.Service
	out     *bytes.Buffer
	dir     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cluster := rpctest.New(t)
	client := rpc.New(cluster.URL(),
		rpc.WithPollInterval(5*time.Millisecond),
		rpc.WithConfirmTimeout(time.Second),
	)
	dir := t.TempDir()
	keys := store.NewKeypairFileStore()
	out := &bytes.Buffer{}
	p := payer.New(client, keys,
		payer.Config{KeypairPath: filepath.Join(dir, "id.json"), AccountSpace: domain.GreetingAccountSize},
		console.Discard(), zaptest.NewLogger(t))
	return &fixture{cluster: cluster, client: client, keys: keys, payer: p, out: out, dir: dir}
}

func (f *fixture) service(t *testing.T, cfg program.Config) *program.Service {
	if cfg.AccountSpace == 0 {
		cfg.AccountSpace = domain.GreetingAccountSize
	}
	return program.New(f.client, f.keys, f.payer, cfg, console.New(f.out, f.out, false), zaptest.NewLogger(t))
}

func TestCheckProgram_CreatesDataAccountOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.cluster.DeployProgram(programID)
	require.NoError(t, f.payer.EstablishPayer(ctx))
	svc := f.service(t, program.Config{ProgramID: programID.String()})

	require.NoError(t, svc.CheckProgram(ctx))

	kp, err := f.payer.Payer()
	require.NoError(t, err)
	want, err := crypto.CreateWithSeed(kp.Public, program.DefaultSeed, programID)
	require.NoError(t, err)

	got, err := svc.DataAccount()
	require.NoError(t, err)
	require.Equal(t, want, got)
	id, err := svc.ProgramID()
	require.NoError(t, err)
	require.Equal(t, programID, id)

	acct := f.cluster.Account(want)
	require.NotNil(t, acct)
	require.Equal(t, programID, acct.Owner)
	require.Len(t, acct.Data, domain.GreetingAccountSize)
	require.Equal(t, rpctest.RentExempt(domain.GreetingAccountSize), acct.Lamports)
	require.Equal(t,
		"Using program "+programID.String()+"\n"+
			"Creating account "+want.String()+" to say hello to\n",
		f.out.String())

	f.out.Reset()
	require.NoError(t, svc.CheckProgram(ctx))
	require.Len(t, f.cluster.Sent(), 1, "existing data account is reused")
	require.Equal(t, "Using program "+programID.String()+"\n", f.out.String())
}

func TestCheckProgram_FromProgramKeypair(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	programKP, err := crypto.GenerateKeypair()
	require.NoError(t, err)
	path := filepath.Join(f.dir, "helloworld-keypair.json")
	require.NoError(t, f.keys.SaveKeypair(path, "", programKP))
	f.cluster.DeployProgram(programKP.Public)
	require.NoError(t, f.payer.EstablishPayer(ctx))

	svc := f.service(t, program.Config{ProgramKeypairPath: path, Seed: "mech"})
	require.NoError(t, svc.CheckProgram(ctx))

	id, err := svc.ProgramID()
	require.NoError(t, err)
	require.Equal(t, programKP.Public, id)

	kp, _ := f.payer.Payer()
	want, err := crypto.CreateWithSeed(kp.Public, "mech", programKP.Public)
	require.NoError(t, err)
	got, err := svc.DataAccount()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestCheckProgram_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("not deployed", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.payer.EstablishPayer(ctx))
		err := f.service(t, program.Config{ProgramID: programID.String()}).CheckProgram(ctx)
		require.ErrorIs(t, err, program.ErrProgramNotDeployed)
	})

	t.Run("missing program keypair", func(t *testing.T) {
		f := newFixture(t)
		cfg := program.Config{ProgramKeypairPath: filepath.Join(f.dir, "missing.json")}
		err := f.service(t, cfg).CheckProgram(ctx)
		require.ErrorIs(t, err, program.ErrProgramNotDeployed)
		require.ErrorContains(t, err, "build and deploy the program first")
	})

	t.Run("not executable", func(t *testing.T) {
		f := newFixture(t)
		f.cluster.SetAccount(programID, domain.AccountInfo{Lamports: 1})
		err := f.service(t, program.Config{ProgramID: programID.String()}).CheckProgram(ctx)
		require.ErrorIs(t, err, program.ErrProgramNotExecutable)
	})

	t.Run("unresolved", func(t *testing.T) {
		f := newFixture(t)
		err := f.service(t, program.Config{}).CheckProgram(ctx)
		require.ErrorIs(t, err, program.ErrProgramUnresolved)
	})

	t.Run("bad program id", func(t *testing.T) {
		f := newFixture(t)
		err := f.service(t, program.Config{ProgramID: "not-base58!"}).CheckProgram(ctx)
		require.Error(t, err)
	})

	t.Run("payer not established", func(t *testing.T) {
		f := newFixture(t)
		f.cluster.DeployProgram(programID)
		err := f.service(t, program.Config{ProgramID: programID.String()}).CheckProgram(ctx)
		require.ErrorIs(t, err, payer.ErrNoPayer)
	})
}

func TestAccessorsBeforeCheck(t *testing.T) {
	f := newFixture(t)
	svc := f.service(t, program.Config{ProgramID: programID.String()})
	_, err := svc.ProgramID()
	require.ErrorIs(t, err, program.ErrNotChecked)
	_, err = svc.DataAccount()
	require.ErrorIs(t, err, program.ErrNotChecked)
}
