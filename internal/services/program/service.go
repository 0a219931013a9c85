package program

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"solhello/internal/crypto"
	"solhello/internal/domain"
	"solhello/internal/protocol/instruction"
	"solhello/internal/protocol/transaction"
	"solhello/internal/util/console"
)

// DefaultSeed derives the data account when no seed is configured.
const DefaultSeed = "hello"

var (
	// ErrProgramNotDeployed is returned when the program account does not exist.
	ErrProgramNotDeployed = errors.New("program not deployed")
	// ErrProgramNotExecutable is returned when the program account exists but
	// is not executable.
	ErrProgramNotExecutable = errors.New("program is not executable")
	// ErrProgramUnresolved is returned when neither a program id nor a program
	// keypair path is configured.
	ErrProgramUnresolved = errors.New("no program id or program keypair configured")
	// ErrNotChecked is returned by accessors before CheckProgram has succeeded.
	ErrNotChecked = errors.New("program not checked")
)

// Config identifies the program and shapes its data account.
type Config struct {
	// ProgramID, when set, takes precedence over ProgramKeypairPath.
	ProgramID          string
	ProgramKeypairPath string
	Seed               string
	AccountSpace       uint64
}

// Service checks the program and owns the data account address.
type Service struct {
	client domain.ClusterClient
	keys   domain.KeypairStore
	payer  domain.PayerService
	cfg    Config
	out    *console.Console
	log    *zap.Logger

	programID   *domain.PublicKey
	dataAccount *domain.PublicKey
}

// New returns a program service. The payer service must be established
// before CheckProgram runs.
func New(
	client domain.ClusterClient,
	keys domain.KeypairStore,
	payer domain.PayerService,
	cfg Config,
	out *console.Console,
	log *zap.Logger,
) *Service {
	if cfg.Seed == "" {
		cfg.Seed = DefaultSeed
	}
	return &Service{client: client, keys: keys, payer: payer, cfg: cfg, out: out, log: log}
}

// ResolveProgramID returns the configured program id without touching the
// cluster.
func (s *Service) ResolveProgramID() (domain.PublicKey, error) {
	if s.cfg.ProgramID != "" {
		id, err := domain.PublicKeyFromBase58(s.cfg.ProgramID)
		if err != nil {
			return domain.PublicKey{}, fmt.Errorf("program id %q: %w", s.cfg.ProgramID, err)
		}
		return id, nil
	}
	if s.cfg.ProgramKeypairPath == "" {
		return domain.PublicKey{}, ErrProgramUnresolved
	}
	kp, err := s.keys.LoadKeypair(s.cfg.ProgramKeypairPath, "")
	if errors.Is(err, domain.ErrKeypairNotFound) {
		return domain.PublicKey{}, fmt.Errorf(
			"%w: program keypair %s not found, build and deploy the program first",
			ErrProgramNotDeployed, s.cfg.ProgramKeypairPath)
	}
	if err != nil {
		return domain.PublicKey{}, fmt.Errorf("load program keypair: %w", err)
	}
	defer crypto.WipeKeypair(&kp)
	return kp.Public, nil
}

// DeriveDataAccount returns the data account address for payer.
func (s *Service) DeriveDataAccount(payer, programID domain.PublicKey) (domain.PublicKey, error) {
	return crypto.CreateWithSeed(payer, s.cfg.Seed, programID)
}

// CheckProgram verifies the program is deployed and executable and creates
// the data account when it does not exist yet.
func (s *Service) CheckProgram(ctx context.Context) error {
	id, err := s.Lookup(ctx)
	if err != nil {
		return err
	}

	payer, err := s.payer.Payer()
	if err != nil {
		return err
	}
	addr, err := s.DeriveDataAccount(payer.Public, id)
	if err != nil {
		return fmt.Errorf("derive data account: %w", err)
	}

	info, err := s.client.GetAccountInfo(ctx, addr)
	if err != nil {
		return fmt.Errorf("data account: %w", err)
	}
	if info == nil {
		if err := s.createDataAccount(ctx, payer, addr, id); err != nil {
			return err
		}
	}
	s.dataAccount = &addr
	return nil
}

// Lookup resolves the program id and verifies the program account. It does
// not need a payer.
func (s *Service) Lookup(ctx context.Context) (domain.PublicKey, error) {
	id, err := s.ResolveProgramID()
	if err != nil {
		return domain.PublicKey{}, err
	}
	info, err := s.client.GetAccountInfo(ctx, id)
	if err != nil {
		return domain.PublicKey{}, fmt.Errorf("program account: %w", err)
	}
	if info == nil {
		return domain.PublicKey{}, fmt.Errorf("%w: %s", ErrProgramNotDeployed, id)
	}
	if !info.Executable {
		return domain.PublicKey{}, fmt.Errorf("%w: %s", ErrProgramNotExecutable, id)
	}
	s.programID = &id
	s.out.Outf("Using program {{cyan}}%s{{/}}\n", id)
	return id, nil
}

// UseDataAccount records addr as the data account without checking it, for
// read-only flows that have no payer.
func (s *Service) UseDataAccount(addr domain.PublicKey) { s.dataAccount = &addr }

func (s *Service) createDataAccount(
	ctx context.Context,
	payer domain.Keypair,
	addr, programID domain.PublicKey,
) error {
	s.out.Outf("Creating account {{cyan}}%s{{/}} to say hello to\n", addr)
	lamports, err := s.client.GetMinimumBalanceForRentExemption(ctx, s.cfg.AccountSpace)
	if err != nil {
		return fmt.Errorf("rent exemption: %w", err)
	}
	ix := instruction.CreateAccountWithSeed(
		payer.Public, addr, payer.Public, s.cfg.Seed, lamports, s.cfg.AccountSpace, programID)
	sig, err := transaction.Submit(ctx, s.client, payer, nil, ix)
	if err != nil {
		return fmt.Errorf("create data account: %w", err)
	}
	s.log.Info("data account created",
		zap.Stringer("account", addr),
		zap.Stringer("signature", sig),
		zap.Uint64("space", s.cfg.AccountSpace),
	)
	return nil
}

// ProgramID returns the program id verified by CheckProgram.
func (s *Service) ProgramID() (domain.PublicKey, error) {
	if s.programID == nil {
		return domain.PublicKey{}, ErrNotChecked
	}
	return *s.programID, nil
}

// DataAccount returns the data account prepared by CheckProgram.
func (s *Service) DataAccount() (domain.PublicKey, error) {
	if s.dataAccount == nil {
		return domain.PublicKey{}, ErrNotChecked
	}
	return *s.dataAccount, nil
}

// Compile-time assertion that Service implements domain.ProgramService.
var _ domain.ProgramService = (*Service)(nil)
