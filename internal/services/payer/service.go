package payer

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

// feeHeadroom is how many signatures worth of fees the payer must hold.
const feeHeadroom = 100

// ErrNoPayer is returned by Payer before EstablishPayer has succeeded.
var ErrNoPayer = errors.New("payer not established")

// Config selects the payer keypair and the account size it must pay for.
type Config struct {
	KeypairPath  string
	Passphrase   string
	AccountSpace uint64
}

// Service manages the fee payer.
type Service struct {
	client domain.ClusterClient
	keys   domain.KeypairStore
	cfg    Config
	out    *console.Console
	log    *zap.Logger

	payer *domain.Keypair
}

// New returns a payer service.
func New(
	client domain.ClusterClient,
	keys domain.KeypairStore,
	cfg Config,
	out *console.Console,
	log *zap.Logger,
) *Service {
	return &Service{client: client, keys: keys, cfg: cfg, out: out, log: log}
}

// EstablishPayer loads the keypair, airdrops any shortfall and reports the
// payer's balance.
func (s *Service) EstablishPayer(ctx context.Context) error {
	kp, err := s.load()
	if err != nil {
		return err
	}

	fees, err := s.requiredFees(ctx, kp.Public)
	if err != nil {
		return err
	}

	balance, err := s.client.GetBalance(ctx, kp.Public)
	if err != nil {
		return fmt.Errorf("payer balance: %w", err)
	}
	if balance < fees {
		shortfall := fees - balance
		s.log.Info("requesting airdrop",
			zap.Stringer("payer", kp.Public),
			zap.Uint64("lamports", uint64(shortfall)),
		)
		sig, err := s.client.RequestAirdrop(ctx, kp.Public, shortfall)
		if err != nil {
			return fmt.Errorf("airdrop: %w", err)
		}
		if err := s.client.ConfirmTransaction(ctx, sig); err != nil {
			return fmt.Errorf("airdrop %s: %w", sig, err)
		}
		if balance, err = s.client.GetBalance(ctx, kp.Public); err != nil {
			return fmt.Errorf("payer balance: %w", err)
		}
	}

	s.payer = &kp
	s.out.Outf("Using account {{cyan}}%s{{/}} containing %v SOL to pay for fees\n", kp.Public, balance.SOL())
	return nil
}

// Payer returns the established fee payer.
func (s *Service) Payer() (domain.Keypair, error) {
	if s.payer == nil {
		return domain.Keypair{}, ErrNoPayer
	}
	return *s.payer, nil
}

func (s *Service) load() (domain.Keypair, error) {
	kp, err := s.keys.LoadKeypair(s.cfg.KeypairPath, s.cfg.Passphrase)
	switch {
	case err == nil:
		return kp, nil
	case errors.Is(err, domain.ErrKeypairNotFound):
		s.log.Warn("payer keypair not found, using an ephemeral keypair",
			zap.String("path", s.cfg.KeypairPath))
		kp, err = crypto.GenerateKeypair()
		if err != nil {
			return domain.Keypair{}, fmt.Errorf("generate payer: %w", err)
		}
		return kp, nil
	default:
		return domain.Keypair{}, fmt.Errorf("load payer %s: %w", s.cfg.KeypairPath, err)
	}
}

// requiredFees is the rent for the data account plus feeHeadroom signatures.
func (s *Service) requiredFees(ctx context.Context, payer domain.PublicKey) (domain.Lamports, error) {
	rent, err := s.client.GetMinimumBalanceForRentExemption(ctx, s.cfg.AccountSpace)
	if err != nil {
		return 0, fmt.Errorf("rent exemption: %w", err)
	}
	perSignature, err := s.feePerSignature(ctx, payer)
	if err != nil {
		return 0, err
	}
	return rent + feeHeadroom*perSignature, nil
}

// feePerSignature prices a message with a single signer.
func (s *Service) feePerSignature(ctx context.Context, payer domain.PublicKey) (domain.Lamports, error) {
	bh, err := s.client.GetLatestBlockhash(ctx)
	if err != nil {
		return 0, fmt.Errorf("latest blockhash: %w", err)
	}
	probe := domain.Instruction{
		ProgramID: instruction.SystemProgramID,
		Accounts:  []domain.AccountMeta{{PublicKey: payer, IsSigner: true, IsWritable: true}},
	}
	msg, err := transaction.Compile(payer, bh.Hash, probe)
	if err != nil {
		return 0, err
	}
	raw, err := msg.Serialize()
	if err != nil {
		return 0, err
	}
	fee, err := s.client.GetFeeForMessage(ctx, raw)
	if err != nil {
		return 0, fmt.Errorf("fee for message: %w", err)
	}
	return fee, nil
}

// Compile-time assertion that Service implements domain.PayerService.
var _ domain.PayerService = (*Service)(nil)
