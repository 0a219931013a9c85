package counter

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"solhello/internal/domain"
	"solhello/internal/protocol/instruction"
	"solhello/internal/protocol/transaction"
	"solhello/internal/util/console"
)

// ErrAccountNotFound is returned when the data account does not exist.
var ErrAccountNotFound = errors.New("data account not found")

// Service sends program instructions paid for by the payer.
type Service struct {
	client  domain.ClusterClient
	payer   domain.PayerService
	program domain.ProgramService
	out     *console.Console
	log     *zap.Logger
}

// New returns a counter service.
func New(
	client domain.ClusterClient,
	payer domain.PayerService,
	program domain.ProgramService,
	out *console.Console,
	log *zap.Logger,
) *Service {
	return &Service{client: client, payer: payer, program: program, out: out, log: log}
}

// StoreNumber writes number into the data account. Values outside the u32
// range wrap, and NaN stores 0.
func (s *Service) StoreNumber(ctx context.Context, number float64) error {
	programID, account, err := s.target()
	if err != nil {
		return err
	}
	s.out.Outf("Saying hello to {{cyan}}%s{{/}}\n", account)
	ix, err := instruction.StoreNumber(programID, account, instruction.ToUint32(number))
	if err != nil {
		return err
	}
	return s.submit(ctx, "store-number", ix)
}

// ChangeNumber applies operation to the stored number with operand number.
func (s *Service) ChangeNumber(ctx context.Context, operation, number float64) error {
	programID, account, err := s.target()
	if err != nil {
		return err
	}
	s.out.Outf("Changing number in {{cyan}}%s{{/}}\n", account)
	ix, err := instruction.ChangeNumber(programID, account,
		instruction.ToUint8(operation), instruction.ToUint32(number))
	if err != nil {
		return err
	}
	return s.submit(ctx, "change-number", ix)
}

// ExecuteImpact runs the program's execute instruction over the data account.
func (s *Service) ExecuteImpact(ctx context.Context) error {
	programID, account, err := s.target()
	if err != nil {
		return err
	}
	s.out.Outf("Executing impact on {{cyan}}%s{{/}}\n", account)
	ix, err := instruction.ExecuteImpact(programID, account)
	if err != nil {
		return err
	}
	return s.submit(ctx, "execute-impact", ix)
}

// ReportGreetings prints the number currently held by the data account.
func (s *Service) ReportGreetings(ctx context.Context) error {
	g, err := s.Greeting(ctx)
	if err != nil {
		return err
	}
	account, _ := s.program.DataAccount()
	s.out.Outf("{{cyan}}%s{{/}} has been greeted {{bold}}%d{{/}} time(s)\n", account, g.Number)
	return nil
}

// Greeting fetches and decodes the data account.
func (s *Service) Greeting(ctx context.Context) (domain.GreetingAccount, error) {
	account, err := s.program.DataAccount()
	if err != nil {
		return domain.GreetingAccount{}, err
	}
	info, err := s.client.GetAccountInfo(ctx, account)
	if err != nil {
		return domain.GreetingAccount{}, fmt.Errorf("data account: %w", err)
	}
	if info == nil {
		return domain.GreetingAccount{}, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	g, err := instruction.DecodeGreeting(info.Data)
	if err != nil {
		return domain.GreetingAccount{}, fmt.Errorf("decode %s: %w", account, err)
	}
	return g, nil
}

func (s *Service) target() (programID, account domain.PublicKey, err error) {
	if programID, err = s.program.ProgramID(); err != nil {
		return
	}
	account, err = s.program.DataAccount()
	return
}

func (s *Service) submit(ctx context.Context, action string, ix domain.Instruction) error {
	payer, err := s.payer.Payer()
	if err != nil {
		return err
	}
	sig, err := transaction.Submit(ctx, s.client, payer, nil, ix)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	s.log.Info("transaction confirmed", zap.String("action", action), zap.Stringer("signature", sig))
	return nil
}

// Compile-time assertion that Service implements domain.CounterService.
var _ domain.CounterService = (*Service)(nil)
