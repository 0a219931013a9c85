package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"solhello/internal/crypto"
	"solhello/internal/domain"
	"solhello/internal/prompt"
	"solhello/internal/sequencer"
	"solhello/internal/util/console"
)

// ErrKeypairExists is returned by Keygen when the target file already exists.
var ErrKeypairExists = errors.New("keypair file already exists")

// App runs one variant against a resolved configuration.
type App struct {
	Variant Variant
	Config  Config
	Wire    *Wire
	Out     *console.Console
	Log     *zap.Logger
}

// New builds the wire for cfg, which must already be resolved.
func New(variant Variant, cfg Config, out *console.Console, log *zap.Logger) (*App, error) {
	if err := variant.Validate(); err != nil {
		return nil, err
	}
	return &App{
		Variant: variant,
		Config:  cfg,
		Wire:    NewWire(cfg, out, log),
		Out:     out,
		Log:     log,
	}, nil
}

func (a *App) sequencer(stages []sequencer.Stage) *sequencer.Sequencer {
	return sequencer.New(stages,
		sequencer.WithReporter(sequencer.ConsoleReporter{Console: a.Out}),
		sequencer.WithLogger(a.Log.Named("sequencer")),
	)
}

// Run builds the variant's pipeline and runs it. The error is non-nil only
// when the pipeline could not be built.
func (a *App) Run(ctx context.Context, input prompt.NumberProvider) (sequencer.Result, error) {
	stages, err := BuildPipeline(a.Variant, a.Wire.Actions(), input, a.Out, a.Config.Toggles())
	if err != nil {
		return sequencer.Result{}, err
	}
	return a.sequencer(stages).Run(ctx), nil
}

// Report prints the number held by the data account without sending any
// transaction. The payer keypair must exist since it seeds the address.
func (a *App) Report(ctx context.Context) sequencer.Result {
	stages := []sequencer.Stage{
		{Name: StageEstablishConnection, Run: a.Wire.Connection.EstablishConnection},
		{Name: StageCheckProgram, Run: func(ctx context.Context) error {
			kp, err := a.Wire.Keys.LoadKeypair(a.Config.Keypair, a.Config.Passphrase)
			if err != nil {
				return fmt.Errorf("load payer: %w", err)
			}
			id, err := a.Wire.Program.Lookup(ctx)
			if err != nil {
				return err
			}
			addr, err := a.Wire.Program.DeriveDataAccount(kp.Public, id)
			if err != nil {
				return err
			}
			a.Wire.Program.UseDataAccount(addr)
			return nil
		}},
		{Name: StageReportGreetings, Run: a.Wire.Counter.ReportGreetings},
	}
	return a.sequencer(stages).Run(ctx)
}

// Addresses are the accounts a run would use.
type Addresses struct {
	Payer       domain.PublicKey
	Program     domain.PublicKey
	DataAccount domain.PublicKey
}

// Addresses derives the payer, program and data account addresses from
// local files only.
func (a *App) Addresses() (Addresses, error) {
	kp, err := a.Wire.Keys.LoadKeypair(a.Config.Keypair, a.Config.Passphrase)
	if err != nil {
		return Addresses{}, fmt.Errorf("load payer: %w", err)
	}
	defer crypto.WipeKeypair(&kp)
	id, err := a.Wire.Program.ResolveProgramID()
	if err != nil {
		return Addresses{}, err
	}
	addr, err := a.Wire.Program.DeriveDataAccount(kp.Public, id)
	if err != nil {
		return Addresses{}, err
	}
	return Addresses{Payer: kp.Public, Program: id, DataAccount: addr}, nil
}

// Keygen writes a new keypair to path, encrypted when passphrase is set.
// Existing files are kept unless force is true.
func (a *App) Keygen(path, passphrase string, force bool) (domain.PublicKey, error) {
	if !force {
		_, err := a.Wire.Keys.LoadKeypair(path, passphrase)
		if !errors.Is(err, domain.ErrKeypairNotFound) {
			return domain.PublicKey{}, fmt.Errorf("%w: %s", ErrKeypairExists, path)
		}
	}
	kp, err := crypto.GenerateKeypair()
	if err != nil {
		return domain.PublicKey{}, err
	}
	defer crypto.WipeKeypair(&kp)
	if err := a.Wire.Keys.SaveKeypair(path, passphrase, kp); err != nil {
		return domain.PublicKey{}, err
	}
	a.Log.Info("keypair written", zap.String("path", path), zap.Bool("encrypted", passphrase != ""))
	return kp.Public, nil
}
