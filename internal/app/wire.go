package app

import (
	"net/http"

	"go.uber.org/zap"

	"solhello/internal/domain"
	"solhello/internal/rpc"
	"solhello/internal/services/connection"
	"solhello/internal/services/counter"
	"solhello/internal/services/payer"
	"solhello/internal/services/program"
	"solhello/internal/store"
	"solhello/internal/util/console"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Client     *rpc.Client
	Keys       domain.KeypairStore
	Connection *connection.Service
	Payer      *payer.Service
	Program    *program.Service
	Counter    *counter.Service
}

// NewWire constructs the dependency graph from a resolved cfg.
func NewWire(cfg Config, out *console.Console, log *zap.Logger) *Wire {
	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	client := rpc.New(cfg.URL,
		rpc.WithHTTPClient(httpClient),
		rpc.WithLogger(log.Named("rpc")),
		rpc.WithCommitment(domain.Commitment(cfg.Commitment)),
		rpc.WithConfirmTimeout(cfg.ConfirmTimeout),
	)
	keys := store.NewKeypairFileStore()

	connSvc := connection.New(client, out, log.Named("connection"))
	payerSvc := payer.New(client, keys, payer.Config{
		KeypairPath:  cfg.Keypair,
		Passphrase:   cfg.Passphrase,
		AccountSpace: cfg.AccountSpace,
	}, out, log.Named("payer"))
	programSvc := program.New(client, keys, payerSvc, program.Config{
		ProgramID:          cfg.ProgramID,
		ProgramKeypairPath: cfg.ProgramKeypair,
		Seed:               cfg.Seed,
		AccountSpace:       cfg.AccountSpace,
	}, out, log.Named("program"))
	counterSvc := counter.New(client, payerSvc, programSvc, out, log.Named("counter"))

	return &Wire{
		Client:     client,
		Keys:       keys,
		Connection: connSvc,
		Payer:      payerSvc,
		Program:    programSvc,
		Counter:    counterSvc,
	}
}

// serviceActions satisfies Actions with the wired services.
type serviceActions struct {
	domain.ConnectionService
	domain.PayerService
	domain.ProgramService
	domain.CounterService
}

// Actions returns the services as pipeline actions.
func (w *Wire) Actions() Actions {
	return serviceActions{w.Connection, w.Payer, w.Program, w.Counter}
}
