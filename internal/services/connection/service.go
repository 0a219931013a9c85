package connection

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"solhello/internal/domain"
	"solhello/internal/util/console"
)

// Service establishes the cluster connection.
type Service struct {
	client domain.ClusterClient
	out    *console.Console
	log    *zap.Logger

	version domain.Version
}

// New returns a connection service over client.
func New(client domain.ClusterClient, out *console.Console, log *zap.Logger) *Service {
	return &Service{client: client, out: out, log: log}
}

// EstablishConnection asks the cluster for its version and reports it.
func (s *Service) EstablishConnection(ctx context.Context) error {
	v, err := s.client.GetVersion(ctx)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", s.client.Endpoint(), err)
	}
	s.version = v
	s.log.Debug("cluster version",
		zap.String("endpoint", s.client.Endpoint()),
		zap.String("solana_core", v.SolanaCore),
		zap.Uint32("feature_set", v.FeatureSet),
	)
	s.out.Outf("Connection to cluster established: {{cyan}}%s{{/}} %s (feature set %d)\n",
		s.client.Endpoint(), v.SolanaCore, v.FeatureSet)
	return nil
}

// Version returns the version seen by the last successful EstablishConnection.
func (s *Service) Version() domain.Version { return s.version }

// Compile-time assertion that Service implements domain.ConnectionService.
var _ domain.ConnectionService = (*Service)(nil)
