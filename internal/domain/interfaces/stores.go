package interfaces

import domaintypes "solhello/internal/domain/types"

// KeypairStore reads and writes keypair files. An empty passphrase means the
// plain Solana JSON byte-array format.
type KeypairStore interface {
	SaveKeypair(path, passphrase string, keypair domaintypes.Keypair) error
	LoadKeypair(path, passphrase string) (domaintypes.Keypair, error)
}

// ClusterConfigStore reads the Solana CLI configuration file.
type ClusterConfigStore interface {
	LoadClusterConfig(path string) (domaintypes.ClusterConfig, bool, error)
}
