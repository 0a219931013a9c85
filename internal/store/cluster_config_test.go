package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"solhello/internal/domain"
	"solhello/internal/store"
)

const cliConfig = `---
json_rpc_url: "https://api.devnet.solana.com"
websocket_url: ""
keypair_path: /home/dev/.config/solana/id.json
address_labels:
  "11111111111111111111111111111111": System Program
commitment: confirmed
`

func TestClusterConfig_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(cliConfig), 0o600))

	cfg, ok, err := store.NewClusterConfigFileStore().LoadClusterConfig(path)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.ClusterConfig{
		JSONRPCURL:  "https://api.devnet.solana.com",
		KeypairPath: "/home/dev/.config/solana/id.json",
		Commitment:  domain.CommitmentConfirmed,
	}, cfg)
}

func TestClusterConfig_Missing(t *testing.T) {
	_, ok, err := store.NewClusterConfigFileStore().LoadClusterConfig(filepath.Join(t.TempDir(), "none.yml"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestClusterConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("json_rpc_url: [unterminated"), 0o600))

	_, _, err := store.NewClusterConfigFileStore().LoadClusterConfig(path)
	require.Error(t, err)
}
