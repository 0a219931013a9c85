package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"solhello/internal/domain"
)

// ClusterConfigFileStore reads the Solana CLI config (config.yml).
type ClusterConfigFileStore struct{}

// NewClusterConfigFileStore returns a ClusterConfigFileStore.
func NewClusterConfigFileStore() *ClusterConfigFileStore { return &ClusterConfigFileStore{} }

// DefaultClusterConfigPath returns ~/.config/solana/cli/config.yml.
func DefaultClusterConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "solana", "cli", "config.yml"), nil
}

// DefaultKeypairPath returns ~/.config/solana/id.json.
func DefaultKeypairPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "solana", "id.json"), nil
}

// LoadClusterConfig parses the config at path. A missing file returns ok=false.
func (s *ClusterConfigFileStore) LoadClusterConfig(path string) (domain.ClusterConfig, bool, error) {
	b, err := readFile(path)
	if err != nil {
		return domain.ClusterConfig{}, false, err
	}
	if b == nil {
		return domain.ClusterConfig{}, false, nil
	}
	var cfg domain.ClusterConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return domain.ClusterConfig{}, false, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, true, nil
}

// Compile-time assertion that ClusterConfigFileStore implements domain.ClusterConfigStore.
var _ domain.ClusterConfigStore = (*ClusterConfigFileStore)(nil)
