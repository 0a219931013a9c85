package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"

	"solhello/internal/domain"
	"solhello/internal/rpc"
	"solhello/internal/sequencer"
	"solhello/internal/services/program"
	"solhello/internal/store"
)

const defaultConfirmTimeout = 60 * time.Second

// Config holds runtime wiring options for building the app. Keys match the
// command line flags; the same keys are read from the config file and from
// SOLHELLO_* environment variables.
type Config struct {
	URL            string        `mapstructure:"url"`
	Keypair        string        `mapstructure:"keypair"`
	Passphrase     string        `mapstructure:"passphrase"`
	ProgramKeypair string        `mapstructure:"program-keypair"`
	ProgramID      string        `mapstructure:"program-id"`
	Seed           string        `mapstructure:"seed"`
	AccountSpace   uint64        `mapstructure:"account-space"`
	SolanaConfig   string        `mapstructure:"solana-config"`
	Commitment     string        `mapstructure:"commitment"`
	ConfirmTimeout time.Duration `mapstructure:"confirm-timeout"`
	Enable         []string      `mapstructure:"enable"`
	Disable        []string      `mapstructure:"disable"`
	Number         string        `mapstructure:"number"`
	LogLevel       string        `mapstructure:"log-level"`
	NoColor        bool          `mapstructure:"no-color"`

	// HasNumber is set when Number was given explicitly, even as "".
	HasNumber bool `mapstructure:"-"`
	// HTTP is optional; defaults to http.DefaultClient.
	HTTP *http.Client `mapstructure:"-"`
}

// LoadConfig decodes v and fills the variant's defaults.
func LoadConfig(v *viper.Viper, variant Variant) (Config, error) {
	if err := variant.Validate(); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.HasNumber = v.IsSet("number")

	if cfg.ProgramID == "" && cfg.ProgramKeypair == "" {
		cfg.ProgramKeypair = variant.DefaultProgramKeypair()
	}
	if cfg.Seed == "" {
		cfg.Seed = program.DefaultSeed
	}
	if cfg.AccountSpace == 0 {
		cfg.AccountSpace = variant.DefaultAccountSpace()
	}
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = defaultConfirmTimeout
	}
	return cfg, nil
}

// ResolveCluster fills the endpoint, payer keypair path and commitment from
// the Solana CLI config when they were not given, falling back to the local
// validator and the CLI's default keypair.
func (c *Config) ResolveCluster(configs domain.ClusterConfigStore) error {
	path := c.SolanaConfig
	if path == "" {
		p, err := store.DefaultClusterConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	cli, _, err := configs.LoadClusterConfig(path)
	if err != nil {
		return err
	}

	if c.URL == "" {
		c.URL = cli.JSONRPCURL
	}
	if c.URL == "" {
		c.URL = rpc.DefaultEndpoint
	}

	if c.Keypair == "" {
		c.Keypair = cli.KeypairPath
	}
	if c.Keypair == "" {
		p, err := store.DefaultKeypairPath()
		if err != nil {
			return err
		}
		c.Keypair = p
	}

	if c.Commitment == "" {
		c.Commitment = string(cli.Commitment)
	}
	if c.Commitment == "" {
		c.Commitment = string(domain.CommitmentConfirmed)
	}
	switch domain.Commitment(c.Commitment) {
	case domain.CommitmentProcessed, domain.CommitmentConfirmed, domain.CommitmentFinalized:
	default:
		return fmt.Errorf("unknown commitment %q", c.Commitment)
	}
	return nil
}

// Toggles returns the stage overrides named by Enable and Disable.
func (c Config) Toggles() Toggles {
	var t Toggles
	for _, n := range c.Enable {
		t.Enable = append(t.Enable, sequencer.StageName(n))
	}
	for _, n := range c.Disable {
		t.Disable = append(t.Disable, sequencer.StageName(n))
	}
	return t
}
