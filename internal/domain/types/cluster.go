package types

// Version is the cluster software version reported by getVersion.
type Version struct {
	SolanaCore string `json:"solana-core"`
	FeatureSet uint32 `json:"feature-set"`
}

// Blockhash is a recent blockhash and the last block height it is valid for.
type Blockhash struct {
	Hash                 Hash
	LastValidBlockHeight uint64
}

// SignatureStatus is the processing state of a submitted transaction.
type SignatureStatus struct {
	Slot               uint64
	Confirmations      *uint64
	Err                []byte // raw JSON of the transaction error, nil on success
	ConfirmationStatus Commitment
}

// ClusterConfig mirrors the fields of the Solana CLI config file that clients use.
type ClusterConfig struct {
	JSONRPCURL   string     `yaml:"json_rpc_url"`
	WebsocketURL string     `yaml:"websocket_url"`
	KeypairPath  string     `yaml:"keypair_path"`
	Commitment   Commitment `yaml:"commitment"`
}
