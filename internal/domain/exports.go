package domain

import (
	interfaces "solhello/internal/domain/interfaces"
	types "solhello/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	PublicKey       = types.PublicKey
	PrivateKey      = types.PrivateKey
	Keypair         = types.Keypair
	Signature       = types.Signature
	Hash            = types.Hash
	Commitment      = types.Commitment
	Lamports        = types.Lamports
	AccountInfo     = types.AccountInfo
	GreetingAccount = types.GreetingAccount
	Version         = types.Version
	Blockhash       = types.Blockhash
	SignatureStatus = types.SignatureStatus
	ClusterConfig   = types.ClusterConfig
	AccountMeta     = types.AccountMeta
	Instruction     = types.Instruction
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	ClusterClient      = interfaces.ClusterClient
	KeypairStore       = interfaces.KeypairStore
	ClusterConfigStore = interfaces.ClusterConfigStore
	ConnectionService  = interfaces.ConnectionService
	PayerService       = interfaces.PayerService
	ProgramService     = interfaces.ProgramService
	CounterService     = interfaces.CounterService
)

const (
	CommitmentProcessed = types.CommitmentProcessed
	CommitmentConfirmed = types.CommitmentConfirmed
	CommitmentFinalized = types.CommitmentFinalized

	LamportsPerSOL      = types.LamportsPerSOL
	GreetingAccountSize = types.GreetingAccountSize

	PublicKeyLength  = types.PublicKeyLength
	PrivateKeyLength = types.PrivateKeyLength
	SignatureLength  = types.SignatureLength
)

var (
	PublicKeyFromBase58 = types.PublicKeyFromBase58
	SignatureFromBase58 = types.SignatureFromBase58
	HashFromBase58      = types.HashFromBase58
	MustPublicKey       = types.MustPublicKey
)
