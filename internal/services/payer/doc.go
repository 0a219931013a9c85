// Package payer loads the fee payer keypair and keeps it funded.
//
// When no keypair file exists an ephemeral keypair is generated for the run.
// The payer needs enough lamports to create the rent-exempt data account plus
// headroom for transaction fees; any shortfall is requested by airdrop.
package payer
