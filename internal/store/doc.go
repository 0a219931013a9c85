// Package store provides file-based persistence for the client's local data.
//
// It contains concrete implementations of the domain storage interfaces:
//   - Keypair files (KeypairFileStore), in the Solana CLI JSON byte-array
//     format or sealed with a passphrase
//   - The Solana CLI config file (ClusterConfigFileStore), read-only
//
// Writes go through a temp file and an atomic rename. Keypair files are
// created with mode 0600.
package store
