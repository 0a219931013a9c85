// Package app wires application dependencies for the CLI.
//
// It resolves Config against the Solana CLI configuration, builds the
// concrete stores, RPC client and services into a Wire, and assembles the
// ordered stage list each binary variant runs through the sequencer.
package app
