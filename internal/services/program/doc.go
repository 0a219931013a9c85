// Package program locates the deployed on-chain program and the data account
// it writes to.
//
// The data account address is derived from the payer, a fixed seed and the
// program id, so every run against the same program and payer reuses it. It
// is created rent-exempt on first use.
package program
