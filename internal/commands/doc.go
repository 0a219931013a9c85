// Package commands defines the hello and mech CLIs.
//
// Commands
//
//   - (root)   Run the variant's pipeline
//   - keygen   Write a new payer keypair, optionally encrypted
//   - address  Print the payer, program and data account addresses
//   - report   Print the number held by the data account
//
// # Implementation
//
// The root command reads flags, SOLHELLO_* environment variables and an
// optional config file through viper, resolves them against the Solana CLI
// config, and builds the logger and app before any subcommand runs. Errors
// are printed once on stderr and map to exit status -1.
package commands
