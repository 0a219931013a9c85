// Package instruction builds the instructions the clients submit: the system
// program's create-account-with-seed, and the hello world and mech program
// actions.
//
// System program instruction data uses the bincode layout (u32 discriminant,
// u64 string lengths). Program instruction data is borsh encoded.
package instruction
