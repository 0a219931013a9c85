// Package transaction compiles instructions into a legacy cluster message,
// signs it, and serializes it to the wire format accepted by sendTransaction.
//
// # Message layout
//
//	header           3 bytes: required signatures, readonly signed, readonly unsigned
//	account keys     compact-u16 count, then 32 bytes each
//	recent blockhash 32 bytes
//	instructions     compact-u16 count, then for each:
//	                   program id index (u8)
//	                   compact-u16 account count, account indexes (u8 each)
//	                   compact-u16 data length, data
//
// Account keys are ordered writable signers (fee payer first), readonly
// signers, writable non-signers, readonly non-signers. A key that appears in
// several instructions takes the union of its signer and writable flags.
//
// A transaction is a compact-u16 signature count, the signatures in account
// key order, then the message.
package transaction
