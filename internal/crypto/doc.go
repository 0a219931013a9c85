// Package crypto exposes the primitives the clients need to talk to a cluster.
//
// Contents
//
//   - Ed25519 keypair generation, signing and verification (GenerateKeypair,
//     KeypairFromSecret, Sign, Verify)
//   - Seeded account address derivation (CreateWithSeed)
//   - Wire encodings for transactions and account data (B64, FromB64,
//     DecodeAccountData)
//   - Best-effort memory wiping for secret key material (Wipe, WipeKeypair)
//
// # Notes
//
// Keys and signatures use the fixed-size array types defined in
// internal/domain. Their base58 text form lives on those types.
package crypto
