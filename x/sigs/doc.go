/*
Package sigs provides basic authentication middleware to verify the
ed25519 signatures on the transaction, and maintain sequences for replay
protection.

Each signer is identified by the condition sigs/ed25519/<pubkey> and its
address. Verified signers are stored in the context and exposed through
the Authenticate type.
*/
package sigs
