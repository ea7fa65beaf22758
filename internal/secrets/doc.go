// Package secrets implements the encrypted at-rest store for Web UI
// credentials.
//
// # Encryption Architecture
//
// A single 256-bit symmetric key protects the credential file:
//
//  1. The key is generated on first use and kept in its own file (or in the
//     OS keyring), base64 encoded, readable only by the owner
//  2. Each save serialises the payload to JSON and encrypts it under a fresh
//     16-byte nonce
//  3. The result is written as a versioned JSON envelope next to nothing
//     else: no plaintext ever reaches the disk
//
// # Envelope Format
//
// Version 1 envelopes look like:
//
//	{
//	  "version": 1,
//	  "nonce": "<base64, 16 bytes>",
//	  "ciphertext": "<base64, same length as the plaintext>",
//	  "mac": "<base64, 32 bytes>"
//	}
//
// The ciphertext is the plaintext XORed with a keystream built from keyed
// BLAKE2b-512 in counter mode: block c is BLAKE2b(key, nonce || uint64be(c)).
// The mac is HMAC-SHA256 over nonce || ciphertext under the same key.
// Decryption verifies the mac in constant time before the keystream is
// derived, so tampered data is never turned into plaintext.
//
// The scheme is kept bit-compatible with envelopes written by earlier
// deployments. A future scheme would use a new version number.
//
// # Loading
//
// Store.Load handles three on-disk states:
//   - No file: the fallback payload is saved and returned (bootstrap)
//   - A JSON object without a "ciphertext" key: a legacy plaintext file,
//     returned as-is and rewritten encrypted (migration)
//   - An envelope: decrypted and returned
//
// Every other failure is returned to the caller. In particular an
// integrity failure is never treated as a missing or legacy file.
//
// # Concurrency
//
// A Store and a FileKeyManager are safe for concurrent use within one
// process. Across processes the key file is created atomically (the first
// writer wins and everyone else loads its key) and config writes are atomic
// renames, so concurrent writers end with the last write.
package secrets
