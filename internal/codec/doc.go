// Package codec turns passwords into key material and documents into
// encrypted envelopes.
//
// # Legacy envelope
//
// The legacy format is what the original desktop editor wrote and is the
// default for new saves:
//
//	Base64(AES-256-CBC(PKCS7(plaintext), key, iv))
//
// The key is PBKDF2-HMAC-SHA256 over the password with a fixed application
// salt and 65,536 iterations. The IV is the first 16 bytes of SHA-256 of the
// password. There is no header, no stored salt and no version byte.
//
// Known weakness: the scheme is deterministic. Sealing the same plaintext
// twice with the same password produces identical bytes, so an observer can
// tell when two saves hold the same content. There is also no integrity tag,
// which is why a wrong password and a damaged file both surface as
// errors.ErrDecryption.
//
// # Versioned envelope (v2)
//
// SealWith can produce an authenticated envelope with a random salt and nonce:
//
//	$vellum$v2$<suite>$Base64(salt || nonce || ciphertext || tag)
//
// The key is Argon2id over the password and the per-envelope salt. Suites are
// AES-256-GCM and XChaCha20-Poly1305. The '$' prefix is outside the Base64
// alphabet, so Detect never confuses the two formats. OpenAny accepts both.
//
// # Password handling
//
// Functions in this package never copy or retain the password. Derived key
// material is wiped before returning; callers should wipe their own password
// buffers once the call completes.
package codec
