package codec

import (
	"crypto/aes"
	"crypto/sha256"
	"fmt"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// LegacySalt is the fixed application salt used by the legacy envelope.
	LegacySalt = "AdvancedEditor2026"

	// LegacyIterations is the PBKDF2 round count of the legacy envelope.
	LegacyIterations = 65536

	// KeySize is the derived key length in bytes (AES-256).
	KeySize = 32

	// IVSize is the derived IV length in bytes.
	IVSize = aes.BlockSize

	// DocumentContext is the derivation context for document envelopes.
	DocumentContext = "document"
)

// KeyMaterial holds a derived key and IV.
type KeyMaterial struct {
	Key []byte
	IV  []byte
}

// Wipe zeroes the key and IV.
func (m *KeyMaterial) Wipe() {
	if m == nil {
		return
	}
	wipe(m.Key)
	wipe(m.IV)
}

// Deriver derives key material with PBKDF2-HMAC-SHA256.
// It holds no scratch state and is safe for concurrent use.
type Deriver struct {
	Salt       []byte
	Iterations int
}

// DefaultDeriver is the deriver used by the legacy envelope.
var DefaultDeriver = Deriver{
	Salt:       []byte(LegacySalt),
	Iterations: LegacyIterations,
}

// DeriveKey derives key material for password in the given context using
// DefaultDeriver. The same password and context always yield the same result.
func DeriveKey(password, context []byte) (*KeyMaterial, error) {
	return DefaultDeriver.Derive(password, context)
}

// Derive returns a KeyMaterial whose key is PBKDF2 over password and whose IV
// is SHA-256(password) truncated to IVSize.
//
// The document context uses the salt as is, matching files written by the
// original editor. Any other context is appended to the salt so keys derived
// for different purposes never coincide.
func (d Deriver) Derive(password, context []byte) (*KeyMaterial, error) {
	if len(d.Salt) == 0 || d.Iterations <= 0 {
		return nil, fmt.Errorf("%w: salt and iteration count are required", verrors.ErrKeyDerivation)
	}

	key := pbkdf2.Key(password, d.saltFor(context), d.Iterations, KeySize, sha256.New)

	sum := sha256.Sum256(password)
	iv := make([]byte, IVSize)
	copy(iv, sum[:IVSize])
	wipe(sum[:])

	return &KeyMaterial{Key: key, IV: iv}, nil
}

func (d Deriver) saltFor(context []byte) []byte {
	if len(context) == 0 || string(context) == DocumentContext {
		return d.Salt
	}
	salt := make([]byte, 0, len(d.Salt)+1+len(context))
	salt = append(salt, d.Salt...)
	salt = append(salt, ':')
	return append(salt, context...)
}

// wipe overwrites b with zeros.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
