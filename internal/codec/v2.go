package codec

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	v2Prefix   = "$vellum$v2$"
	v2SaltSize = 16

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

func sealV2(plaintext, password []byte, suite Suite) ([]byte, error) {
	if len(password) == 0 {
		return nil, verrors.ErrEmptyPassword
	}

	salt := make([]byte, v2SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeySize)
	defer wipe(key)

	aead, err := newAEAD(suite, key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	header := v2Header(suite)
	payload := make([]byte, 0, len(salt)+len(nonce)+len(plaintext)+aead.Overhead())
	payload = append(payload, salt...)
	payload = append(payload, nonce...)
	payload = aead.Seal(payload, nonce, plaintext, header)

	out := make([]byte, len(header)+base64.StdEncoding.EncodedLen(len(payload)))
	copy(out, header)
	base64.StdEncoding.Encode(out[len(header):], payload)
	return out, nil
}

func openV2(envelope, password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, verrors.ErrEmptyPassword
	}

	envelope = bytes.TrimSpace(envelope)
	rest, ok := bytes.CutPrefix(envelope, []byte(v2Prefix))
	if !ok {
		return nil, verrors.ErrDecryption
	}
	name, body, ok := bytes.Cut(rest, []byte("$"))
	if !ok {
		return nil, verrors.ErrDecryption
	}
	suite := Suite(name)

	payload := make([]byte, base64.StdEncoding.DecodedLen(len(body)))
	n, err := base64.StdEncoding.Decode(payload, body)
	if err != nil {
		return nil, verrors.ErrDecryption
	}
	payload = payload[:n]

	if len(payload) < v2SaltSize {
		return nil, verrors.ErrDecryption
	}
	salt := payload[:v2SaltSize]

	key := argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeySize)
	defer wipe(key)

	aead, err := newAEAD(suite, key)
	if err != nil {
		return nil, verrors.ErrDecryption
	}

	sealed := payload[v2SaltSize:]
	if len(sealed) < aead.NonceSize()+aead.Overhead() {
		return nil, verrors.ErrDecryption
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, ciphertext, v2Header(suite))
	if err != nil {
		return nil, verrors.ErrDecryption
	}
	return plaintext, nil
}

func newAEAD(suite Suite, key []byte) (cipher.AEAD, error) {
	switch suite {
	case SuiteAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", verrors.ErrKeyDerivation, err)
		}
		return cipher.NewGCM(block)
	case SuiteXChaCha20Poly1305:
		return chacha20poly1305.NewX(key)
	default:
		return nil, fmt.Errorf("%w: cipher suite %q", verrors.ErrUnknownFormat, suite)
	}
}

// v2Header is both the text prefix and the associated data, binding the
// suite name to the ciphertext.
func v2Header(suite Suite) []byte {
	return []byte(v2Prefix + string(suite) + "$")
}
