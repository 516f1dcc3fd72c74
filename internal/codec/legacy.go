package codec

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
)

// Seal encrypts plaintext into a legacy envelope.
//
// The output is Base64 text of the AES-256-CBC ciphertext of the PKCS#7
// padded plaintext. It is deterministic for a given password and plaintext.
func Seal(plaintext, password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, verrors.ErrEmptyPassword
	}

	km, err := DeriveKey(password, []byte(DocumentContext))
	if err != nil {
		return nil, err
	}
	defer km.Wipe()

	block, err := aes.NewCipher(km.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrKeyDerivation, err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	defer wipe(padded)

	raw := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, km.IV).CryptBlocks(raw, padded)

	envelope := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(envelope, raw)
	return envelope, nil
}

// Open decrypts a legacy envelope.
//
// Every failure after the password check returns errors.ErrDecryption with no
// further detail, whether the Base64 is malformed, the length is not a whole
// number of blocks or the padding does not validate.
func Open(envelope, password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, verrors.ErrEmptyPassword
	}

	envelope = bytes.TrimSpace(envelope)
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(envelope)))
	n, err := base64.StdEncoding.Decode(raw, envelope)
	if err != nil {
		return nil, verrors.ErrDecryption
	}
	raw = raw[:n]
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return nil, verrors.ErrDecryption
	}

	km, err := DeriveKey(password, []byte(DocumentContext))
	if err != nil {
		return nil, err
	}
	defer km.Wipe()

	block, err := aes.NewCipher(km.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrKeyDerivation, err)
	}

	padded := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, km.IV).CryptBlocks(padded, raw)

	plaintext, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		wipe(padded)
		return nil, verrors.ErrDecryption
	}
	return plaintext, nil
}
