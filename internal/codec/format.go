package codec

import (
	"bytes"
	"fmt"
	"strings"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
)

// Format identifies an envelope layout.
type Format int

const (
	// FormatLegacy is the header-less, deterministic AES-256-CBC envelope.
	FormatLegacy Format = iota
	// FormatV2 is the versioned, authenticated envelope.
	FormatV2
)

func (f Format) String() string {
	switch f {
	case FormatLegacy:
		return "legacy"
	case FormatV2:
		return "v2"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat parses a format name as written in configuration and flags.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return FormatLegacy, nil
	case "v2":
		return FormatV2, nil
	default:
		return 0, fmt.Errorf("%w: %q", verrors.ErrUnknownFormat, s)
	}
}

// Suite names the AEAD used by a v2 envelope.
type Suite string

const (
	SuiteAESGCM            Suite = "aes-256-gcm"
	SuiteXChaCha20Poly1305 Suite = "xchacha20-poly1305"
)

// DefaultSuite is used when Options leaves the suite empty.
const DefaultSuite = SuiteAESGCM

// ParseSuite parses a cipher suite name.
func ParseSuite(s string) (Suite, error) {
	switch Suite(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultSuite, nil
	case SuiteAESGCM:
		return SuiteAESGCM, nil
	case SuiteXChaCha20Poly1305:
		return SuiteXChaCha20Poly1305, nil
	default:
		return "", fmt.Errorf("%w: cipher suite %q", verrors.ErrUnknownFormat, s)
	}
}

// Options selects the envelope produced by SealWith.
// The zero value selects the legacy envelope.
type Options struct {
	Format Format
	Suite  Suite
}

// Detect reports the format of an envelope without decrypting it.
func Detect(envelope []byte) Format {
	if bytes.HasPrefix(bytes.TrimSpace(envelope), []byte(v2Prefix)) {
		return FormatV2
	}
	return FormatLegacy
}

// SealWith encrypts plaintext into the envelope selected by opts.
func SealWith(plaintext, password []byte, opts Options) ([]byte, error) {
	switch opts.Format {
	case FormatLegacy:
		return Seal(plaintext, password)
	case FormatV2:
		suite := opts.Suite
		if suite == "" {
			suite = DefaultSuite
		}
		return sealV2(plaintext, password, suite)
	default:
		return nil, fmt.Errorf("%w: %s", verrors.ErrUnknownFormat, opts.Format)
	}
}

// OpenAny decrypts an envelope of either format and reports which one it was.
func OpenAny(envelope, password []byte) ([]byte, Format, error) {
	format := Detect(envelope)
	var (
		plaintext []byte
		err       error
	)
	switch format {
	case FormatV2:
		plaintext, err = openV2(envelope, password)
	default:
		plaintext, err = Open(envelope, password)
	}
	if err != nil {
		return nil, format, err
	}
	return plaintext, format, nil
}
