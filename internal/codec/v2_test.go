package codec

import (
	"bytes"
	"testing"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var suites = []Suite{SuiteAESGCM, SuiteXChaCha20Poly1305}

func TestSealWith_V2RoundTrip(t *testing.T) {
	for _, suite := range suites {
		t.Run(string(suite), func(t *testing.T) {
			envelope, err := SealWith([]byte("İstanbul"), []byte("secret"), Options{Format: FormatV2, Suite: suite})
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(envelope, []byte("$vellum$v2$"+string(suite)+"$")))
			assert.Equal(t, FormatV2, Detect(envelope))

			got, format, err := OpenAny(envelope, []byte("secret"))
			require.NoError(t, err)
			assert.Equal(t, FormatV2, format)
			assert.Equal(t, "İstanbul", string(got))
		})
	}
}

func TestSealWith_V2IsRandomized(t *testing.T) {
	opts := Options{Format: FormatV2}
	a, err := SealWith([]byte("same"), []byte("secret"), opts)
	require.NoError(t, err)
	b, err := SealWith([]byte("same"), []byte("secret"), opts)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSealWith_DefaultsToLegacy(t *testing.T) {
	envelope, err := SealWith([]byte("İstanbul"), []byte("secret"), Options{})
	require.NoError(t, err)
	assert.Equal(t, "JFcf79jPeqbEIkHWTm2MXA==", string(envelope))
}

func TestOpenAny_Legacy(t *testing.T) {
	got, format, err := OpenAny([]byte("JFcf79jPeqbEIkHWTm2MXA=="), []byte("secret"))
	require.NoError(t, err)
	assert.Equal(t, FormatLegacy, format)
	assert.Equal(t, "İstanbul", string(got))
}

func TestOpenAny_V2WrongPassword(t *testing.T) {
	envelope, err := SealWith([]byte("data"), []byte("secret"), Options{Format: FormatV2})
	require.NoError(t, err)

	_, _, err = OpenAny(envelope, []byte("wrong"))
	assert.ErrorIs(t, err, verrors.ErrDecryption)
}

func TestOpenAny_V2Tampered(t *testing.T) {
	envelope, err := SealWith([]byte("data that matters"), []byte("secret"), Options{Format: FormatV2})
	require.NoError(t, err)

	tampered := bytes.Clone(envelope)
	i := len(tampered) - 6
	if tampered[i] == 'A' {
		tampered[i] = 'B'
	} else {
		tampered[i] = 'A'
	}

	_, _, err = OpenAny(tampered, []byte("secret"))
	assert.ErrorIs(t, err, verrors.ErrDecryption)
}

func TestOpenAny_V2SuiteSwapped(t *testing.T) {
	envelope, err := SealWith([]byte("data"), []byte("secret"), Options{Format: FormatV2, Suite: SuiteAESGCM})
	require.NoError(t, err)

	swapped := bytes.Replace(envelope, []byte(SuiteAESGCM), []byte(SuiteXChaCha20Poly1305), 1)
	_, _, err = OpenAny(swapped, []byte("secret"))
	assert.ErrorIs(t, err, verrors.ErrDecryption)
}

func TestOpenAny_V2Malformed(t *testing.T) {
	for _, env := range []string{
		"$vellum$v2$",
		"$vellum$v2$aes-256-gcm",
		"$vellum$v2$aes-256-gcm$!!!",
		"$vellum$v2$aes-256-gcm$AAAA",
		"$vellum$v2$rot13$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
	} {
		t.Run(env, func(t *testing.T) {
			_, _, err := OpenAny([]byte(env), []byte("secret"))
			assert.ErrorIs(t, err, verrors.ErrDecryption)
		})
	}
}

func TestSealWith_Errors(t *testing.T) {
	_, err := SealWith([]byte("x"), nil, Options{Format: FormatV2})
	assert.ErrorIs(t, err, verrors.ErrEmptyPassword)

	_, err = SealWith([]byte("x"), []byte("pw"), Options{Format: FormatV2, Suite: "rot13"})
	assert.ErrorIs(t, err, verrors.ErrUnknownFormat)

	_, err = SealWith([]byte("x"), []byte("pw"), Options{Format: Format(42)})
	assert.ErrorIs(t, err, verrors.ErrUnknownFormat)
}

func TestParseFormatAndSuite(t *testing.T) {
	f, err := ParseFormat("V2")
	require.NoError(t, err)
	assert.Equal(t, FormatV2, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatLegacy, f)

	_, err = ParseFormat("v3")
	assert.ErrorIs(t, err, verrors.ErrUnknownFormat)

	s, err := ParseSuite("XChaCha20-Poly1305")
	require.NoError(t, err)
	assert.Equal(t, SuiteXChaCha20Poly1305, s)

	s, err = ParseSuite("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSuite, s)

	_, err = ParseSuite("des")
	assert.ErrorIs(t, err, verrors.ErrUnknownFormat)

	assert.Equal(t, "legacy", FormatLegacy.String())
	assert.Equal(t, "v2", FormatV2.String())
}
