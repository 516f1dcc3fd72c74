package codec

import (
	"strings"
	"testing"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelopes produced by the original editor for the same inputs.
var legacyVectors = []struct {
	plaintext string
	password  string
	envelope  string
}{
	{"İstanbul", "secret", "JFcf79jPeqbEIkHWTm2MXA=="},
	{"", "secret", "GR3hjSOqtej4RZDfH82ing=="},
	{"hello world", "secret", "ELFyM9eZRo47AGaExhH6jQ=="},
	{"Merhaba dünya", "pässwörd", "F+cmdwFIgHh5FvPOYi+w+g=="},
}

func TestSeal_KnownEnvelopes(t *testing.T) {
	for _, v := range legacyVectors {
		t.Run(v.plaintext, func(t *testing.T) {
			got, err := Seal([]byte(v.plaintext), []byte(v.password))
			require.NoError(t, err)
			assert.Equal(t, v.envelope, string(got))
		})
	}
}

func TestOpen_KnownEnvelopes(t *testing.T) {
	for _, v := range legacyVectors {
		t.Run(v.plaintext, func(t *testing.T) {
			got, err := Open([]byte(v.envelope), []byte(v.password))
			require.NoError(t, err)
			assert.Equal(t, v.plaintext, string(got))
		})
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	plaintexts := []string{
		"a",
		"exactly sixteen!",
		"seventeen bytes!!",
		"line one\nline two\r\nline three\n",
		"çğıöşü ÇĞİÖŞÜ 日本語 🙂",
		string([]byte{0x00, 0xff, 0xfe, 0x10}),
	}
	for _, p := range plaintexts {
		envelope, err := Seal([]byte(p), []byte("correct horse"))
		require.NoError(t, err)

		got, err := Open(envelope, []byte("correct horse"))
		require.NoError(t, err)
		assert.Equal(t, p, string(got))
	}
}

func TestSeal_Deterministic(t *testing.T) {
	a, err := Seal([]byte("same content"), []byte("secret"))
	require.NoError(t, err)
	b, err := Seal([]byte("same content"), []byte("secret"))
	require.NoError(t, err)

	assert.Equal(t, a, b, "legacy envelopes are deterministic by construction")
}

func TestOpen_WrongPassword(t *testing.T) {
	envelope := []byte("JFcf79jPeqbEIkHWTm2MXA==")
	for _, pw := range []string{"wrong", "Secret", "secret2", " secret"} {
		t.Run(pw, func(t *testing.T) {
			_, err := Open(envelope, []byte(pw))
			assert.ErrorIs(t, err, verrors.ErrDecryption)
		})
	}
}

func TestOpen_MalformedEnvelopes(t *testing.T) {
	tests := []struct {
		name     string
		envelope string
	}{
		{"not base64", "not base64!!"},
		{"truncated", "JFcf79jPeqbEIkHW"},
		{"empty", ""},
		{"v2 header", "$vellum$v2$aes-256-gcm$AAAA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open([]byte(tt.envelope), []byte("secret"))
			assert.ErrorIs(t, err, verrors.ErrDecryption)
		})
	}
}

func TestOpen_ToleratesSurroundingWhitespace(t *testing.T) {
	got, err := Open([]byte("  JFcf79jPeqbEIkHWTm2MXA==\n"), []byte("secret"))
	require.NoError(t, err)
	assert.Equal(t, "İstanbul", string(got))
}

func TestSealOpen_EmptyPassword(t *testing.T) {
	_, err := Seal([]byte("x"), nil)
	assert.ErrorIs(t, err, verrors.ErrEmptyPassword)

	_, err = Open([]byte("JFcf79jPeqbEIkHWTm2MXA=="), []byte{})
	assert.ErrorIs(t, err, verrors.ErrEmptyPassword)
}

func TestSeal_DoesNotModifyInputs(t *testing.T) {
	plaintext := []byte("keep me")
	password := []byte("secret")

	_, err := Seal(plaintext, password)
	require.NoError(t, err)

	assert.Equal(t, "keep me", string(plaintext))
	assert.Equal(t, "secret", string(password))
}

func TestSeal_OutputIsBase64Text(t *testing.T) {
	envelope, err := Seal([]byte(strings.Repeat("x", 100)), []byte("secret"))
	require.NoError(t, err)

	assert.Equal(t, 0, len(envelope)%4)
	assert.Equal(t, FormatLegacy, Detect(envelope))
}
