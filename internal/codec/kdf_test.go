package codec

import (
	"encoding/hex"
	"testing"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_KnownAnswer(t *testing.T) {
	km, err := DeriveKey([]byte("secret"), []byte(DocumentContext))
	require.NoError(t, err)

	assert.Equal(t, "aedad74c289070b350ba85b04e79ed75a82f92b5897a7b3a53f524656840e940", hex.EncodeToString(km.Key))
	assert.Equal(t, "2bb80d537b1da3e38bd30361aa855686", hex.EncodeToString(km.IV))
}

func TestDeriveKey_Deterministic(t *testing.T) {
	a, err := DeriveKey([]byte("pässwörd"), []byte(DocumentContext))
	require.NoError(t, err)
	b, err := DeriveKey([]byte("pässwörd"), []byte(DocumentContext))
	require.NoError(t, err)

	assert.Equal(t, a.Key, b.Key)
	assert.Equal(t, a.IV, b.IV)
	assert.Len(t, a.Key, KeySize)
	assert.Len(t, a.IV, IVSize)
}

func TestDeriveKey_ContextSeparation(t *testing.T) {
	doc, err := DeriveKey([]byte("secret"), []byte(DocumentContext))
	require.NoError(t, err)
	empty, err := DeriveKey([]byte("secret"), nil)
	require.NoError(t, err)
	other, err := DeriveKey([]byte("secret"), []byte("export"))
	require.NoError(t, err)

	assert.Equal(t, doc.Key, empty.Key, "empty context falls back to the document salt")
	assert.NotEqual(t, doc.Key, other.Key)
	assert.Equal(t, doc.IV, other.IV, "the IV depends on the password only")
}

func TestDeriver_Misconfigured(t *testing.T) {
	tests := []struct {
		name string
		d    Deriver
	}{
		{"no salt", Deriver{Iterations: 10}},
		{"no iterations", Deriver{Salt: []byte("salt")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.d.Derive([]byte("pw"), nil)
			assert.ErrorIs(t, err, verrors.ErrKeyDerivation)
		})
	}
}

func TestKeyMaterial_Wipe(t *testing.T) {
	km, err := Deriver{Salt: []byte("salt"), Iterations: 1}.Derive([]byte("pw"), nil)
	require.NoError(t, err)

	km.Wipe()
	assert.Equal(t, make([]byte, KeySize), km.Key)
	assert.Equal(t, make([]byte, IVSize), km.IV)

	var nilMaterial *KeyMaterial
	assert.NotPanics(t, nilMaterial.Wipe)
}
