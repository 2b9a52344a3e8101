package signature

import (
	"encoding/asn1"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeECDSASignature_PassesThroughDER(t *testing.T) {
	t.Parallel()

	der, err := asn1.Marshal(asn1EcdsaSignature{R: big.NewInt(1), S: big.NewInt(2)})
	require.NoError(t, err)

	out, err := normalizeECDSASignature(der, 32)
	require.NoError(t, err)
	assert.Equal(t, der, out)
}

func TestNormalizeECDSASignature_ConvertsRawP1363(t *testing.T) {
	t.Parallel()

	raw := make([]byte, 64)
	raw[31] = 1 // r = 1
	raw[63] = 2 // s = 2

	out, err := normalizeECDSASignature(raw, 32)
	require.NoError(t, err)
	assert.Equal(t, byte(0x30), out[0])
}

func TestNormalizeECDSASignature_RejectsWrongLength(t *testing.T) {
	t.Parallel()

	_, err := normalizeECDSASignature(make([]byte, 10), 32)
	assert.Error(t, err)
}
