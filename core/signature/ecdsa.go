package signature

import (
	"encoding/asn1"
	"fmt"
	"math/big"
)

// asn1EcdsaSignature mirrors the SEQUENCE { r INTEGER, s INTEGER } DER
// shape ECDSA verifiers expect.
type asn1EcdsaSignature struct {
	R, S *big.Int
}

// normalizeECDSASignature converts sig to DER if it looks like a raw
// IEEE P-1363 r||s pair (length == 2*curveByteSize); a signature that is
// already DER-encoded (starts with the SEQUENCE tag 0x30) passes through
// unchanged.
func normalizeECDSASignature(sig []byte, curveByteSize int) ([]byte, error) {
	if len(sig) > 0 && sig[0] == 0x30 {
		return sig, nil
	}
	if len(sig) != 2*curveByteSize {
		return nil, fmt.Errorf("signature: ECDSA signature length %d does not match raw (%d) or DER form", len(sig), 2*curveByteSize)
	}

	r := new(big.Int).SetBytes(sig[:curveByteSize])
	s := new(big.Int).SetBytes(sig[curveByteSize:])

	der, err := asn1.Marshal(asn1EcdsaSignature{R: r, S: s})
	if err != nil {
		return nil, fmt.Errorf("signature: encode ECDSA signature as DER: %w", err)
	}
	return der, nil
}
