package msm

import (
	"encoding/binary"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// Scalar is the engine-side scalar: the canonical (non-Montgomery) value as
// little-endian 64-bit limbs.
type Scalar [fr.Limbs]uint64

// ScalarFromElement exports the canonical limbs of e.
func ScalarFromElement(e *fr.Element) Scalar {
	return Scalar(e.Bits())
}

func ScalarsFromElements(in []fr.Element) []Scalar {
	out := make([]Scalar, len(in))
	for i := range in {
		out[i] = ScalarFromElement(&in[i])
	}
	return out
}

// Element converts s back into a field element. Values not below the field
// modulus are rejected with ErrNonCanonicalScalar.
func (s Scalar) Element() (fr.Element, error) {
	var buf [fr.Bytes]byte
	for i, limb := range s {
		binary.LittleEndian.PutUint64(buf[i*8:], limb)
	}
	e, err := fr.LittleEndian.Element(&buf)
	if err != nil {
		return fr.Element{}, fmt.Errorf("%w: %v", ErrNonCanonicalScalar, err)
	}
	return e, nil
}
