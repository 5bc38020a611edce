package randutil

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/big"
	"math/rand/v2"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// NewRand returns a ChaCha8 source expanded from a 64-bit seed.
func NewRand(seed uint64) *rand.Rand {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:8], seed)
	binary.LittleEndian.PutUint64(s[8:16], seed^0x9e3779b97f4a7c15)
	return rand.New(rand.NewChaCha8(s))
}

// NewEntropyRand seeds a source from crypto/rand. The seed is returned so a
// run can be replayed with NewRand.
func NewEntropyRand() (*rand.Rand, uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, 0, err
	}
	seed := binary.LittleEndian.Uint64(b[:])
	return NewRand(seed), seed, nil
}

// Derive returns an independent child source seeded from rng.
func Derive(rng *rand.Rand) *rand.Rand {
	var s [32]byte
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(s[i*8:], rng.Uint64())
	}
	return rand.New(rand.NewChaCha8(s))
}

// topMask clears the bits above fr.Bits in the most significant byte.
var topMask = byte(0xff >> (fr.Bytes*8 - fr.Bits))

// RandomScalar draws a uniform element of fr by rejection sampling.
func RandomScalar(rng *rand.Rand) fr.Element {
	var buf [fr.Bytes]byte
	for {
		for i := 0; i < fr.Bytes; i += 8 {
			binary.LittleEndian.PutUint64(buf[i:], rng.Uint64())
		}
		buf[fr.Bytes-1] &= topMask
		// rejects values >= modulus
		e, err := fr.LittleEndian.Element(&buf)
		if err == nil {
			return e
		}
	}
}

func RandomScalars(rng *rand.Rand, n int) []fr.Element {
	if n <= 0 {
		return []fr.Element{}
	}
	res := make([]fr.Element, n)
	for i := range res {
		res[i] = RandomScalar(rng)
	}
	return res
}

var g1Gen bls12377.G1Jac

func init() {
	g1Gen, _, _, _ = bls12377.Generators()
}

// RandomPointJac returns k*G for a random non-zero k, in Jacobian form.
func RandomPointJac(rng *rand.Rand) bls12377.G1Jac {
	k := RandomScalar(rng)
	for k.IsZero() {
		k = RandomScalar(rng)
	}
	var p bls12377.G1Jac
	p.ScalarMultiplication(&g1Gen, k.BigInt(new(big.Int)))
	return p
}
