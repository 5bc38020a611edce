package msm

import (
	"math/big"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
)

// NaiveEngine computes sum_i scalars[i] * points[i] in the simplest way.
type NaiveEngine struct{}

func (NaiveEngine) Name() string { return "naive" }

func (NaiveEngine) Init(points []bls12377.G1Affine) (*Context, error) {
	return newContext(points), nil
}

func (NaiveEngine) Compute(ctx *Context, points []bls12377.G1Affine, scalars []Scalar) (bls12377.G1Affine, error) {
	pts, sc, err := ctx.load(points, scalars)
	if err != nil {
		return bls12377.G1Affine{}, err
	}

	var accJ bls12377.G1Jac
	var k big.Int
	for i := range pts {
		var termJ bls12377.G1Jac
		termJ.FromAffine(&pts[i])
		termJ.ScalarMultiplication(&termJ, sc[i].BigInt(&k))
		accJ.AddAssign(&termJ)
	}

	var out bls12377.G1Affine
	out.FromJacobian(&accJ)
	return out, nil
}
