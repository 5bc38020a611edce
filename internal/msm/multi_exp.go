package msm

import (
	"github.com/consensys/gnark-crypto/ecc"
	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
)

// MultiExpEngine runs gnark-crypto's bucket-method MultiExp.
// NbTasks <= 0 lets gnark-crypto pick the number of goroutines.
type MultiExpEngine struct {
	NbTasks int
}

func (MultiExpEngine) Name() string { return "multiexp" }

func (MultiExpEngine) Init(points []bls12377.G1Affine) (*Context, error) {
	return newContext(points), nil
}

func (e MultiExpEngine) Compute(ctx *Context, points []bls12377.G1Affine, scalars []Scalar) (bls12377.G1Affine, error) {
	pts, sc, err := ctx.load(points, scalars)
	if err != nil {
		return bls12377.G1Affine{}, err
	}
	if len(sc) == 0 {
		return bls12377.G1Affine{}, nil
	}

	cfg := ecc.MultiExpConfig{}
	if e.NbTasks > 0 {
		cfg.NbTasks = e.NbTasks
	}
	var acc bls12377.G1Jac
	if _, err := acc.MultiExp(pts, sc, cfg); err != nil {
		return bls12377.G1Affine{}, err
	}

	var out bls12377.G1Affine
	out.FromJacobian(&acc)
	return out, nil
}
