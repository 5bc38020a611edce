// Package msm is the boundary to the multi-scalar-multiplication engines:
// sum_i scalars[i] * points[i] over BLS12-377 G1.
package msm

import (
	"errors"
	"fmt"
	"strings"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

var (
	ErrLenMismatch        = errors.New("points must cover every scalar")
	ErrContextMismatch    = errors.New("scalars exceed the context size")
	ErrNonCanonicalScalar = errors.New("scalar is not below the field modulus")
	ErrUnknownEngine      = errors.New("unknown msm engine")
)

// Engine computes an MSM against a point set prepared once by Init.
//
// Compute requires len(points) >= len(scalars); extra points are ignored.
type Engine interface {
	Name() string
	Init(points []bls12377.G1Affine) (*Context, error)
	Compute(ctx *Context, points []bls12377.G1Affine, scalars []Scalar) (bls12377.G1Affine, error)
}

// Context is engine-owned state derived from a point set. It is reused
// across Compute calls and must not be shared between goroutines.
type Context struct {
	n       int
	scalars []fr.Element
}

// newContext sizes the scalar buffer up front so Compute never allocates.
func newContext(points []bls12377.G1Affine) *Context {
	return &Context{n: len(points), scalars: make([]fr.Element, len(points))}
}

// Len returns the number of points the context was built for.
func (c *Context) Len() int { return c.n }

// load validates the inputs and converts scalars into the context buffer.
func (c *Context) load(points []bls12377.G1Affine, scalars []Scalar) ([]bls12377.G1Affine, []fr.Element, error) {
	if c == nil {
		return nil, nil, errors.New("msm: nil context")
	}
	if len(scalars) > c.n {
		return nil, nil, fmt.Errorf("%w: %d scalars, context holds %d points", ErrContextMismatch, len(scalars), c.n)
	}
	if len(points) < len(scalars) {
		return nil, nil, fmt.Errorf("%w: %d points, %d scalars", ErrLenMismatch, len(points), len(scalars))
	}
	buf := c.scalars[:len(scalars)]
	for i := range scalars {
		e, err := scalars[i].Element()
		if err != nil {
			return nil, nil, fmt.Errorf("scalar %d: %w", i, err)
		}
		buf[i] = e
	}
	return points[:len(scalars)], buf, nil
}

// Lookup returns the engine registered under name.
func Lookup(name string, nbTasks int) (Engine, error) {
	switch strings.ToLower(name) {
	case "", "multiexp":
		return MultiExpEngine{NbTasks: nbTasks}, nil
	case "naive":
		return NaiveEngine{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
}
