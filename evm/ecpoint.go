package evm

import "github.com/holiman/uint256"

// point is the constant-form payload of an EcPoint: affine (x, y)
// coordinates in the base field.
type point struct {
	x, y *uint256.Int
}

// EcPoint is a symbolic point on the curve: either a Constant (known at
// emission time) or a Memory pointer to a 64-byte (x, y) pair, x at ptr
// and y at ptr+0x20.
type EcPoint struct {
	loader *Loader
	value  value[point]
}

// IsConstant reports whether p is a compile-time constant.
func (p EcPoint) IsConstant() bool {
	return p.value.isConstant()
}

// Ptr returns p's memory pointer (to the 64-byte (x, y) pair). Panics
// if p is a Constant.
func (p EcPoint) Ptr() int {
	if p.value.isConstant() {
		panic("evm: Ptr() called on a constant EcPoint")
	}
	return p.value.ptr
}

// Constant returns p's constant (x, y) coordinates and true, or
// (zero, zero, false) if p is a Memory point.
func (p EcPoint) Constant() (x, y *uint256.Int, ok bool) {
	if !p.value.isConstant() {
		return nil, nil, false
	}
	return p.value.constant.x, p.value.constant.y, true
}

// Add returns p + other, via the Bn254Add precompile.
func (p EcPoint) Add(other EcPoint) EcPoint { return p.loader.ecPointAdd(p, other) }

// ScalarMul returns s * p, always via one Bn254ScalarMul precompile
// call, even when s is the constant 1 (only MultiScalarMul skips that
// case).
func (p EcPoint) ScalarMul(s Scalar) EcPoint { return p.loader.ecPointScalarMul(p, s) }

// ScalarPair is one (scalar, point) term of a multi-scalar
// multiplication.
type ScalarPair struct {
	Scalar Scalar
	Point  EcPoint
}

// MultiScalarMul returns sum(s_i * P_i) for pairs, skipping the scalar
// multiplication for any pair whose scalar is the constant 1. pairs
// must be non-empty.
func MultiScalarMul(pairs []ScalarPair) EcPoint {
	if len(pairs) == 0 {
		panic("evm: MultiScalarMul requires at least one pair")
	}
	terms := make([]EcPoint, len(pairs))
	for i, pr := range pairs {
		if c, ok := pr.Scalar.Constant(); ok && c.Eq(uint256.NewInt(1)) {
			terms[i] = pr.Point
		} else {
			terms[i] = pr.Point.ScalarMul(pr.Scalar)
		}
	}
	acc := terms[0]
	for _, t := range terms[1:] {
		acc = acc.Add(t)
	}
	return acc
}
