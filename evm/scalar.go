package evm

import "github.com/holiman/uint256"

// Scalar is a symbolic element of the scalar field: either a Constant
// known when the code is emitted, or a Memory pointer to a 32-byte slot
// that will hold the value at execution time. Every Scalar carries a
// reference back to the Loader that created it; Loader operations are
// the only way to combine Scalars, since Go has no operator overloading
// and these operations are exposed as methods instead.
type Scalar struct {
	loader *Loader
	value  value[*uint256.Int]
}

// IsConstant reports whether s is a compile-time constant.
func (s Scalar) IsConstant() bool {
	return s.value.isConstant()
}

// Ptr returns s's memory pointer. It panics if s is a Constant; taking
// the pointer of a constant is a programmer error, never a runtime
// condition.
func (s Scalar) Ptr() int {
	if s.value.isConstant() {
		panic("evm: Ptr() called on a constant Scalar")
	}
	return s.value.ptr
}

// Constant returns s's constant value and true, or (nil, false) if s is
// a Memory scalar.
func (s Scalar) Constant() (*uint256.Int, bool) {
	if !s.value.isConstant() {
		return nil, false
	}
	return s.value.constant, true
}

// Add returns s + other mod q, folding to a Constant when both operands
// are constants.
func (s Scalar) Add(other Scalar) Scalar { return s.loader.addScalar(s, other) }

// Sub returns s - other mod q.
func (s Scalar) Sub(other Scalar) Scalar { return s.loader.subScalar(s, other) }

// Mul returns s * other mod q.
func (s Scalar) Mul(other Scalar) Scalar { return s.loader.mulScalar(s, other) }

// Neg returns -s mod q.
func (s Scalar) Neg() Scalar { return s.loader.negScalar(s) }

// Invert returns s^-1 mod q, always emitting a bigModExp precompile
// call; it is never constant-folded, even when s is itself constant.
func (s Scalar) Invert() Scalar { return s.loader.invertScalar(s) }

// Square returns s * s mod q.
func (s Scalar) Square() Scalar { return s.Mul(s) }

// PowConst returns s raised to the constant non-negative exponent e,
// mod q, by e-1 repeated multiplications via Mul.
func (s Scalar) PowConst(e uint64) Scalar {
	if e == 0 {
		return s.loader.ConstScalar(uint256.NewInt(1))
	}
	result := s
	for i := uint64(1); i < e; i++ {
		result = result.Mul(s)
	}
	return result
}

// Powers returns [s^0, s^1, ..., s^(n-1)].
func (s Scalar) Powers(n int) []Scalar {
	if n <= 0 {
		return nil
	}
	powers := make([]Scalar, n)
	powers[0] = s.loader.ConstScalar(uint256.NewInt(1))
	for i := 1; i < n; i++ {
		powers[i] = powers[i-1].Mul(s)
	}
	return powers
}
