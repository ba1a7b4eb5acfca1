package evm

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/holiman/uint256"
)

// NewBN254Loader constructs a Loader whose base and scalar moduli are
// BN254's coordinate field p and scalar field q, as reported by
// gnark-crypto.
func NewBN254Loader() *Loader {
	p, overflow := uint256.FromBig(fp.Modulus())
	if overflow {
		panic("evm: bn254 base modulus does not fit in 256 bits")
	}
	q, overflow := uint256.FromBig(fr.Modulus())
	if overflow {
		panic("evm: bn254 scalar modulus does not fit in 256 bits")
	}
	return NewLoader(p, q)
}

// ConstScalarFromFr wraps a gnark-crypto scalar-field element as a
// Constant Scalar, used to load fixed verifying-key scalars (domain
// generators, Lagrange evaluation points, and the like).
func (l *Loader) ConstScalarFromFr(v fr.Element) Scalar {
	b := v.Bytes()
	var u uint256.Int
	u.SetBytes(b[:])
	return l.ConstScalar(&u)
}

// ConstEcPointFromAffine wraps a gnark-crypto BN254 G1 affine point as
// a Constant EcPoint, used to load fixed verifying-key curve points
// (e.g. the SRS's G1 generator or a circuit's selector commitments).
func (l *Loader) ConstEcPointFromAffine(p bn254.G1Affine) EcPoint {
	b := p.RawBytes()
	var x, y uint256.Int
	x.SetBytes(b[:32])
	y.SetBytes(b[32:])
	return l.ConstEcPoint(&x, &y)
}

// G2LimbsFromAffine packs a gnark-crypto BN254 G2 affine point into the
// four-word (x.A1, x.A0, y.A1, y.A0) layout the pairing precompile
// expects for an Fp2 coordinate pair.
func G2LimbsFromAffine(p bn254.G2Affine) [4]*uint256.Int {
	var xa1, xa0, ya1, ya0 uint256.Int
	xb1 := p.X.A1.Bytes()
	xb0 := p.X.A0.Bytes()
	yb1 := p.Y.A1.Bytes()
	yb0 := p.Y.A0.Bytes()
	xa1.SetBytes(xb1[:])
	xa0.SetBytes(xb0[:])
	ya1.SetBytes(yb1[:])
	ya0.SetBytes(yb0[:])
	return [4]*uint256.Int{&xa1, &xa0, &ya1, &ya0}
}
