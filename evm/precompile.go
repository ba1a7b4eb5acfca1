package evm

// Precompiled identifies one of the fixed-address EVM precompiles the
// Loader calls into. The Loader only wires addresses and calldata/
// returndata lengths; the precompile semantics are the host's.
type Precompiled uint64

const (
	// BigModExp computes base^exp mod m; used for modular inversion
	// (exponent q-2) and nowhere else.
	BigModExp Precompiled = 0x05
	// Bn254Add computes the sum of two G1 points.
	Bn254Add Precompiled = 0x06
	// Bn254ScalarMul computes a scalar multiple of a G1 point.
	Bn254ScalarMul Precompiled = 0x07
	// Bn254Pairing checks a product of pairings against the identity.
	Bn254Pairing Precompiled = 0x08
)

// lengths returns the fixed calldata/returndata lengths (cdLen, rdLen),
// in bytes, that the host precompile expects/produces for p. Panics on an
// unrecognized precompile, which would be a programmer error.
func (p Precompiled) lengths() (cdLen, rdLen int) {
	switch p {
	case BigModExp:
		return 0xc0, 0x20
	case Bn254Add:
		return 0x80, 0x40
	case Bn254ScalarMul:
		return 0x60, 0x40
	case Bn254Pairing:
		return 0x180, 0x20
	default:
		panic("evm: unrecognized precompile")
	}
}
