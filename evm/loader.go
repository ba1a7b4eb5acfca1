package evm

import "github.com/holiman/uint256"

// bn254B is the BN254 curve-equation constant: y^2 = x^3 + b. Fixed
// here because the Loader targets BN254; generalizing to another curve
// would need to take b as a field parameter instead.
const bn254B = 3

// Loader is a single-writer bytecode emitter: every operation on a
// Scalar or EcPoint created through it extends the Code buffer and may
// advance the bump allocator. The Loader is created with two prime
// moduli and moves through NEW -> EMITTING -> FROZEN (on the first call
// to Code); all emission methods assume EMITTING.
type Loader struct {
	baseModulus   *uint256.Int
	scalarModulus *uint256.Int
	code          *Code
	ptr           int

	gasMeteringIDs []string
}

// NewLoader constructs a Loader for the given base (curve coordinate)
// and scalar (discrete-log) field moduli. It writes the four-word
// prelude {1, p, q-1, q} at memory offsets 0x00..0x80 and seeds the
// running success flag with 1 (true) on the stack, so the first
// emitted check can simply AND itself onto it.
func NewLoader(baseModulus, scalarModulus *uint256.Int) *Loader {
	one := uint256.NewInt(1)
	qMinus1 := new(uint256.Int).Sub(scalarModulus, one)

	code := NewCode()
	code.Push(one).PushInt(0x00).MStore()
	code.Push(baseModulus).PushInt(0x20).MStore()
	code.Push(qMinus1).PushInt(0x40).MStore()
	code.Push(scalarModulus).PushInt(0x60).MStore()
	code.PushInt(1)

	return &Loader{
		baseModulus:   baseModulus,
		scalarModulus: scalarModulus,
		code:          code,
		ptr:           0x80,
	}
}

// Allocate bumps the allocation cursor by size bytes and returns the
// pointer just before the bump. size must be a multiple of 0x20;
// pointers are never reclaimed.
func (l *Loader) Allocate(size int) int {
	if size <= 0 || size%0x20 != 0 {
		panic("evm: allocate size must be a positive multiple of 0x20")
	}
	ptr := l.ptr
	l.ptr += size
	return ptr
}

// Code freezes emission and returns the assembled bytecode: the body
// emitted so far, followed by a guarded epilogue that reverts with no
// data if the running success flag (the sole remaining stack value) is
// zero, and stops otherwise. The Loader itself remains usable after
// this call, though calling it again re-derives the epilogue from the
// same body.
//
// dst is the offset of the JUMPDEST, which follows PUSHn dst, JUMPI,
// PUSH1 0, PUSH1 0 and REVERT: 7+n bytes past the body, where n is the
// byte width of dst itself.
func (l *Loader) Code() []byte {
	code := l.code.Clone()
	width := 1
	for code.Len()+7+width >= 1<<(8*width) {
		width++
	}
	dst := code.Len() + 7 + width
	code.PushInt(dst).JumpI().PushInt(0).PushInt(0).Revert().JumpDest().Stop()
	return code.Bytes()
}

func (l *Loader) scalar(v value[*uint256.Int]) Scalar {
	return Scalar{loader: l, value: v}
}

func (l *Loader) ecPoint(v value[point]) EcPoint {
	return EcPoint{loader: l, value: v}
}

// ConstScalar wraps a known 256-bit value, already reduced mod q, as a
// Constant Scalar. The caller is responsible for the [0, q) invariant.
func (l *Loader) ConstScalar(v *uint256.Int) Scalar {
	return l.scalar(constantValue(v))
}

// ConstEcPoint wraps known affine coordinates as a Constant EcPoint.
func (l *Loader) ConstEcPoint(x, y *uint256.Int) EcPoint {
	return l.ecPoint(constantValue(point{x: x, y: y}))
}

// pushScalar emits the minimal code to get s's value onto the stack:
// an immediate push for a Constant, or a pointer push + MLOAD for a
// Memory scalar.
func (l *Loader) pushScalar(s Scalar) {
	if c, ok := s.Constant(); ok {
		l.code.Push(c)
		return
	}
	l.code.PushInt(s.Ptr()).MLoad()
}

// CalldataloadScalar loads a 32-byte word from calldata at offset,
// reduces it mod q, and stores it in a fresh scalar slot.
func (l *Loader) CalldataloadScalar(offset int) Scalar {
	ptr := l.Allocate(0x20)
	l.code.Push(l.scalarModulus).PushInt(offset).CalldataLoad().Mod().PushInt(ptr).MStore()
	return l.scalar(memoryValue[*uint256.Int](ptr))
}

// CalldataloadEcPoint loads native 32-byte (x, y) coordinates from
// calldata at offset and offset+0x20, validates the point, and returns
// it as a Memory EcPoint.
func (l *Loader) CalldataloadEcPoint(offset int) EcPoint {
	ptr := l.Allocate(0x40)
	l.code.
		PushInt(offset).CalldataLoad().Dup(0).PushInt(ptr).MStore().
		PushInt(offset + 0x20).CalldataLoad().Dup(0).PushInt(ptr + 0x20).MStore()
	l.validateEcPoint()
	return l.ecPoint(memoryValue[point](ptr))
}

// CalldataloadEcPointFromLimbs reconstructs (x, y) from limb-decomposed
// calldata: each coordinate is the sum of `limbs` calldata words, word
// i shifted left by i*bits, with x occupying [offset, offset+limbs*0x20)
// and y occupying the following limbs*0x20 bytes.
func (l *Loader) CalldataloadEcPointFromLimbs(offset, limbs, bits int) EcPoint {
	ptr := l.Allocate(0x40)
	coordPtrs := [2]int{ptr, ptr + 0x20}
	coordOffsets := [2]int{offset, offset + limbs*0x20}

	for k := 0; k < 2; k++ {
		for idx := 0; idx < limbs; idx++ {
			if idx == 0 {
				l.code.PushInt(coordOffsets[k]).CalldataLoad()
			} else {
				l.code.PushInt(coordOffsets[k] + idx*0x20).CalldataLoad().
					PushInt(idx * bits).Shl().Add()
			}
		}
		l.code.Dup(0).PushInt(coordPtrs[k]).MStore()
	}

	l.validateEcPoint()
	return l.ecPoint(memoryValue[point](ptr))
}

// validateEcPoint assumes the stack holds [..., success, x, y] (y on
// top) and ANDs `(x < p) && (y < p) && (x != 0 || y != 0) &&
// (y*y == x*x*x + b mod p)` into the running success flag, leaving
// [..., success'].
func (l *Loader) validateEcPoint() {
	p := l.baseModulus
	l.code.
		Push(p).Dup(2).Lt().
		Push(p).Dup(2).Lt().
		And().
		Dup(2).IsZero().
		Dup(2).IsZero().
		And().
		Not().
		And().
		Push(p).Dup(2).Dup(0).MulMod().
		Push(p).PushInt(bn254B).Push(p).Dup(6).Push(p).Dup(1).Dup(0).MulMod().
		MulMod().
		AddMod().
		Eq().
		And().
		Swap(1).Pop().Pop().
		And()
}

// SqueezeChallenge hashes the len bytes at ptr (len > 0, a multiple of
// 0x20) with keccak256 and reduces the result mod q. When len is
// exactly one word and that word is not the most recently allocated
// scratch slot, it is first duplicated into a fresh slot so a 0x01
// domain-separator byte can be appended without disturbing the
// caller's original memory. It returns the pointer to the raw 32-byte
// hash (so it can be fed back into the transcript) and the reduced
// challenge Scalar.
func (l *Loader) SqueezeChallenge(ptr, length int) (hashPtr int, challenge Scalar) {
	if length <= 0 || length%0x20 != 0 {
		panic("evm: squeeze_challenge length must be a positive multiple of 0x20")
	}

	if length == 0x20 {
		if ptr+length != l.ptr {
			ptr = l.DupScalar(l.scalar(memoryValue[*uint256.Int](ptr))).Ptr()
		}
		l.code.PushInt(1).PushInt(ptr + 0x20).MStore8()
		length++
	}

	challengePtr := l.Allocate(0x20)
	hashPtrAddr := l.Allocate(0x20)

	l.code.
		Push(l.scalarModulus).
		PushInt(length).
		PushInt(ptr).
		Keccak256().
		Dup(0).
		PushInt(hashPtrAddr).
		MStore().
		Mod().
		PushInt(challengePtr).
		MStore()

	return hashPtrAddr, l.scalar(memoryValue[*uint256.Int](challengePtr))
}

// CopyScalar emits the code to write s's value into the slot at ptr.
func (l *Loader) CopyScalar(s Scalar, ptr int) {
	if c, ok := s.Constant(); ok {
		l.code.Push(c).PushInt(ptr).MStore()
		return
	}
	l.code.PushInt(s.Ptr()).MLoad().PushInt(ptr).MStore()
}

// DupScalar allocates a fresh scalar slot holding a copy of s.
func (l *Loader) DupScalar(s Scalar) Scalar {
	ptr := l.Allocate(0x20)
	l.CopyScalar(s, ptr)
	return l.scalar(memoryValue[*uint256.Int](ptr))
}

// dupEcPoint allocates a fresh 64-byte slot holding a copy of p.
func (l *Loader) dupEcPoint(p EcPoint) EcPoint {
	ptr := l.Allocate(0x40)
	if x, y, ok := p.Constant(); ok {
		l.code.Push(x).PushInt(ptr).MStore().Push(y).PushInt(ptr + 0x20).MStore()
	} else {
		src := p.Ptr()
		l.code.
			PushInt(src).MLoad().PushInt(ptr).MStore().
			PushInt(src + 0x20).MLoad().PushInt(ptr + 0x20).MStore()
	}
	return l.ecPoint(memoryValue[point](ptr))
}

// staticcall emits a gas-forwarding STATICCALL to precompile with the
// given calldata/returndata pointers (lengths are fixed per
// precompile) and ANDs its 1-bit success return into the running
// success flag.
func (l *Loader) staticcall(precompile Precompiled, cdPtr, rdPtr int) {
	cdLen, rdLen := precompile.lengths()
	l.code.
		PushInt(rdLen).
		PushInt(rdPtr).
		PushInt(cdLen).
		PushInt(cdPtr).
		PushInt(int(precompile)).
		Gas().
		StaticCall().
		And()
}

// invertScalar always emits a BigModExp precompile call with exponent
// q-2 and modulus q; it never folds, even for a Constant operand, since
// computing a modular inverse at emission time would require the
// Loader itself to do field inversion rather than leave it to the
// deployed contract.
func (l *Loader) invertScalar(s Scalar) Scalar {
	rdPtr := l.Allocate(0x20)

	operands := []Scalar{
		l.ConstScalar(uint256.NewInt(0x20)),
		l.ConstScalar(uint256.NewInt(0x20)),
		l.ConstScalar(uint256.NewInt(0x20)),
		s,
		l.ConstScalar(new(uint256.Int).Sub(l.scalarModulus, uint256.NewInt(2))),
		l.ConstScalar(l.scalarModulus),
	}
	cdPtr := -1
	for _, op := range operands {
		p := l.DupScalar(op).Ptr()
		if cdPtr == -1 {
			cdPtr = p
		}
	}

	l.staticcall(BigModExp, cdPtr, rdPtr)
	return l.scalar(memoryValue[*uint256.Int](rdPtr))
}

func (l *Loader) ecPointAdd(lhs, rhs EcPoint) EcPoint {
	rdPtr := l.dupEcPoint(lhs).Ptr()
	l.dupEcPoint(rhs)
	l.staticcall(Bn254Add, rdPtr, rdPtr)
	return l.ecPoint(memoryValue[point](rdPtr))
}

func (l *Loader) ecPointScalarMul(p EcPoint, s Scalar) EcPoint {
	rdPtr := l.dupEcPoint(p).Ptr()
	l.DupScalar(s)
	l.staticcall(Bn254ScalarMul, rdPtr, rdPtr)
	return l.ecPoint(memoryValue[point](rdPtr))
}

// Pairing asserts e(lhs, g2) * e(rhs, minusSG2) == 1 via the two-pair
// pairing precompile and ANDs its result into the running success
// flag. g2 and minusSG2 are packed Fp2 coordinate quadruples, emitted
// as emitter-time immediates; lhs and rhs are duplicated from their
// Memory slots.
func (l *Loader) Pairing(lhs EcPoint, g2 [4]*uint256.Int, rhs EcPoint, minusSG2 [4]*uint256.Int) {
	rdPtr := l.dupEcPoint(lhs).Ptr()
	l.Allocate(0x80)
	l.code.
		Push(g2[0]).PushInt(rdPtr + 0x40).MStore().
		Push(g2[1]).PushInt(rdPtr + 0x60).MStore().
		Push(g2[2]).PushInt(rdPtr + 0x80).MStore().
		Push(g2[3]).PushInt(rdPtr + 0xa0).MStore()

	l.dupEcPoint(rhs)
	l.Allocate(0x80)
	l.code.
		Push(minusSG2[0]).PushInt(rdPtr + 0x100).MStore().
		Push(minusSG2[1]).PushInt(rdPtr + 0x120).MStore().
		Push(minusSG2[2]).PushInt(rdPtr + 0x140).MStore().
		Push(minusSG2[3]).PushInt(rdPtr + 0x160).MStore()

	l.staticcall(Bn254Pairing, rdPtr, rdPtr)
	l.code.PushInt(rdPtr).MLoad().And()
}

func (l *Loader) addScalar(lhs, rhs Scalar) Scalar {
	if a, ok := lhs.Constant(); ok {
		if b, ok := rhs.Constant(); ok {
			out := new(uint256.Int).AddMod(a, b, l.scalarModulus)
			return l.ConstScalar(out)
		}
	}

	ptr := l.Allocate(0x20)
	l.code.Push(l.scalarModulus)
	l.pushScalar(rhs)
	l.pushScalar(lhs)
	l.code.AddMod().PushInt(ptr).MStore()
	return l.scalar(memoryValue[*uint256.Int](ptr))
}

func (l *Loader) subScalar(lhs, rhs Scalar) Scalar {
	if rhs.IsConstant() {
		return l.addScalar(lhs, l.negScalar(rhs))
	}

	ptr := l.Allocate(0x20)
	l.code.Push(l.scalarModulus)
	l.pushScalar(rhs)
	l.code.Push(l.scalarModulus).Sub()
	l.pushScalar(lhs)
	l.code.AddMod().PushInt(ptr).MStore()
	return l.scalar(memoryValue[*uint256.Int](ptr))
}

func (l *Loader) mulScalar(lhs, rhs Scalar) Scalar {
	if a, ok := lhs.Constant(); ok {
		if b, ok := rhs.Constant(); ok {
			out := new(uint256.Int).MulMod(a, b, l.scalarModulus)
			return l.ConstScalar(out)
		}
	}

	ptr := l.Allocate(0x20)
	l.code.Push(l.scalarModulus)
	l.pushScalar(rhs)
	l.pushScalar(lhs)
	l.code.MulMod().PushInt(ptr).MStore()
	return l.scalar(memoryValue[*uint256.Int](ptr))
}

func (l *Loader) negScalar(s Scalar) Scalar {
	if a, ok := s.Constant(); ok {
		// a is always in [0, q); scalarModulus-a stays in (0, q], which
		// is harmless since every later modular op reduces it again.
		out := new(uint256.Int).Sub(l.scalarModulus, a)
		return l.ConstScalar(out)
	}

	ptr := l.Allocate(0x20)
	l.pushScalar(s)
	l.code.Push(l.scalarModulus).Sub().PushInt(ptr).MStore()
	return l.scalar(memoryValue[*uint256.Int](ptr))
}

// BatchInvert overwrites each of scalars (which must be Memory
// scalars) with its modular inverse, using exactly one BigModExp
// precompile call and a Montgomery-style prefix-product sweep. The
// very first scalar's inverse is written directly from the running
// accumulator with no trailing multiplication, since at that point in
// the backward sweep the accumulator already equals that scalar's
// inverse.
func (l *Loader) BatchInvert(scalars []Scalar) {
	n := len(scalars)
	if n == 0 {
		panic("evm: BatchInvert requires at least one scalar")
	}

	products := make([]Scalar, n)
	products[0] = scalars[0]
	for i := 1; i < n; i++ {
		ptr := l.Allocate(0x20)
		products[i] = l.scalar(memoryValue[*uint256.Int](ptr))
	}

	l.code.Push(l.scalarModulus)
	for i := 2; i < n; i++ {
		l.code.Dup(0)
	}

	l.pushScalar(products[0])
	for idx := 1; idx < n; idx++ {
		l.pushScalar(scalars[idx])
		l.code.MulMod()
		if idx < n-1 {
			l.code.Dup(0)
		}
		l.code.PushInt(products[idx].Ptr()).MStore()
	}

	inv := l.invertScalar(products[n-1])

	l.code.Push(l.scalarModulus)
	for i := 2; i < n; i++ {
		l.code.Dup(0)
	}
	l.pushScalar(inv)

	for i := n - 1; i >= 0; i-- {
		v := scalars[i]
		if i >= 1 {
			prod := products[i-1]
			l.pushScalar(v)
			l.code.
				Dup(2).
				Dup(2).
				PushInt(prod.Ptr()).
				MLoad().
				MulMod().
				PushInt(v.Ptr()).
				MStore().
				MulMod()
		} else {
			l.code.PushInt(v.Ptr()).MStore()
		}
	}
}

// startCostMetering and endCostMetering instrument the emitted code
// with a GAS/LOG1 bracket around the operations run in between. This
// is a test-only facility for measuring the gas cost of a sequence of
// emitted operations; it is unexported and has no production entry
// point, reached by tests through export_test.go.
func (l *Loader) startCostMetering(identifier string) {
	l.gasMeteringIDs = append(l.gasMeteringIDs, identifier)
	l.code.Gas().Swap(0)
}

func (l *Loader) endCostMetering() {
	l.code.
		Swap(0).
		PushInt(9).
		Gas().
		Swap(1).
		Sub().
		Sub().
		PushInt(0).
		PushInt(0).
		Log1()
}

// meteredGasIDs returns the identifiers passed to startCostMetering,
// in order, so tests can correlate LOG1 topics back to them.
func (l *Loader) meteredGasIDs() []string {
	return l.gasMeteringIDs
}
