package evm

import "github.com/holiman/uint256"

// Opcodes of the stack machine this package targets, limited to the set
// the Loader ever emits.
const (
	opSTOP         byte = 0x00
	opADD          byte = 0x01
	opMUL          byte = 0x02
	opSUB          byte = 0x03
	opMOD          byte = 0x06
	opADDMOD       byte = 0x08
	opMULMOD       byte = 0x09
	opLT           byte = 0x10
	opEQ           byte = 0x14
	opISZERO       byte = 0x15
	opAND          byte = 0x16
	opOR           byte = 0x17
	opNOT          byte = 0x19
	opSHL          byte = 0x1b
	opKECCAK256    byte = 0x20
	opCALLDATALOAD byte = 0x35
	opPOP          byte = 0x50
	opMLOAD        byte = 0x51
	opMSTORE       byte = 0x52
	opMSTORE8      byte = 0x53
	opJUMPI        byte = 0x57
	opJUMPDEST     byte = 0x5b
	opPUSH1        byte = 0x60
	opDUP1         byte = 0x80
	opSWAP1        byte = 0x90
	opLOG1         byte = 0xa1
	opGAS          byte = 0x5a
	opSTATICCALL   byte = 0xfa
	opREVERT       byte = 0xfd
)

// Code is an append-only byte stream with a typed emitter for every
// opcode the Loader uses. Every emitter method is chainable and
// side-effects the buffer, so a sequence of emits reads as one
// fluent call chain.
type Code struct {
	buf []byte
}

// NewCode returns an empty Code buffer.
func NewCode() *Code {
	return &Code{}
}

// Len returns the current byte length of the buffer, used to compute
// jump targets.
func (c *Code) Len() int {
	return len(c.buf)
}

// Bytes returns the accumulated byte sequence. The caller must not
// mutate it.
func (c *Code) Bytes() []byte {
	return c.buf
}

// Clone returns an independent copy of c.
func (c *Code) Clone() *Code {
	out := make([]byte, len(c.buf))
	copy(out, c.buf)
	return &Code{buf: out}
}

func (c *Code) emit(b ...byte) *Code {
	c.buf = append(c.buf, b...)
	return c
}

// minimalBigEndian returns v's big-endian representation with leading
// zero bytes stripped, except the zero value is represented as a single
// zero byte (push immediates are always 1..32 bytes, never 0).
func minimalBigEndian(v *uint256.Int) []byte {
	b := v.Bytes32()
	i := 0
	for i < 31 && b[i] == 0 {
		i++
	}
	return b[i:]
}

// Push emits the minimal-length immediate push for v: PUSH1..PUSH32
// depending on how many bytes v's big-endian encoding needs (1..32).
func (c *Code) Push(v *uint256.Int) *Code {
	data := minimalBigEndian(v)
	if len(data) == 0 || len(data) > 32 {
		panic("evm: push immediate must be 1..32 bytes")
	}
	c.emit(opPUSH1 + byte(len(data)-1))
	return c.emit(data...)
}

// PushInt is a convenience wrapper over Push for small non-negative
// immediates (pointers, lengths, precompile addresses).
func (c *Code) PushInt(n int) *Code {
	if n < 0 {
		panic("evm: PushInt requires a non-negative value")
	}
	return c.Push(uint256.NewInt(uint64(n)))
}

// Dup emits DUP(n+1): it duplicates the stack item n slots below the
// top (Dup(0) duplicates the top item itself).
func (c *Code) Dup(n int) *Code {
	if n < 0 || n > 15 {
		panic("evm: dup index out of range")
	}
	return c.emit(opDUP1 + byte(n))
}

// Swap emits SWAP(n+1): it swaps the top stack item with the one n+1
// slots below it (Swap(0) swaps the top two items).
func (c *Code) Swap(n int) *Code {
	if n < 0 || n > 15 {
		panic("evm: swap index out of range")
	}
	return c.emit(opSWAP1 + byte(n))
}

func (c *Code) Pop() *Code           { return c.emit(opPOP) }
func (c *Code) MLoad() *Code         { return c.emit(opMLOAD) }
func (c *Code) MStore() *Code        { return c.emit(opMSTORE) }
func (c *Code) MStore8() *Code       { return c.emit(opMSTORE8) }
func (c *Code) Add() *Code           { return c.emit(opADD) }
func (c *Code) Sub() *Code           { return c.emit(opSUB) }
func (c *Code) Mul() *Code           { return c.emit(opMUL) }
func (c *Code) Mod() *Code           { return c.emit(opMOD) }
func (c *Code) AddMod() *Code        { return c.emit(opADDMOD) }
func (c *Code) MulMod() *Code        { return c.emit(opMULMOD) }
func (c *Code) Lt() *Code            { return c.emit(opLT) }
func (c *Code) Eq() *Code            { return c.emit(opEQ) }
func (c *Code) And() *Code           { return c.emit(opAND) }
func (c *Code) Or() *Code            { return c.emit(opOR) }
func (c *Code) Not() *Code           { return c.emit(opNOT) }
func (c *Code) IsZero() *Code        { return c.emit(opISZERO) }
func (c *Code) Shl() *Code           { return c.emit(opSHL) }
func (c *Code) CalldataLoad() *Code  { return c.emit(opCALLDATALOAD) }
func (c *Code) Keccak256() *Code     { return c.emit(opKECCAK256) }
func (c *Code) Gas() *Code           { return c.emit(opGAS) }
func (c *Code) StaticCall() *Code    { return c.emit(opSTATICCALL) }
func (c *Code) JumpI() *Code         { return c.emit(opJUMPI) }
func (c *Code) JumpDest() *Code      { return c.emit(opJUMPDEST) }
func (c *Code) Revert() *Code        { return c.emit(opREVERT) }
func (c *Code) Stop() *Code          { return c.emit(opSTOP) }
func (c *Code) Log1() *Code          { return c.emit(opLOG1) }
