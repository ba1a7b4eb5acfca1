// Package evm lowers symbolic scalar-field and elliptic-curve-point
// operations into EVM-style stack-machine bytecode that verifies a
// pairing-based proof against calldata and halts with STOP on success or
// REVERT(0,0) on failure.
//
// The central type is Loader: it owns an append-only Code buffer and a
// bump allocator over the emitted contract's linear memory. Scalar and
// EcPoint are symbolic values tied to a Loader; every arithmetic or
// curve operation on them either folds to a Constant at emission time or
// allocates a Memory slot and appends the instructions that compute it.
//
// No code emitted by this package is ever executed here: correctness is
// established structurally (at emission time) and by unit tests that
// check the byte sequence and allocator bookkeeping, not by running an
// EVM.
package evm
