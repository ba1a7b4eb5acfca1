package evm

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestMultiScalarMulSkipsConstantOne(t *testing.T) {
	l := NewBN254Loader()
	p0 := l.CalldataloadEcPoint(0x04)
	p1 := l.CalldataloadEcPoint(0x44)
	s1 := l.CalldataloadScalar(0x84)

	before := snapshotBuf(l)
	MultiScalarMul([]ScalarPair{
		{Scalar: l.ConstScalar(uint256.NewInt(1)), Point: p0},
		{Scalar: s1, Point: p1},
	})
	after := snapshotBuf(l)
	body := after[len(before):]

	if got := countSubsequence(body, precompileCallPattern(Bn254ScalarMul)); got != 1 {
		t.Errorf("expected exactly 1 Bn254ScalarMul call (the other pair's scalar is 1), got %d", got)
	}
	if got := countSubsequence(body, precompileCallPattern(Bn254Add)); got != 1 {
		t.Errorf("expected exactly 1 Bn254Add call reducing the two terms, got %d", got)
	}
}

func TestMultiScalarMulRejectsEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on empty MultiScalarMul")
		}
	}()
	MultiScalarMul(nil)
}

func TestEcPointPtrPanicsOnConstant(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic")
		}
	}()
	l := NewBN254Loader()
	l.ConstEcPoint(uint256.NewInt(1), uint256.NewInt(2)).Ptr()
}

func TestEcPointConstant(t *testing.T) {
	l := NewBN254Loader()
	x, y := uint256.NewInt(1), uint256.NewInt(2)
	p := l.ConstEcPoint(x, y)

	gotX, gotY, ok := p.Constant()
	if !ok || !gotX.Eq(x) || !gotY.Eq(y) {
		t.Errorf("Constant() = (%v, %v, %v), want (%v, %v, true)", gotX, gotY, ok, x, y)
	}
}
