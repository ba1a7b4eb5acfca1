package evm

import (
	"bytes"
	"testing"

	"github.com/holiman/uint256"
)

func TestPushMinimalLength(t *testing.T) {
	cases := []struct {
		name string
		v    *uint256.Int
		op   byte
		data []byte
	}{
		{"zero", uint256.NewInt(0), opPUSH1, []byte{0x00}},
		{"one-byte", uint256.NewInt(0xff), opPUSH1, []byte{0xff}},
		{"two-byte", uint256.NewInt(0x0100), opPUSH1 + 1, []byte{0x01, 0x00}},
		{"max", new(uint256.Int).Not(uint256.NewInt(0)), opPUSH1 + 31, bytes.Repeat([]byte{0xff}, 32)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCode()
			c.Push(tc.v)
			want := append([]byte{tc.op}, tc.data...)
			if !bytes.Equal(c.Bytes(), want) {
				t.Errorf("Push(%s) = %x, want %x", tc.v, c.Bytes(), want)
			}
		})
	}
}

func TestMinimalBigEndianNeverEmpty(t *testing.T) {
	data := minimalBigEndian(uint256.NewInt(0))
	if len(data) != 1 || data[0] != 0 {
		t.Fatalf("minimalBigEndian(0) = %x, want [0x00]", data)
	}
}

func TestDupSwapIndexing(t *testing.T) {
	c := NewCode()
	c.Dup(0)
	c.Dup(15)
	c.Swap(0)
	c.Swap(15)
	want := []byte{opDUP1, opDUP1 + 15, opSWAP1, opSWAP1 + 15}
	if !bytes.Equal(c.Bytes(), want) {
		t.Errorf("got %x, want %x", c.Bytes(), want)
	}
}

func TestDupSwapOutOfRangePanics(t *testing.T) {
	for _, fn := range []func(){
		func() { NewCode().Dup(16) },
		func() { NewCode().Dup(-1) },
		func() { NewCode().Swap(16) },
		func() { NewCode().Swap(-1) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic")
				}
			}()
			fn()
		}()
	}
}

func TestCodeClone(t *testing.T) {
	c := NewCode()
	c.PushInt(1)
	clone := c.Clone()
	c.PushInt(2)
	if bytes.Equal(c.Bytes(), clone.Bytes()) {
		t.Fatalf("clone shares storage with original")
	}
	if clone.Len() != 2 {
		t.Fatalf("clone.Len() = %d, want 2", clone.Len())
	}
}

func TestPushIntRejectsNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on negative PushInt")
		}
	}()
	NewCode().PushInt(-1)
}
