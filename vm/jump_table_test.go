package vm

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

func TestHardforkGatedOpcodesAbsentBeforeIntroduction(t *testing.T) {
	cases := []struct {
		op   OpCode
		fork Hardfork
	}{
		{PUSH0, Frontier},
		{PUSH0, Byzantium},
		{TLOAD, London},
		{TSTORE, Shanghai},
		{SELFBALANCE, Byzantium},
		{BASEFEE, Istanbul},
	}
	for _, c := range cases {
		table := newJumpTable(c.fork)
		if table[c.op] != nil {
			t.Errorf("%v must not be wired at %v", c.op, c.fork)
		}
	}
}

func TestHardforkGatedOpcodesPresentAtAndAfterIntroduction(t *testing.T) {
	cases := []struct {
		op   OpCode
		fork Hardfork
	}{
		{PUSH0, Shanghai},
		{PUSH0, Prague},
		{TLOAD, Cancun},
		{TSTORE, Prague},
		{SELFBALANCE, Istanbul},
		{BASEFEE, London},
		{CREATE2, Constantinople},
	}
	for _, c := range cases {
		table := newJumpTable(c.fork)
		if table[c.op] == nil {
			t.Errorf("%v must be wired at %v", c.op, c.fork)
		}
	}
}

func TestFrontierTableHasCoreArithmeticButNoLaterOpcodes(t *testing.T) {
	table := newJumpTable(Frontier)
	if table[ADD] == nil {
		t.Fatal("ADD must exist from Frontier")
	}
	if table[DELEGATECALL] != nil {
		t.Fatal("DELEGATECALL must not exist before Homestead")
	}
	if table[REVERT] != nil {
		t.Fatal("REVERT must not exist before Byzantium")
	}
}

// TestInvalidOpcodeFaults checks an opcode byte with no wiring at the
// active fork faults with ErrInvalidOpcode rather than panicking or
// silently behaving as STOP.
func TestInvalidOpcodeFaults(t *testing.T) {
	evm := newTestEVM() // Prague
	in := &Interpreter{evm: evm, table: evm.table}

	// 0x0C is unassigned at every fork.
	frame := NewFrame([]byte{0x0C}, common.Address{}, common.Address{}, uint256.Int{}, nil, 100_000, false, Prague, 0)
	defer frame.Release()

	_, err := in.Run(frame)
	if err != ErrInvalidOpcode {
		t.Fatalf("err = %v, want ErrInvalidOpcode", err)
	}
}
