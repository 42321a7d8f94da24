package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Frame is one activation record: a bytecode cursor plus the local
// stack/memory/gas/flags for a single CALL/CREATE level. Owned by the
// orchestrator's frame stack; its lifetime ends when that level is
// popped (spec §3).
type Frame struct {
	Code *Bytecode
	PC   uint64
	Gas  int64

	Stack  *Stack
	Memory *Memory

	Caller common.Address
	Self   common.Address
	Value  uint256.Int

	CallData   []byte
	ReturnData []byte // last inner call's return data, visible to RETURNDATA*
	Output     []byte // this frame's own RETURN/REVERT payload

	Reverted bool
	Stopped  bool
	IsStatic bool

	Hardfork Hardfork

	depth int // nesting depth of this frame, for tracer hooks
}

// NewFrame constructs a fresh activation record with its own stack and
// memory, ready to run from PC 0.
func NewFrame(code []byte, caller, self common.Address, value uint256.Int, calldata []byte, gas int64, isStatic bool, fork Hardfork, depth int) *Frame {
	return &Frame{
		Code:     NewBytecode(code),
		Stack:    newstack(),
		Memory:   NewMemory(),
		Caller:   caller,
		Self:     self,
		Value:    value,
		CallData: calldata,
		Gas:      gas,
		IsStatic: isStatic,
		Hardfork: fork,
		depth:    depth,
	}
}

// Release returns the frame's stack to the shared pool. Call once the
// frame is popped and its result has been consumed.
func (f *Frame) Release() {
	if f.Stack != nil {
		returnStack(f.Stack)
		f.Stack = nil
	}
}

// UseGas attempts to deduct cost from the frame's remaining gas,
// reporting whether it had enough. No partial deduction ever happens:
// either the full cost is charged or none of it is (spec §4.6's "no
// observable state change on OutOfGas").
func (f *Frame) UseGas(cost uint64) bool {
	if f.Gas < 0 || uint64(f.Gas) < cost {
		return false
	}
	f.Gas -= int64(cost)
	return true
}
