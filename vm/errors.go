package vm

import (
	"errors"
	"fmt"
)

// Terminal error kinds (spec §7). All of them consume the remaining gas
// of the current frame and unwind via the orchestrator's revert path.
var (
	ErrOutOfGas            = errors.New("out of gas")
	ErrInvalidOpcode        = errors.New("invalid opcode")
	ErrInvalidJump          = errors.New("invalid jump destination")
	ErrInvalidPush          = errors.New("invalid push: insufficient immediate bytes")
	ErrWriteProtection      = errors.New("write protection: state-changing op in static context")
	ErrOutOfBounds          = errors.New("offset/length out of bounds")
	ErrGasUintOverflow      = errors.New("gas computation overflowed uint64")
	ErrDepth                = errors.New("max call depth exceeded")
	ErrInsufficientBalance  = errors.New("insufficient balance for transfer")
	ErrMaxInitCodeSizeExceeded = errors.New("max initcode size exceeded")
	ErrMaxCodeSizeExceeded     = errors.New("max code size exceeded")
	ErrContractAddressCollision = errors.New("contract address collision")
	ErrExecutionReverted    = errors.New("execution reverted")
	ErrNoCompatibleInterpreter = errors.New("no compatible interpreter")
)

// ErrStackUnderflow reports a pop/peek against too few stack items.
type ErrStackUnderflow struct {
	stackLen int
	required int
}

func (e *ErrStackUnderflow) Error() string {
	return fmt.Sprintf("stack underflow (%d elements, need %d)", e.stackLen, e.required)
}

func (e *ErrStackUnderflow) Is(target error) bool {
	_, ok := target.(*ErrStackUnderflow)
	return ok
}

// ErrStackOverflow reports a push that would exceed stack capacity.
type ErrStackOverflow struct {
	stackLen int
	limit    int
}

func (e *ErrStackOverflow) Error() string {
	return fmt.Sprintf("stack limit reached %d (%d)", e.stackLen, e.limit)
}

func (e *ErrStackOverflow) Is(target error) bool {
	_, ok := target.(*ErrStackOverflow)
	return ok
}

// errStopToken is an internal sentinel used by terminal opcode handlers
// (STOP/RETURN/REVERT/SELFDESTRUCT) to unwind the dispatch loop without
// it being mistaken for a genuine execution error; the interpreter's Run
// strips it before returning.
var errStopToken = errors.New("stop token")
