package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// CallResult is the outcome of a transaction's top-level message call,
// submitted (and possibly resumed) via CallOrContinue.
type CallResult struct {
	ReturnData []byte
	GasLeft    int64
	Reverted   bool
	Err        error

	// Pending is true when a Host round-trip is outstanding. The
	// embedder should resolve it (populating whatever cache the Host
	// implementation consults) and call CallOrContinue again with the
	// same EVM; the transaction resumes from the exact opcode that
	// asked for it.
	Pending bool
}

// CallOrContinue runs p as a transaction's top-level call, or resumes
// the call this EVM previously suspended on a pending Host round-trip
// (spec §5). A zero-value p is ignored on resume.
func (evm *EVM) CallOrContinue(p CallParams) CallResult {
	if evm.suspended != nil {
		return evm.resume()
	}
	return evm.startCall(p)
}

func (evm *EVM) startCall(p CallParams) CallResult {
	if !evm.canTransfer(p.Caller, &p.Value) {
		return CallResult{GasLeft: p.Gas, Err: ErrInsufficientBalance}
	}

	snap := evm.Snapshot()
	if err := evm.transfer(p.Caller, p.Address, &p.Value); err != nil {
		evm.RevertToSnapshot(snap)
		return CallResult{GasLeft: p.Gas, Err: err}
	}

	code, err := evm.GetCode(p.Address)
	if err != nil {
		evm.RevertToSnapshot(snap)
		return CallResult{GasLeft: p.Gas, Err: err}
	}
	code, err = resolveDelegatedCode(code, evm.GetCode)
	if err != nil {
		evm.RevertToSnapshot(snap)
		return CallResult{GasLeft: p.Gas, Err: err}
	}

	frame := NewFrame(code, p.Caller, p.Address, p.Value, p.Input, p.Gas, p.IsStatic, evm.Hardfork, 0)
	evm.Hooks.onEnter(0, CALL, p.Caller, p.Address, p.Input, uint64(p.Gas), nil)
	return evm.runTop(frame, snap)
}

func (evm *EVM) resume() CallResult {
	sc := evm.suspended
	evm.suspended = nil
	evm.PendingRequest = nil
	return evm.runTop(sc.frame, sc.snap)
}

func (evm *EVM) runTop(frame *Frame, snap *stateSnapshot) CallResult {
	in := &Interpreter{evm: evm, table: evm.table}
	out, runErr := in.Run(frame)

	if pend, ok := runErr.(*errHostDataPending); ok {
		evm.PendingRequest = &pend.req
		evm.suspended = &suspendedCall{frame: frame, snap: snap}
		return CallResult{GasLeft: frame.Gas, Pending: true}
	}

	evm.Hooks.onExit(0, out, uint64(frame.Gas), runErr, frame.Reverted)
	frame.Release()

	if frame.Reverted || runErr != nil {
		evm.RevertToSnapshot(snap)
		if runErr != nil && runErr != ErrExecutionReverted {
			return CallResult{GasLeft: frame.Gas, Err: runErr}
		}
		return CallResult{ReturnData: out, GasLeft: frame.Gas, Reverted: true}
	}
	return CallResult{ReturnData: out, GasLeft: frame.Gas}
}

// CreateResult is the outcome of a transaction's top-level contract
// creation.
type CreateResult struct {
	Address    common.Address
	ReturnData []byte
	GasLeft    int64
	Err        error
}

// CreateTop runs a top-level CREATE. Create never reads its callerFrame
// parameter, so a top-level deployment (which has no caller frame)
// passes nil.
func (evm *EVM) CreateTop(caller common.Address, value uint256.Int, gas int64, initCode []byte) CreateResult {
	addr, out, gasLeft, err := evm.Create(nil, caller, value, gas, initCode, nil)
	return CreateResult{Address: addr, ReturnData: out, GasLeft: gasLeft, Err: err}
}
