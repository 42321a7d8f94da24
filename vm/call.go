package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// maxCallDepth is the deepest a CALL/CREATE chain may nest before the
// orchestrator refuses to go further (spec §4.8).
const maxCallDepth = 1024

// CallKind distinguishes the four message-call opcodes; CREATE/CREATE2
// go through Create instead, which shares the same frame machinery.
type CallKind int

const (
	CallKindCall CallKind = iota
	CallKindCallCode
	CallKindDelegateCall
	CallKindStaticCall
)

// CallParams describes one CALL/CALLCODE/DELEGATECALL/STATICCALL.
type CallParams struct {
	Kind     CallKind
	Caller   common.Address
	Address  common.Address
	Value    uint256.Int
	Input    []byte
	Gas      int64
	IsStatic bool
}

func (evm *EVM) canTransfer(addr common.Address, amount *uint256.Int) bool {
	if amount.IsZero() {
		return true
	}
	balance, err := evm.GetBalance(addr)
	if err != nil {
		return false
	}
	return !balance.Lt(amount)
}

func (evm *EVM) transfer(from, to common.Address, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	fromBal, err := evm.GetBalance(from)
	if err != nil {
		return err
	}
	fromBal.Sub(&fromBal, amount)
	if err := evm.SetBalance(from, fromBal); err != nil {
		return err
	}
	toBal, err := evm.GetBalance(to)
	if err != nil {
		return err
	}
	toBal.Add(&toBal, amount)
	return evm.SetBalance(to, toBal)
}

// Call executes a CALL-family message against callerFrame's context,
// returning the callee's output, its leftover gas, and an error if the
// call itself faulted (a REVERT is reported via reverted, not err).
func (evm *EVM) Call(callerFrame *Frame, p CallParams) (ret []byte, gasLeft int64, reverted bool, err error) {
	if evm.Depth >= maxCallDepth {
		return nil, p.Gas, false, ErrDepth
	}
	if p.Kind == CallKindCall || p.Kind == CallKindCallCode {
		if !evm.canTransfer(p.Caller, &p.Value) {
			return nil, p.Gas, false, ErrInsufficientBalance
		}
	}

	snap := evm.Snapshot()
	evm.Depth++
	defer func() { evm.Depth-- }()

	self := p.Address
	if p.Kind == CallKindCallCode || p.Kind == CallKindDelegateCall {
		self = callerFrame.Self
	}

	if p.Kind == CallKindCall {
		if err := evm.transfer(p.Caller, p.Address, &p.Value); err != nil {
			evm.RevertToSnapshot(snap)
			return nil, p.Gas, false, err
		}
	}

	if evm.Precompiles != nil {
		if pc, ok := evm.Precompiles[p.Address]; ok {
			gas := p.Gas
			required := int64(pc.RequiredGas(p.Input))
			if gas < required {
				evm.RevertToSnapshot(snap)
				return nil, 0, false, ErrOutOfGas
			}
			out, err := pc.Run(p.Input)
			if err != nil {
				evm.RevertToSnapshot(snap)
				return nil, gas - required, true, nil
			}
			return out, gas - required, false, nil
		}
	}

	code, err := evm.GetCode(p.Address)
	if err != nil {
		evm.RevertToSnapshot(snap)
		return nil, p.Gas, false, err
	}
	code, err = resolveDelegatedCode(code, evm.GetCode)
	if err != nil {
		evm.RevertToSnapshot(snap)
		return nil, p.Gas, false, err
	}
	if len(code) == 0 {
		return nil, p.Gas, false, nil
	}

	value := p.Value
	isStatic := p.IsStatic || p.Kind == CallKindStaticCall
	frame := NewFrame(code, p.Caller, self, value, p.Input, p.Gas, isStatic, evm.Hardfork, evm.Depth)
	if p.Kind == CallKindDelegateCall {
		frame.Value = callerFrame.Value
	}
	defer frame.Release()

	in := &Interpreter{evm: evm, table: evm.table}
	evm.Hooks.onEnter(evm.Depth, OpCode(callKindOpcode(p.Kind)), p.Caller, p.Address, p.Input, uint64(p.Gas), nil)
	log.Debug("call entered", "depth", evm.Depth, "kind", p.Kind, "caller", p.Caller, "address", p.Address, "gas", p.Gas)
	out, runErr := in.Run(frame)
	evm.Hooks.onExit(evm.Depth, out, uint64(frame.Gas), runErr, frame.Reverted)
	if runErr != nil {
		log.Debug("call faulted", "depth", evm.Depth, "address", p.Address, "error", runErr)
	}

	if frame.Reverted || runErr != nil {
		evm.RevertToSnapshot(snap)
		if runErr != nil && runErr != ErrExecutionReverted {
			return nil, 0, false, runErr
		}
		return out, frame.Gas, true, nil
	}
	return out, frame.Gas, false, nil
}

func callKindOpcode(k CallKind) OpCode {
	switch k {
	case CallKindCallCode:
		return CALLCODE
	case CallKindDelegateCall:
		return DELEGATECALL
	case CallKindStaticCall:
		return STATICCALL
	default:
		return CALL
	}
}

// Create executes CREATE/CREATE2, returning the deployed address, the
// deployment's return data (revert reason, if any), leftover gas and
// error.
func (evm *EVM) Create(callerFrame *Frame, caller common.Address, value uint256.Int, gas int64, initCode []byte, salt *[32]byte) (common.Address, []byte, int64, error) {
	if evm.Depth >= maxCallDepth {
		return common.Address{}, nil, gas, ErrDepth
	}
	if !evm.canTransfer(caller, &value) {
		return common.Address{}, nil, gas, ErrInsufficientBalance
	}
	if evm.Hardfork.IsAtLeast(Shanghai) && uint64(len(initCode)) > MaxInitCodeSize {
		return common.Address{}, nil, gas, ErrMaxInitCodeSizeExceeded
	}

	nonce, err := evm.GetNonce(caller)
	if err != nil {
		return common.Address{}, nil, gas, err
	}
	if err := evm.SetNonce(caller, nonce+1); err != nil {
		return common.Address{}, nil, gas, err
	}

	var addr common.Address
	if salt != nil {
		addr = CreateAddress2(caller, *salt, crypto.Keccak256(initCode))
	} else {
		addr = CreateAddress(caller, nonce)
	}

	existingCode, _ := evm.GetCode(addr)
	existingNonce, _ := evm.GetNonce(addr)
	if len(existingCode) > 0 || existingNonce > 0 {
		return common.Address{}, nil, gas, ErrContractAddressCollision
	}

	// MarkCreated before the snapshot, same reasoning as the caller's
	// nonce bump above: addr's created_accounts membership must survive
	// this Create's own revert (a failed deployment still "used up" the
	// address for EIP-6780 purposes), and only unwinds if an ancestor
	// call further out reverts past this point.
	evm.MarkCreated(addr)

	snap := evm.Snapshot()
	evm.Depth++
	defer func() { evm.Depth-- }()

	if err := evm.SetNonce(addr, 1); err != nil {
		evm.RevertToSnapshot(snap)
		return common.Address{}, nil, gas, err
	}
	if err := evm.transfer(caller, addr, &value); err != nil {
		evm.RevertToSnapshot(snap)
		return common.Address{}, nil, gas, err
	}

	frame := NewFrame(initCode, caller, addr, value, nil, gas, false, evm.Hardfork, evm.Depth)
	defer frame.Release()

	in := &Interpreter{evm: evm, table: evm.table}
	evm.Hooks.onEnter(evm.Depth, CREATE, caller, addr, initCode, uint64(gas), nil)
	log.Debug("create entered", "depth", evm.Depth, "caller", caller, "address", addr, "gas", gas, "initcodeLen", len(initCode))
	out, runErr := in.Run(frame)
	evm.Hooks.onExit(evm.Depth, out, uint64(frame.Gas), runErr, frame.Reverted)
	if runErr != nil {
		log.Debug("create faulted", "depth", evm.Depth, "address", addr, "error", runErr)
	}

	if frame.Reverted || runErr != nil {
		evm.RevertToSnapshot(snap)
		if runErr != nil && runErr != ErrExecutionReverted {
			return common.Address{}, nil, 0, runErr
		}
		return common.Address{}, out, frame.Gas, nil
	}

	if uint64(len(out)) > MaxCodeSize {
		evm.RevertToSnapshot(snap)
		return common.Address{}, nil, frame.Gas, ErrMaxCodeSizeExceeded
	}
	depositCost := uint64(len(out)) * CreateDataGas
	if uint64(frame.Gas) < depositCost {
		evm.RevertToSnapshot(snap)
		return common.Address{}, nil, 0, ErrOutOfGas
	}
	frame.Gas -= int64(depositCost)

	if err := evm.SetCode(addr, out); err != nil {
		evm.RevertToSnapshot(snap)
		return common.Address{}, nil, frame.Gas, err
	}
	return addr, nil, frame.Gas, nil
}
