package vm

import "github.com/ethereum/go-ethereum/log"

// Interpreter runs one Frame's bytecode to completion against the
// opcode table its EVM picked for the active hardfork. It holds no
// per-call mutable state of its own; everything that changes as
// execution proceeds lives on the Frame or on the EVM it shares across
// the whole call tree.
type Interpreter struct {
	evm   *EVM
	table *JumpTable
}

// Run executes frame.Code from frame.PC until a terminal opcode or
// error ends it, returning the frame's RETURN/REVERT payload (or nil
// for a plain STOP) and any non-terminal fault.
func (in *Interpreter) Run(frame *Frame) ([]byte, error) {
	pc := frame.PC
	for {
		op := frame.Code.OpcodeAt(pc)
		operation := in.table[op]
		if operation == nil {
			log.Debug("opcode not activated at this hardfork", "opcode", op, "fork", in.evm.Hardfork)
			return in.fail(frame, pc, op, 0, 0, ErrInvalidOpcode)
		}

		if err := frame.Stack.requireDepth(operation.minStack); err != nil {
			return in.fail(frame, pc, op, 0, 0, err)
		}
		if frame.Stack.len() > operation.maxStack {
			return in.fail(frame, pc, op, 0, 0, &ErrStackOverflow{stackLen: frame.Stack.len(), limit: operation.maxStack})
		}
		if frame.IsStatic && isStateChanging(op) {
			return in.fail(frame, pc, op, 0, 0, ErrWriteProtection)
		}

		var memorySize uint64
		if operation.memorySize != nil {
			size, overflow := operation.memorySize(frame.Stack)
			if overflow {
				return in.fail(frame, pc, op, 0, 0, ErrGasUintOverflow)
			}
			memorySize = size
		}

		gasBefore := uint64(frame.Gas)
		if !frame.UseGas(operation.constantGas) {
			return in.fail(frame, pc, op, gasBefore, operation.constantGas, ErrOutOfGas)
		}
		if operation.dynamicGas != nil {
			cost, err := operation.dynamicGas(in, frame, memorySize)
			if err != nil {
				return in.fail(frame, pc, op, gasBefore, operation.constantGas, err)
			}
			if !frame.UseGas(cost) {
				return in.fail(frame, pc, op, gasBefore, operation.constantGas+cost, ErrOutOfGas)
			}
		}
		if operation.memorySize != nil {
			frame.Memory.Resize(memorySize)
		}

		gasCost := gasBefore - uint64(frame.Gas)
		in.evm.Hooks.onOpcode(pc, op, uint64(frame.Gas), gasCost, frame, frame.ReturnData, frame.depth, nil)

		ret, err := operation.execute(&pc, in, frame)
		if err != nil {
			if err == errStopToken {
				return ret, nil
			}
			if _, ok := err.(*errHostDataPending); ok {
				frame.PC = pc
				return nil, err
			}
			in.evm.Hooks.onFault(pc, op, uint64(frame.Gas), gasCost, frame, frame.depth, err)
			return nil, err
		}
		pc++
	}
}

// isStateChanging reports whether op unconditionally mutates state, so
// the static-call guard can veto it outright. CALL's value-transfer
// case is vetoed separately inside the call path, since there the
// answer depends on the value argument rather than the opcode alone.
func isStateChanging(op OpCode) bool {
	switch op {
	case SSTORE, TSTORE, CREATE, CREATE2, SELFDESTRUCT:
		return true
	}
	return op.IsLog()
}

// fail packages a non-terminal error, firing the fault hook once.
func (in *Interpreter) fail(frame *Frame, pc uint64, op OpCode, gas, cost uint64, err error) ([]byte, error) {
	in.evm.Hooks.onFault(pc, op, gas, cost, frame, frame.depth, err)
	return nil, err
}
