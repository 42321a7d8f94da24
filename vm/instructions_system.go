package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// writeCallResult copies up to retSize bytes of ret into memory at
// retOffset (already sized by the opcode's memorySizeFunc) and stashes
// the full, untruncated ret as this frame's ReturnData for a later
// RETURNDATACOPY/RETURNDATASIZE.
func writeCallResult(frame *Frame, ret []byte, retOffset, retSize uint64) {
	frame.ReturnData = ret
	if retSize == 0 {
		return
	}
	n := retSize
	if uint64(len(ret)) < n {
		n = uint64(len(ret))
	}
	if n > 0 {
		frame.Memory.Set(retOffset, n, ret[:n])
	}
}

func pushBool(frame *Frame, ok bool) {
	v := new(uint256.Int)
	if ok {
		v.SetOne()
	}
	frame.Stack.push(v)
}

// doCall implements CALL and CALLCODE, the two CALL-family opcodes that
// carry an explicit value argument.
func doCall(kind CallKind) executionFunc {
	return func(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
		_, _ = frame.Stack.pop() // gas; the actual forwarded amount was already computed by gasCallFamily
		addrWord, _ := frame.Stack.pop()
		value, _ := frame.Stack.pop()
		argsOffset, _ := frame.Stack.pop()
		argsSize, _ := frame.Stack.pop()
		retOffset, _ := frame.Stack.pop()
		retSize, _ := frame.Stack.pop()

		if frame.IsStatic && kind == CallKindCall && !value.IsZero() {
			return nil, ErrWriteProtection
		}

		addr := common.Address(addrWord.Bytes20())
		input := frame.Memory.GetCopy(argsOffset.Uint64(), argsSize.Uint64())

		gas := in.evm.callGasTemp
		if !value.IsZero() {
			gas += CallStipend
		}

		params := CallParams{
			Kind:     kind,
			Caller:   frame.Self,
			Address:  addr,
			Value:    value,
			Input:    input,
			Gas:      int64(gas),
			IsStatic: frame.IsStatic,
		}
		ret, gasLeft, reverted, err := in.evm.Call(frame, params)
		frame.Gas += gasLeft
		writeCallResult(frame, ret, retOffset.Uint64(), retSize.Uint64())
		pushBool(frame, err == nil && !reverted)
		return nil, nil
	}
}

// doCallNoValue implements DELEGATECALL and STATICCALL, which share one
// fewer stack argument than CALL/CALLCODE (no value word).
func doCallNoValue(kind CallKind) executionFunc {
	return func(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
		_, _ = frame.Stack.pop() // gas
		addrWord, _ := frame.Stack.pop()
		argsOffset, _ := frame.Stack.pop()
		argsSize, _ := frame.Stack.pop()
		retOffset, _ := frame.Stack.pop()
		retSize, _ := frame.Stack.pop()

		addr := common.Address(addrWord.Bytes20())
		input := frame.Memory.GetCopy(argsOffset.Uint64(), argsSize.Uint64())

		params := CallParams{
			Kind:     kind,
			Caller:   frame.Self,
			Address:  addr,
			Input:    input,
			Gas:      int64(in.evm.callGasTemp),
			IsStatic: frame.IsStatic || kind == CallKindStaticCall,
		}
		ret, gasLeft, reverted, err := in.evm.Call(frame, params)
		frame.Gas += gasLeft
		writeCallResult(frame, ret, retOffset.Uint64(), retSize.Uint64())
		pushBool(frame, err == nil && !reverted)
		return nil, nil
	}
}

var (
	opCall         = doCall(CallKindCall)
	opCallCode     = doCall(CallKindCallCode)
	opDelegateCall = doCallNoValue(CallKindDelegateCall)
	opStaticCall   = doCallNoValue(CallKindStaticCall)
)

func opCreate(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	if frame.IsStatic {
		return nil, ErrWriteProtection
	}
	value, _ := frame.Stack.pop()
	offset, _ := frame.Stack.pop()
	size, _ := frame.Stack.pop()
	initCode := frame.Memory.GetCopy(offset.Uint64(), size.Uint64())

	addr, out, gasLeft, err := in.evm.Create(frame, frame.Self, value, int64(in.evm.callGasTemp), initCode, nil)
	frame.Gas += gasLeft
	frame.ReturnData = out

	if err != nil {
		pushBool(frame, false)
		return nil, nil
	}
	result := new(uint256.Int).SetBytes(addr.Bytes())
	frame.Stack.push(result)
	return nil, nil
}

func opCreate2(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	if frame.IsStatic {
		return nil, ErrWriteProtection
	}
	value, _ := frame.Stack.pop()
	offset, _ := frame.Stack.pop()
	size, _ := frame.Stack.pop()
	saltWord, _ := frame.Stack.pop()
	initCode := frame.Memory.GetCopy(offset.Uint64(), size.Uint64())
	salt := saltWord.Bytes32()

	addr, out, gasLeft, err := in.evm.Create(frame, frame.Self, value, int64(in.evm.callGasTemp), initCode, &salt)
	frame.Gas += gasLeft
	frame.ReturnData = out

	if err != nil {
		pushBool(frame, false)
		return nil, nil
	}
	result := new(uint256.Int).SetBytes(addr.Bytes())
	frame.Stack.push(result)
	return nil, nil
}

// opSelfdestruct marks frame.Self for end-of-transaction removal,
// paying beneficiary its balance. EIP-6780 (Cancun) restricts the
// code/nonce/storage wipe to accounts created earlier in this same
// transaction; outside that window SELFDESTRUCT only pays out (spec §9).
func opSelfdestruct(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	if frame.IsStatic {
		return nil, ErrWriteProtection
	}
	beneficiaryWord, _ := frame.Stack.pop()
	beneficiary := common.Address(beneficiaryWord.Bytes20())

	balance, err := in.evm.GetBalance(frame.Self)
	if err != nil {
		return nil, err
	}
	if !balance.IsZero() {
		if err := in.evm.transfer(frame.Self, beneficiary, &balance); err != nil {
			return nil, err
		}
	}
	in.evm.MarkSelfDestruct(frame.Self, beneficiary)

	frame.Stopped = true
	return nil, errStopToken
}
