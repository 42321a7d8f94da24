package vm

import "github.com/ethereum/go-ethereum/common"

func opSload(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	loc := frame.Stack.peek()
	slot := common.Hash(loc.Bytes32())
	v, err := in.evm.Storage.SLoad(frame.Self, slot)
	if err != nil {
		return nil, err
	}
	loc.Set(&v)
	return nil, nil
}

func opSstore(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	if frame.IsStatic {
		return nil, ErrWriteProtection
	}
	loc, _ := frame.Stack.pop()
	val, _ := frame.Stack.pop()
	slot := common.Hash(loc.Bytes32())
	return nil, in.evm.Storage.SStore(frame.Self, slot, val)
}

func opTload(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	loc := frame.Stack.peek()
	slot := common.Hash(loc.Bytes32())
	v := in.evm.Storage.TLoad(frame.Self, slot)
	loc.Set(&v)
	return nil, nil
}

func opTstore(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	if frame.IsStatic {
		return nil, ErrWriteProtection
	}
	loc, _ := frame.Stack.pop()
	val, _ := frame.Stack.pop()
	slot := common.Hash(loc.Bytes32())
	in.evm.Storage.TStore(frame.Self, slot, val)
	return nil, nil
}
