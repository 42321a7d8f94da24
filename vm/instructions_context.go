package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

func opAddress(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	var v uint256.Int
	v.SetBytes(frame.Self.Bytes())
	frame.Stack.push(&v)
	return nil, nil
}

func opBalance(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	addr := common.Address(frame.Stack.peek().Bytes20())
	balance, err := in.evm.GetBalance(addr)
	if err != nil {
		return nil, err
	}
	frame.Stack.peek().Set(&balance)
	return nil, nil
}

func opOrigin(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	var v uint256.Int
	v.SetBytes(in.evm.TxCtx.Origin.Bytes())
	frame.Stack.push(&v)
	return nil, nil
}

func opCaller(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	var v uint256.Int
	v.SetBytes(frame.Caller.Bytes())
	frame.Stack.push(&v)
	return nil, nil
}

func opCallValue(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	v := frame.Value
	frame.Stack.push(&v)
	return nil, nil
}

func opCallDataLoad(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x := frame.Stack.peek()
	offset, overflow := x.Uint64WithOverflow()
	if overflow {
		x.Clear()
		return nil, nil
	}
	x.SetBytes(getDataSlice(frame.CallData, offset, 32))
	return nil, nil
}

func opCallDataSize(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	v := uint256.NewInt(uint64(len(frame.CallData)))
	frame.Stack.push(v)
	return nil, nil
}

func opCallDataCopy(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	destOffset, _ := frame.Stack.pop()
	offset, _ := frame.Stack.pop()
	length, _ := frame.Stack.pop()
	d, o, l := destOffset.Uint64(), offset.Uint64(), length.Uint64()
	frame.Memory.Set(d, l, getDataSlice(frame.CallData, o, l))
	return nil, nil
}

func opCodeSize(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	v := uint256.NewInt(uint64(frame.Code.Len()))
	frame.Stack.push(v)
	return nil, nil
}

func opCodeCopy(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	destOffset, _ := frame.Stack.pop()
	offset, _ := frame.Stack.pop()
	length, _ := frame.Stack.pop()
	d, o, l := destOffset.Uint64(), offset.Uint64(), length.Uint64()
	frame.Memory.Set(d, l, getDataSlice(frame.Code.Code(), o, l))
	return nil, nil
}

func opGasPrice(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	var v uint256.Int
	if in.evm.TxCtx.GasPrice != nil {
		v.SetFromBig(in.evm.TxCtx.GasPrice)
	}
	frame.Stack.push(&v)
	return nil, nil
}

func extCodeOf(in *Interpreter, addr common.Address) ([]byte, error) {
	code, err := in.evm.GetCode(addr)
	if err != nil {
		return nil, err
	}
	return resolveDelegatedCode(code, in.evm.GetCode)
}

func opExtCodeSize(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	addr := common.Address(frame.Stack.peek().Bytes20())
	code, err := extCodeOf(in, addr)
	if err != nil {
		return nil, err
	}
	frame.Stack.peek().SetUint64(uint64(len(code)))
	return nil, nil
}

func opExtCodeCopy(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	addrU, _ := frame.Stack.pop()
	destOffset, _ := frame.Stack.pop()
	offset, _ := frame.Stack.pop()
	length, _ := frame.Stack.pop()
	addr := common.Address(addrU.Bytes20())
	code, err := extCodeOf(in, addr)
	if err != nil {
		return nil, err
	}
	d, o, l := destOffset.Uint64(), offset.Uint64(), length.Uint64()
	frame.Memory.Set(d, l, getDataSlice(code, o, l))
	return nil, nil
}

func opReturnDataSize(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	v := uint256.NewInt(uint64(len(frame.ReturnData)))
	frame.Stack.push(v)
	return nil, nil
}

func opReturnDataCopy(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	destOffset, _ := frame.Stack.pop()
	offset, _ := frame.Stack.pop()
	length, _ := frame.Stack.pop()
	o, l := offset.Uint64(), length.Uint64()
	end := o + l
	if end < o || end > uint64(len(frame.ReturnData)) {
		return nil, ErrOutOfBounds
	}
	d := destOffset.Uint64()
	frame.Memory.Set(d, l, frame.ReturnData[o:end])
	return nil, nil
}

func opExtCodeHash(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	addr := common.Address(frame.Stack.peek().Bytes20())
	if !hostExists(in.evm.host, addr) {
		frame.Stack.peek().Clear()
		return nil, nil
	}
	code, err := extCodeOf(in, addr)
	if err != nil {
		return nil, err
	}
	if len(code) == 0 {
		frame.Stack.peek().Clear()
		return nil, nil
	}
	frame.Stack.peek().SetBytes(crypto.Keccak256(code))
	return nil, nil
}

func opSelfBalance(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	balance, err := in.evm.GetBalance(frame.Self)
	if err != nil {
		return nil, err
	}
	frame.Stack.push(&balance)
	return nil, nil
}

func opChainID(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	var v uint256.Int
	if in.evm.ChainID != nil {
		v.SetFromBig(in.evm.ChainID)
	}
	frame.Stack.push(&v)
	return nil, nil
}

func opBaseFee(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	var v uint256.Int
	if in.evm.Block.BaseFee != nil {
		v.SetFromBig(in.evm.Block.BaseFee)
	}
	frame.Stack.push(&v)
	return nil, nil
}

func opBlobHash(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	idx := frame.Stack.peek()
	i, overflow := idx.Uint64WithOverflow()
	if overflow || i >= uint64(len(in.evm.TxCtx.BlobHashes)) {
		idx.Clear()
		return nil, nil
	}
	idx.SetBytes(in.evm.TxCtx.BlobHashes[i].Bytes())
	return nil, nil
}

func opBlobBaseFee(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	var v uint256.Int
	if in.evm.Block.BlobBaseFee != nil {
		v.SetFromBig(in.evm.Block.BlobBaseFee)
	}
	frame.Stack.push(&v)
	return nil, nil
}

// getDataSlice returns a zero-padded [offset:offset+size) view of
// data, the shared helper CALLDATALOAD/CALLDATACOPY/CODECOPY/
// EXTCODECOPY use to read past the end of their source without
// faulting (spec §4.6 edge cases).
func getDataSlice(data []byte, offset, size uint64) []byte {
	out := make([]byte, size)
	if offset >= uint64(len(data)) {
		return out
	}
	end := offset + size
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	copy(out, data[offset:end])
	return out
}
