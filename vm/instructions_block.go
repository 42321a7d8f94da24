package vm

import "github.com/holiman/uint256"

func opBlockhash(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	num := frame.Stack.peek()
	if in.evm.Block.GetHash == nil || in.evm.Block.BlockNumber == nil {
		num.Clear()
		return nil, nil
	}
	current := in.evm.Block.BlockNumber.Uint64()
	n, overflow := num.Uint64WithOverflow()
	if overflow || n >= current || current-n > 256 {
		num.Clear()
		return nil, nil
	}
	num.SetBytes(in.evm.Block.GetHash(n).Bytes())
	return nil, nil
}

func opCoinbase(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	var v uint256.Int
	v.SetBytes(in.evm.Block.Coinbase.Bytes())
	frame.Stack.push(&v)
	return nil, nil
}

func opTimestamp(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	v := uint256.NewInt(in.evm.Block.Time)
	frame.Stack.push(v)
	return nil, nil
}

func opNumber(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	var v uint256.Int
	if in.evm.Block.BlockNumber != nil {
		v.SetFromBig(in.evm.Block.BlockNumber)
	}
	frame.Stack.push(&v)
	return nil, nil
}

// opDifficulty serves both DIFFICULTY (pre-Merge) and PREVRANDAO
// (post-Merge, same opcode 0x44): the latter returns the RANDAO mix
// hash as a plain integer rather than a PoW difficulty (spec §4.4).
func opDifficulty(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	var v uint256.Int
	if in.evm.Hardfork.IsAtLeast(Merge) {
		if in.evm.Block.Random != nil {
			v.SetBytes(in.evm.Block.Random.Bytes())
		}
	} else if in.evm.Block.Difficulty != nil {
		v.SetFromBig(in.evm.Block.Difficulty)
	}
	frame.Stack.push(&v)
	return nil, nil
}

func opGasLimit(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	v := uint256.NewInt(in.evm.Block.GasLimit)
	frame.Stack.push(v)
	return nil, nil
}
