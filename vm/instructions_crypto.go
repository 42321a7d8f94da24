package vm

import (
	"github.com/ethereum/go-ethereum/crypto"
)

func opKeccak256(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	offset, _ := frame.Stack.pop()
	size := frame.Stack.peek()
	data := frame.Memory.GetPtr(offset.Uint64(), size.Uint64())
	hash := crypto.Keccak256(data)
	size.SetBytes(hash)
	return nil, nil
}
