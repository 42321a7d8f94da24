package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// makeLog builds LOG0..LOG4: pop offset/size then n topic words, emit
// one record carrying the current frame's address, and copy (not
// alias) the memory region since later writes must not mutate an
// already-emitted log (spec §4.7).
func makeLog(n int) executionFunc {
	return func(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
		if frame.IsStatic {
			return nil, ErrWriteProtection
		}
		offset, _ := frame.Stack.pop()
		size, _ := frame.Stack.pop()
		topics := make([]common.Hash, n)
		for i := 0; i < n; i++ {
			t, _ := frame.Stack.pop()
			topics[i] = common.Hash(t.Bytes32())
		}
		data := frame.Memory.GetCopy(offset.Uint64(), size.Uint64())
		log := &types.Log{
			Address: frame.Self,
			Data:    data,
		}
		for _, t := range topics {
			log.Topics = append(log.Topics, t)
		}
		in.evm.Logs.Append(log)
		return nil, nil
	}
}
