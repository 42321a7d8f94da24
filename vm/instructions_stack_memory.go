package vm

import "github.com/holiman/uint256"

func opPop(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	_, _ = frame.Stack.pop()
	return nil, nil
}

// makePush builds the execution function for PUSH0..PUSH32. size==0
// pushes a zero word and advances the PC by the base amount only;
// size>0 reads size immediate bytes following the opcode (zero-padded
// past code end) and advances the PC an extra size positions, per the
// go-ethereum convention that the interpreter's own trailing pc++
// accounts for the final +1 (spec §4.2).
func makePush(size int) executionFunc {
	return func(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
		if size == 0 {
			var v uint256.Int
			frame.Stack.push(&v)
			return nil, nil
		}
		data := frame.Code.PushData(*pc, size)
		var v uint256.Int
		v.SetBytes(data)
		frame.Stack.push(&v)
		*pc += uint64(size)
		return nil, nil
	}
}

func makeDup(n int) executionFunc {
	return func(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
		if err := frame.Stack.dup(n); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

func makeSwap(n int) executionFunc {
	return func(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
		if err := frame.Stack.swap(n); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

func opMload(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	v := frame.Stack.peek()
	offset := v.Uint64()
	v.SetBytes(frame.Memory.GetPtr(offset, 32))
	return nil, nil
}

func opMstore(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	offset, _ := frame.Stack.pop()
	val, _ := frame.Stack.pop()
	frame.Memory.Set32(offset.Uint64(), &val)
	return nil, nil
}

func opMstore8(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	offset, _ := frame.Stack.pop()
	val, _ := frame.Stack.pop()
	frame.Memory.Set(offset.Uint64(), 1, []byte{byte(val.Uint64())})
	return nil, nil
}

func opMsize(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	v := uint256.NewInt(uint64(frame.Memory.Len()))
	frame.Stack.push(v)
	return nil, nil
}

func opMcopy(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	destOffset, _ := frame.Stack.pop()
	offset, _ := frame.Stack.pop()
	length, _ := frame.Stack.pop()
	d, o, l := destOffset.Uint64(), offset.Uint64(), length.Uint64()
	if l == 0 {
		return nil, nil
	}
	src := frame.Memory.GetCopy(o, l)
	frame.Memory.Set(d, l, src)
	return nil, nil
}

func opPc(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	v := uint256.NewInt(*pc)
	frame.Stack.push(v)
	return nil, nil
}

func opGas(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	v := uint256.NewInt(uint64(frame.Gas))
	frame.Stack.push(v)
	return nil, nil
}

func opJumpdest(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	return nil, nil
}
