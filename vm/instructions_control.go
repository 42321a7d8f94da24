package vm

func opStop(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	frame.Stopped = true
	return nil, errStopToken
}

func opJump(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	dest, _ := frame.Stack.pop()
	target := dest.Uint64()
	if !dest.IsUint64() || !frame.Code.IsValidJumpdest(target) {
		return nil, ErrInvalidJump
	}
	*pc = target - 1
	return nil, nil
}

func opJumpi(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	dest, _ := frame.Stack.pop()
	cond, _ := frame.Stack.pop()
	if cond.IsZero() {
		return nil, nil
	}
	target := dest.Uint64()
	if !dest.IsUint64() || !frame.Code.IsValidJumpdest(target) {
		return nil, ErrInvalidJump
	}
	*pc = target - 1
	return nil, nil
}

func opReturn(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	offset, _ := frame.Stack.pop()
	size, _ := frame.Stack.pop()
	frame.Output = frame.Memory.GetCopy(offset.Uint64(), size.Uint64())
	frame.Stopped = true
	return frame.Output, errStopToken
}

func opRevert(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	offset, _ := frame.Stack.pop()
	size, _ := frame.Stack.pop()
	frame.Output = frame.Memory.GetCopy(offset.Uint64(), size.Uint64())
	frame.Reverted = true
	return frame.Output, errStopToken
}

func opInvalid(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	return nil, ErrInvalidOpcode
}

func opUndefined(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	return nil, ErrInvalidOpcode
}
