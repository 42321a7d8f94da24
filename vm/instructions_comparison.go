package vm

func opLt(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, _ := frame.Stack.pop()
	y := frame.Stack.peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opGt(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, _ := frame.Stack.pop()
	y := frame.Stack.peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSlt(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, _ := frame.Stack.pop()
	y := frame.Stack.peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSgt(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, _ := frame.Stack.pop()
	y := frame.Stack.peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opEq(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, _ := frame.Stack.pop()
	y := frame.Stack.peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opIszero(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x := frame.Stack.peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil, nil
}

func opAnd(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, _ := frame.Stack.pop()
	y := frame.Stack.peek()
	y.And(&x, y)
	return nil, nil
}

func opOr(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, _ := frame.Stack.pop()
	y := frame.Stack.peek()
	y.Or(&x, y)
	return nil, nil
}

func opXor(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, _ := frame.Stack.pop()
	y := frame.Stack.peek()
	y.Xor(&x, y)
	return nil, nil
}

func opNot(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x := frame.Stack.peek()
	x.Not(x)
	return nil, nil
}

func opByte(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	th, _ := frame.Stack.pop()
	val := frame.Stack.peek()
	val.Byte(&th)
	return nil, nil
}

func opShl(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	shift, _ := frame.Stack.pop()
	value := frame.Stack.peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opShr(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	shift, _ := frame.Stack.pop()
	value := frame.Stack.peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opSar(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	shift, _ := frame.Stack.pop()
	value := frame.Stack.peek()
	if shift.GtUint64(256) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return nil, nil
	}
	value.SRsh(value, uint(shift.Uint64()))
	return nil, nil
}
