package vm

func opAdd(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, _ := frame.Stack.pop()
	y := frame.Stack.peek()
	y.Add(&x, y)
	return nil, nil
}

func opSub(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, _ := frame.Stack.pop()
	y := frame.Stack.peek()
	y.Sub(&x, y)
	return nil, nil
}

func opMul(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, _ := frame.Stack.pop()
	y := frame.Stack.peek()
	y.Mul(&x, y)
	return nil, nil
}

func opDiv(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, _ := frame.Stack.pop()
	y := frame.Stack.peek()
	y.Div(&x, y)
	return nil, nil
}

func opSdiv(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, _ := frame.Stack.pop()
	y := frame.Stack.peek()
	y.SDiv(&x, y)
	return nil, nil
}

func opMod(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, _ := frame.Stack.pop()
	y := frame.Stack.peek()
	y.Mod(&x, y)
	return nil, nil
}

func opSmod(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, _ := frame.Stack.pop()
	y := frame.Stack.peek()
	y.SMod(&x, y)
	return nil, nil
}

func opAddmod(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, _ := frame.Stack.pop()
	y, _ := frame.Stack.pop()
	z := frame.Stack.peek()
	if z.IsZero() {
		z.Clear()
	} else {
		z.AddMod(&x, &y, z)
	}
	return nil, nil
}

func opMulmod(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	x, _ := frame.Stack.pop()
	y, _ := frame.Stack.pop()
	z := frame.Stack.peek()
	if z.IsZero() {
		z.Clear()
	} else {
		z.MulMod(&x, &y, z)
	}
	return nil, nil
}

func opExp(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	base, _ := frame.Stack.pop()
	exponent := frame.Stack.peek()
	exponent.Exp(&base, exponent)
	return nil, nil
}

func opSignExtend(pc *uint64, in *Interpreter, frame *Frame) ([]byte, error) {
	back, _ := frame.Stack.pop()
	num := frame.Stack.peek()
	num.ExtendSign(num, &back)
	return nil, nil
}
