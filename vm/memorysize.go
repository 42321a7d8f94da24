package vm

import "github.com/holiman/uint256"

// calcMemSize64 computes the byte offset one past a memory region
// (offset, size), reporting overflow if either value does not fit a
// uint64 or their sum wraps. A zero-length region never requires
// memory expansion (spec §4.3), signalled by returning (0, false).
func calcMemSize64(offset, size *uint256.Int) (uint64, bool) {
	if size.IsZero() {
		return 0, false
	}
	off, overflow := offset.Uint64WithOverflow()
	if overflow {
		return 0, true
	}
	sz, overflow := size.Uint64WithOverflow()
	if overflow {
		return 0, true
	}
	end := off + sz
	if end < off {
		return 0, true
	}
	return end, false
}

func memoryKeccak256(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.peekAt(0), stack.peekAt(1))
}

func memoryCallDataCopy(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.peekAt(0), stack.peekAt(2))
}

func memoryCodeCopy(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.peekAt(0), stack.peekAt(2))
}

func memoryExtCodeCopy(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.peekAt(1), stack.peekAt(3))
}

func memoryReturnDataCopy(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.peekAt(0), stack.peekAt(2))
}

func memoryMLoad(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.peekAt(0), uint256.NewInt(32))
}

func memoryMStore(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.peekAt(0), uint256.NewInt(32))
}

func memoryMStore8(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.peekAt(0), uint256.NewInt(1))
}

func memoryMCopy(stack *Stack) (uint64, bool) {
	dstEnd, overflow := calcMemSize64(stack.peekAt(0), stack.peekAt(2))
	if overflow {
		return 0, true
	}
	srcEnd, overflow := calcMemSize64(stack.peekAt(1), stack.peekAt(2))
	if overflow {
		return 0, true
	}
	if srcEnd > dstEnd {
		return srcEnd, false
	}
	return dstEnd, false
}

func memoryCreate(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.peekAt(1), stack.peekAt(2))
}

func memoryCreate2(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.peekAt(1), stack.peekAt(2))
}

func memoryCall(stack *Stack) (uint64, bool) {
	inEnd, overflow := calcMemSize64(stack.peekAt(3), stack.peekAt(4))
	if overflow {
		return 0, true
	}
	outEnd, overflow := calcMemSize64(stack.peekAt(5), stack.peekAt(6))
	if overflow {
		return 0, true
	}
	if outEnd > inEnd {
		return outEnd, false
	}
	return inEnd, false
}

func memoryDelegateOrStaticCall(stack *Stack) (uint64, bool) {
	inEnd, overflow := calcMemSize64(stack.peekAt(2), stack.peekAt(3))
	if overflow {
		return 0, true
	}
	outEnd, overflow := calcMemSize64(stack.peekAt(4), stack.peekAt(5))
	if overflow {
		return 0, true
	}
	if outEnd > inEnd {
		return outEnd, false
	}
	return inEnd, false
}

func memoryReturn(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.peekAt(0), stack.peekAt(1))
}

func memoryLog(stack *Stack) (uint64, bool) {
	return calcMemSize64(stack.peekAt(0), stack.peekAt(1))
}
