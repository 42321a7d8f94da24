package vm

import (
	"sync"

	"github.com/holiman/uint256"
)

const stackLimit = 1024

var stackPool = sync.Pool{
	New: func() interface{} {
		return &Stack{data: make([]uint256.Int, 0, 16)}
	},
}

// Stack is a fixed-capacity 256-bit value stack. Index 0 is the bottom;
// the top of stack is always data[len(data)-1].
type Stack struct {
	data []uint256.Int
}

func newstack() *Stack {
	return stackPool.Get().(*Stack)
}

func returnStack(s *Stack) {
	s.data = s.data[:0]
	stackPool.Put(s)
}

// Data returns the stack's backing slice, bottom first. Callers must
// not modify it.
func (st *Stack) Data() []uint256.Int {
	return st.data
}

func (st *Stack) len() int {
	return len(st.data)
}

// push fails StackOverflow if the stack is already at capacity.
func (st *Stack) push(v *uint256.Int) error {
	if len(st.data) >= stackLimit {
		return &ErrStackOverflow{stackLen: len(st.data), limit: stackLimit}
	}
	st.data = append(st.data, *v)
	return nil
}

// pop fails StackUnderflow on an empty stack.
func (st *Stack) pop() (uint256.Int, error) {
	if len(st.data) == 0 {
		return uint256.Int{}, &ErrStackUnderflow{stackLen: 0, required: 1}
	}
	n := len(st.data) - 1
	v := st.data[n]
	st.data = st.data[:n]
	return v, nil
}

// peek returns the top of stack without popping it. Caller must ensure
// the stack is non-empty.
func (st *Stack) peek() *uint256.Int {
	return &st.data[len(st.data)-1]
}

// peekAt returns the n-th item from the top, 0-indexed (peekAt(0) ==
// peek()). Caller must ensure n < len.
func (st *Stack) peekAt(n int) *uint256.Int {
	return &st.data[len(st.data)-1-n]
}

// dup copies the n-th item from the top (1-indexed, DUP1 duplicates the
// top) onto the top of stack.
func (st *Stack) dup(n int) error {
	if len(st.data) < n {
		return &ErrStackUnderflow{stackLen: len(st.data), required: n}
	}
	if len(st.data) >= stackLimit {
		return &ErrStackOverflow{stackLen: len(st.data), limit: stackLimit}
	}
	v := st.data[len(st.data)-n]
	st.data = append(st.data, v)
	return nil
}

// swap exchanges the top of stack with the item at depth n+1 (SWAP1
// swaps top and second-from-top).
func (st *Stack) swap(n int) error {
	if len(st.data) < n+1 {
		return &ErrStackUnderflow{stackLen: len(st.data), required: n + 1}
	}
	top := len(st.data) - 1
	st.data[top], st.data[top-n] = st.data[top-n], st.data[top]
	return nil
}

// requireDepth checks the full depth precondition for an operation
// before any item is popped, keeping error atomicity (spec §4.2).
func (st *Stack) requireDepth(min int) error {
	if len(st.data) < min {
		return &ErrStackUnderflow{stackLen: len(st.data), required: min}
	}
	return nil
}
