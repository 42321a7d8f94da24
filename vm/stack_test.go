package vm

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestStackPushPopOrder(t *testing.T) {
	s := newstack()
	defer returnStack(s)

	for i := uint64(1); i <= 3; i++ {
		v := uint256.NewInt(i)
		if err := s.push(v); err != nil {
			t.Fatal(err)
		}
	}
	for i := uint64(3); i >= 1; i-- {
		v, err := s.pop()
		if err != nil {
			t.Fatal(err)
		}
		if v.Uint64() != i {
			t.Fatalf("pop = %d, want %d", v.Uint64(), i)
		}
	}
}

func TestStackUnderflow(t *testing.T) {
	s := newstack()
	defer returnStack(s)

	if _, err := s.pop(); err == nil {
		t.Fatal("expected underflow error on empty stack")
	}
}

func TestStackOverflow(t *testing.T) {
	s := newstack()
	defer returnStack(s)

	zero := uint256.NewInt(0)
	for i := 0; i < stackLimit; i++ {
		if err := s.push(zero); err != nil {
			t.Fatalf("push %d: unexpected error %v", i, err)
		}
	}
	if err := s.push(zero); err == nil {
		t.Fatal("expected overflow pushing past stackLimit")
	}
}

func TestStackSwapAndDup(t *testing.T) {
	s := newstack()
	defer returnStack(s)

	s.push(uint256.NewInt(1))
	s.push(uint256.NewInt(2))

	if err := s.swap(1); err != nil {
		t.Fatal(err)
	}
	if s.peek().Uint64() != 1 {
		t.Fatalf("after swap1, top = %d, want 1", s.peek().Uint64())
	}

	if err := s.dup(1); err != nil {
		t.Fatal(err)
	}
	if s.len() != 3 || s.peek().Uint64() != 1 {
		t.Fatalf("after dup1, len=%d top=%d, want len=3 top=1", s.len(), s.peek().Uint64())
	}
}

func TestStackRequireDepthDoesNotMutate(t *testing.T) {
	s := newstack()
	defer returnStack(s)

	s.push(uint256.NewInt(1))
	if err := s.requireDepth(2); err == nil {
		t.Fatal("expected underflow")
	}
	if s.len() != 1 {
		t.Fatalf("requireDepth must not pop on failure, len = %d", s.len())
	}
}
