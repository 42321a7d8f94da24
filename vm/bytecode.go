package vm

// Bytecode is an immutable view over contract code with a precomputed
// JUMPDEST validity bitmap (spec §4.1). Positions inside a PUSH
// immediate never validate as jump targets, even if the byte value
// there happens to equal 0x5B.
type Bytecode struct {
	code         []byte
	jumpdestBits []byte // one bit per code position, 1 = valid JUMPDEST
}

// NewBytecode analyzes code in a single left-to-right pass and returns
// an immutable view over it.
func NewBytecode(code []byte) *Bytecode {
	b := &Bytecode{
		code:         code,
		jumpdestBits: make([]byte, (len(code)/8)+1),
	}
	for pc := 0; pc < len(code); {
		op := OpCode(code[pc])
		if op.IsPush() {
			pc += 1 + op.PushSize()
			continue
		}
		if op == JUMPDEST {
			b.jumpdestBits[pc/8] |= 1 << uint(pc%8)
		}
		pc++
	}
	return b
}

// Len returns the number of bytes in the code.
func (b *Bytecode) Len() int {
	return len(b.code)
}

// Code returns the underlying byte slice. Callers must not modify it.
func (b *Bytecode) Code() []byte {
	return b.code
}

// OpcodeAt returns the opcode byte at pc, or STOP if pc is past the
// end (implicit trailing STOP, matching the Yellow Paper).
func (b *Bytecode) OpcodeAt(pc uint64) OpCode {
	if pc >= uint64(len(b.code)) {
		return STOP
	}
	return OpCode(b.code[pc])
}

// IsValidJumpdest reports whether pc both holds 0x5B and was not
// skipped over as a PUSH immediate during analysis.
func (b *Bytecode) IsValidJumpdest(pc uint64) bool {
	if pc >= uint64(len(b.code)) {
		return false
	}
	return b.jumpdestBits[pc/8]&(1<<uint(pc%8)) != 0
}

// PushData returns the immediate bytes for a PUSH1..PUSH32 at pc (the
// opcode itself is at pc; the immediate starts at pc+1). If fewer than
// n bytes remain, the result is right-zero-padded — callers that need
// to distinguish a short push (spec's InvalidPush) call PushDataFull
// instead.
func (b *Bytecode) PushData(pc uint64, n int) []byte {
	start := pc + 1
	out := make([]byte, n)
	if start >= uint64(len(b.code)) {
		return out
	}
	end := start + uint64(n)
	if end > uint64(len(b.code)) {
		end = uint64(len(b.code))
	}
	copy(out, b.code[start:end])
	return out
}

// PushDataFull returns the immediate bytes for a PUSH1..PUSH32 at pc,
// failing if fewer than n bytes remain in the code.
func (b *Bytecode) PushDataFull(pc uint64, n int) ([]byte, error) {
	start := pc + 1
	end := start + uint64(n)
	if end > uint64(len(b.code)) {
		return nil, ErrInvalidPush
	}
	return b.code[start:end], nil
}
