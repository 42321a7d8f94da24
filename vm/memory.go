package vm

import "github.com/holiman/uint256"

// Memory is a byte-addressable, zero-initialized buffer grown in
// 32-byte words on touch. Its length is always a multiple of 32.
type Memory struct {
	store       []byte
	lastGasCost uint64
}

// NewMemory returns an empty memory region.
func NewMemory() *Memory {
	return &Memory{}
}

// Len returns memory_size: the current word-aligned byte count.
func (m *Memory) Len() int {
	return len(m.store)
}

// Data returns the underlying buffer. Callers must not retain it past
// the next mutation.
func (m *Memory) Data() []byte {
	return m.store
}

// toWordSize rounds a byte count up to the nearest multiple of 32,
// expressed in words.
func toWordSize(size uint64) uint64 {
	if size > 0xFFFFFFFFE0 {
		// would overflow in *32 below; callers have already bounded
		// size via gas-cost overflow checks, this is a last-resort guard.
		return 0xFFFFFFFFFFFFFFFF / 32
	}
	return (size + 31) / 32
}

// expansionCost returns the marginal cost to extend memory to cover
// byte offset endByte (0 if already covered), per the standard EVM
// quadratic formula 3*W + floor(W^2/512), and records the new running
// total so the next call's marginal cost is computed against it.
// Handlers must charge this fee, and only on success call Resize to
// actually grow the buffer — mirroring how go-ethereum's gas functions
// update lastGasCost ahead of the interpreter's mem.Resize call.
func (m *Memory) expansionCost(endByte uint64) (uint64, error) {
	if endByte <= uint64(len(m.store)) {
		return 0, nil
	}
	if endByte > 0x1FFFFFFFE0 {
		return 0, ErrGasUintOverflow
	}
	words := toWordSize(endByte)
	newCost := words*MemoryGas + (words*words)/QuadCoeffDiv
	fee := newCost - m.lastGasCost
	m.lastGasCost = newCost
	return fee, nil
}

// Resize grows the memory to cover size bytes, rounded up to a whole
// word, zero-filling the new region. It is a no-op if already that
// large. Must be called only after expansionCost's fee has been
// charged successfully.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) >= size {
		return
	}
	words := toWordSize(size)
	newLen := words * 32
	if uint64(cap(m.store)) >= newLen {
		m.store = m.store[:newLen]
		for i := uint64(len(m.store)); i < newLen; i++ {
			m.store[i] = 0
		}
		return
	}
	grown := make([]byte, newLen)
	copy(grown, m.store)
	m.store = grown
}

// Set writes data into memory at offset, which must already be
// resized to fit.
func (m *Memory) Set(offset, size uint64, data []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.store)) {
		return
	}
	copy(m.store[offset:offset+size], data)
}

// Set32 writes a 32-byte big-endian value at offset.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.store)) {
		return
	}
	b := val.Bytes32()
	copy(m.store[offset:offset+32], b[:])
}

// GetCopy returns a fresh copy of size bytes starting at offset,
// zero-padding past the end of the buffer (used by handlers that read
// from a region they have not necessarily resized themselves, e.g.
// return-data copies bounded separately).
func (m *Memory) GetCopy(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	out := make([]byte, size)
	if offset > uint64(len(m.store)) {
		return out
	}
	end := offset + size
	if end > uint64(len(m.store)) {
		end = uint64(len(m.store))
	}
	copy(out, m.store[offset:end])
	return out
}

// GetPtr returns a slice view (no copy) of size bytes starting at
// offset; offset+size must already fit within the buffer.
func (m *Memory) GetPtr(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}
