package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// memoryAccounts is the default Host used when an embedder supplies
// none: a flat in-process map, adequate for the runtime.Execute entry
// point and for tests. Real deployments wire in a Host backed by an
// actual state database (see hostrpc.Client).
type memoryAccounts struct {
	balances map[common.Address]uint256.Int
	nonces   map[common.Address]uint64
	codes    map[common.Address][]byte
	storage  map[common.Address]map[common.Hash]uint256.Int
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{
		balances: make(map[common.Address]uint256.Int),
		nonces:   make(map[common.Address]uint64),
		codes:    make(map[common.Address][]byte),
		storage:  make(map[common.Address]map[common.Hash]uint256.Int),
	}
}

// NewMemoryHost returns a fresh, empty in-memory Host — the same
// default NewEVM falls back to when given a nil Host, exported so
// callers that want explicit control over an account store's lifetime
// (e.g. to share one across a sequence of calls) don't have to route
// through NewEVM(..., nil, ...) to get one.
func NewMemoryHost() Host {
	return newMemoryAccounts()
}

func (m *memoryAccounts) GetBalance(addr common.Address) (uint256.Int, error) {
	return m.balances[addr], nil
}

func (m *memoryAccounts) SetBalance(addr common.Address, v uint256.Int) error {
	m.balances[addr] = v
	return nil
}

func (m *memoryAccounts) GetNonce(addr common.Address) (uint64, error) {
	return m.nonces[addr], nil
}

func (m *memoryAccounts) SetNonce(addr common.Address, n uint64) error {
	m.nonces[addr] = n
	return nil
}

func (m *memoryAccounts) GetCode(addr common.Address) ([]byte, error) {
	return m.codes[addr], nil
}

func (m *memoryAccounts) SetCode(addr common.Address, code []byte) error {
	m.codes[addr] = code
	return nil
}

func (m *memoryAccounts) GetStorage(addr common.Address, slot common.Hash) (uint256.Int, error) {
	return m.storage[addr][slot], nil
}

func (m *memoryAccounts) SetStorage(addr common.Address, slot common.Hash, v uint256.Int) error {
	slots, ok := m.storage[addr]
	if !ok {
		slots = make(map[common.Hash]uint256.Int)
		m.storage[addr] = slots
	}
	slots[slot] = v
	return nil
}

// Exists reports whether addr has ever been given a nonzero balance,
// nonce or code — the "does this account exist" test CALL's new-account
// gas surcharge and EXTCODEHASH's empty-vs-absent distinction need.
func (m *memoryAccounts) Exists(addr common.Address) bool {
	if b, ok := m.balances[addr]; ok && !b.IsZero() {
		return true
	}
	if n, ok := m.nonces[addr]; ok && n != 0 {
		return true
	}
	if c, ok := m.codes[addr]; ok && len(c) > 0 {
		return true
	}
	return false
}

// SetCodeAndNonce seeds a contract account's code and nonce in one
// step. The CREATE/CREATE2 orchestrator does not use it; it goes
// through EVM.SetNonce and EVM.SetCode so the writes are journaled.
func (m *memoryAccounts) SetCodeAndNonce(addr common.Address, code []byte, nonce uint64) {
	m.codes[addr] = code
	m.nonces[addr] = nonce
}

// AccountExistence is an optional capability a Host can implement to
// answer the "does this account exist" question precisely; a Host
// that doesn't implement it is treated as "exists iff code is
// non-empty", which undercounts EOAs with a balance but no code.
type AccountExistence interface {
	Exists(addr common.Address) bool
}

func hostExists(host Host, addr common.Address) bool {
	if ae, ok := host.(AccountExistence); ok {
		return ae.Exists(addr)
	}
	code, err := host.GetCode(addr)
	if err != nil {
		return false
	}
	return len(code) > 0
}

// StorageClearer is an optional capability a Host can implement to wipe
// every slot belonging to an address in one call, used by EVM.Finalize
// to carry out EIP-6780's full account wipe. A Host that doesn't
// implement it is assumed to have no slots beyond what Storage itself
// already tracked for the address.
type StorageClearer interface {
	ClearStorage(addr common.Address) error
}

func (m *memoryAccounts) ClearStorage(addr common.Address) error {
	delete(m.storage, addr)
	return nil
}
