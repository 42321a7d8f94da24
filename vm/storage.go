package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Storage is the per-EVM-instance, per-transaction storage engine
// (spec §3): current/original tiers for SSTORE's net-gas accounting,
// a transient map cleared at tx end (EIP-1153), and an optional Host
// indirection for the host-backed mode.
type Storage struct {
	host Host

	current   map[slotKey]uint256.Int
	original  map[slotKey]uint256.Int
	transient map[slotKey]uint256.Int
}

// NewStorage returns a Storage in host-less, in-memory mode.
func NewStorage() *Storage {
	return &Storage{
		current:   make(map[slotKey]uint256.Int),
		original:  make(map[slotKey]uint256.Int),
		transient: make(map[slotKey]uint256.Int),
	}
}

// NewHostStorage returns a Storage whose current-tier reads/writes
// delegate to host; original/transient stay local (the host has no
// notion of either — original is this-tx-scoped, transient never
// persists).
func NewHostStorage(host Host) *Storage {
	s := NewStorage()
	s.host = host
	return s
}

// SLoad returns the current value of (addr, slot), consulting the host
// if present. The first access to a key also populates original with
// the same value (spec §4.5); original is never rewritten afterward.
func (s *Storage) SLoad(addr common.Address, slot common.Hash) (uint256.Int, error) {
	key := slotKey{addr, slot}
	if s.host != nil {
		if _, seen := s.original[key]; !seen {
			v, err := s.host.GetStorage(addr, slot)
			if err != nil {
				return uint256.Int{}, err
			}
			s.original[key] = v
			s.current[key] = v
			return v, nil
		}
		return s.host.GetStorage(addr, slot)
	}

	v, ok := s.current[key]
	if !ok {
		v = uint256.Int{}
		s.current[key] = v
	}
	if _, seen := s.original[key]; !seen {
		s.original[key] = v
	}
	return v, nil
}

// SStore updates the current value of (addr, slot). original is set
// lazily if this is the first touch of the key this transaction.
func (s *Storage) SStore(addr common.Address, slot common.Hash, v uint256.Int) error {
	key := slotKey{addr, slot}
	if _, seen := s.original[key]; !seen {
		var orig uint256.Int
		if s.host != nil {
			o, err := s.host.GetStorage(addr, slot)
			if err != nil {
				return err
			}
			orig = o
		} else if cur, ok := s.current[key]; ok {
			orig = cur
		}
		s.original[key] = orig
	}
	if s.host != nil {
		if err := s.host.SetStorage(addr, slot, v); err != nil {
			return err
		}
	}
	s.current[key] = v
	return nil
}

// Current returns the current value without touching original,
// used internally by gas accounting that needs the pre-write value.
func (s *Storage) Current(addr common.Address, slot common.Hash) (uint256.Int, error) {
	if s.host != nil {
		return s.host.GetStorage(addr, slot)
	}
	return s.current[slotKey{addr, slot}], nil
}

// Original returns the value (addr, slot) had at the start of the
// transaction, populating it first if unseen (same semantics as
// SLoad, without the current-tier side effects SLoad performs).
func (s *Storage) Original(addr common.Address, slot common.Hash) (uint256.Int, error) {
	key := slotKey{addr, slot}
	if v, ok := s.original[key]; ok {
		return v, nil
	}
	v, err := s.Current(addr, slot)
	if err != nil {
		return uint256.Int{}, err
	}
	s.original[key] = v
	return v, nil
}

// TLoad/TStore implement EIP-1153 transient storage: contract-scoped,
// never delegated to a host, cleared at transaction end.
func (s *Storage) TLoad(addr common.Address, slot common.Hash) uint256.Int {
	return s.transient[slotKey{addr, slot}]
}

func (s *Storage) TStore(addr common.Address, slot common.Hash, v uint256.Int) {
	s.transient[slotKey{addr, slot}] = v
}

// ClearTransient empties the transient map at transaction end.
func (s *Storage) ClearTransient() {
	s.transient = make(map[slotKey]uint256.Int)
}

// StorageSnapshot is an immutable copy of the tracked keys' current
// and original values, taken before a nested call.
type StorageSnapshot struct {
	current   map[slotKey]uint256.Int
	original  map[slotKey]uint256.Int
	transient map[slotKey]uint256.Int
}

// Snapshot clones the tracked state. In host mode this still only
// clones the keys touched so far (the host itself holds the ground
// truth for everything else), matching spec §4.8's "host mode
// snapshots only the tracked keys".
func (s *Storage) Snapshot() *StorageSnapshot {
	snap := &StorageSnapshot{
		current:   make(map[slotKey]uint256.Int, len(s.current)),
		original:  make(map[slotKey]uint256.Int, len(s.original)),
		transient: make(map[slotKey]uint256.Int, len(s.transient)),
	}
	for k, v := range s.current {
		snap.current[k] = v
	}
	for k, v := range s.original {
		snap.original[k] = v
	}
	for k, v := range s.transient {
		snap.transient[k] = v
	}
	return snap
}

// Restore reverts current and transient tiers to a prior snapshot.
// original is a write-once, whole-of-transaction value per spec §3's
// invariant ("original never changes during a transaction once
// written") and is therefore NOT restored — once populated it stays,
// even across a reverted child call.
func (s *Storage) Restore(snap *StorageSnapshot, host Host) {
	if host != nil {
		// A key first touched after the snapshot goes back to the value
		// it had on first touch, which original recorded.
		for k := range s.current {
			if _, ok := snap.current[k]; !ok {
				_ = host.SetStorage(k.addr, k.slot, s.original[k])
			}
		}
		for k, v := range snap.current {
			_ = host.SetStorage(k.addr, k.slot, v)
		}
	}
	s.current = make(map[slotKey]uint256.Int, len(snap.current))
	for k, v := range snap.current {
		s.current[k] = v
	}
	s.transient = make(map[slotKey]uint256.Int, len(snap.transient))
	for k, v := range snap.transient {
		s.transient[k] = v
	}
}
