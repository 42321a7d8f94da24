package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type slotKey struct {
	addr common.Address
	slot common.Hash
}

// AccessList implements the EIP-2929 warm/cold address and storage-slot
// tracking. Snapshots are cheap copy-on-snapshot clones of the two
// underlying sets.
type AccessList struct {
	addresses map[common.Address]struct{}
	slots     map[slotKey]struct{}
}

// NewAccessList returns an empty access list.
func NewAccessList() *AccessList {
	return &AccessList{
		addresses: make(map[common.Address]struct{}),
		slots:     make(map[slotKey]struct{}),
	}
}

// ContainsAddress reports whether addr is already warm.
func (al *AccessList) ContainsAddress(addr common.Address) bool {
	_, ok := al.addresses[addr]
	return ok
}

// ContainsSlot reports whether (addr, slot) is already warm. A warm
// slot always implies its owning address is warm too.
func (al *AccessList) ContainsSlot(addr common.Address, slot common.Hash) bool {
	_, ok := al.slots[slotKey{addr, slot}]
	return ok
}

// AccessAddress marks addr warm and returns the gas cost: cold on
// first touch, warm thereafter (spec §4.4).
func (al *AccessList) AccessAddress(addr common.Address) uint64 {
	if al.ContainsAddress(addr) {
		return WarmStorageReadCostEIP2929
	}
	al.addresses[addr] = struct{}{}
	return ColdAccountAccessCostEIP2929
}

// AccessStorageSlot marks (addr, slot) warm (and addr warm as a side
// effect) and returns the gas cost: cold sload on first touch, warm
// thereafter.
func (al *AccessList) AccessStorageSlot(addr common.Address, slot common.Hash) uint64 {
	al.addresses[addr] = struct{}{}
	if al.ContainsSlot(addr, slot) {
		return WarmStorageReadCostEIP2929
	}
	al.slots[slotKey{addr, slot}] = struct{}{}
	return ColdSloadCostEIP2929
}

// PreWarmAddresses marks every address in list warm without charging
// gas, used to seed precompiles, the tx sender/recipient, and
// coinbase at transaction start (EIP-2929/3651).
func (al *AccessList) PreWarmAddresses(list []common.Address) {
	for _, a := range list {
		al.addresses[a] = struct{}{}
	}
}

// PreWarmFromAccessList seeds warm state from an EIP-2930 access list
// supplied by the caller's transaction.
func (al *AccessList) PreWarmFromAccessList(list types.AccessList) {
	for _, tuple := range list {
		al.addresses[tuple.Address] = struct{}{}
		for _, key := range tuple.StorageKeys {
			al.slots[slotKey{tuple.Address, key}] = struct{}{}
		}
	}
}

// AccessListSnapshot is an immutable copy of an AccessList's state,
// taken before a nested call, used to restore on revert.
type AccessListSnapshot struct {
	addresses map[common.Address]struct{}
	slots     map[slotKey]struct{}
}

// Snapshot clones the current warm sets.
func (al *AccessList) Snapshot() *AccessListSnapshot {
	snap := &AccessListSnapshot{
		addresses: make(map[common.Address]struct{}, len(al.addresses)),
		slots:     make(map[slotKey]struct{}, len(al.slots)),
	}
	for a := range al.addresses {
		snap.addresses[a] = struct{}{}
	}
	for s := range al.slots {
		snap.slots[s] = struct{}{}
	}
	return snap
}

// Restore replaces the current warm sets with a prior snapshot's
// contents. The snapshot itself is left untouched so it can be reused
// (e.g. if a caller restores twice).
func (al *AccessList) Restore(snap *AccessListSnapshot) {
	al.addresses = make(map[common.Address]struct{}, len(snap.addresses))
	for a := range snap.addresses {
		al.addresses[a] = struct{}{}
	}
	al.slots = make(map[slotKey]struct{}, len(snap.slots))
	for s := range snap.slots {
		al.slots[s] = struct{}{}
	}
}
