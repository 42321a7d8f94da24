package vm

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestAccessListWarmsOnFirstTouch(t *testing.T) {
	al := NewAccessList()
	addr := common.HexToAddress("0x1")

	if al.ContainsAddress(addr) {
		t.Fatal("address must start cold")
	}
	if cost := al.AccessAddress(addr); cost != ColdAccountAccessCostEIP2929 {
		t.Fatalf("first access cost = %d, want cold cost %d", cost, ColdAccountAccessCostEIP2929)
	}
	if cost := al.AccessAddress(addr); cost != WarmStorageReadCostEIP2929 {
		t.Fatalf("second access cost = %d, want warm cost %d", cost, WarmStorageReadCostEIP2929)
	}
}

func TestAccessListSlotWarmsOwningAddress(t *testing.T) {
	al := NewAccessList()
	addr := common.HexToAddress("0x1")
	slot := common.Hash{1}

	al.AccessStorageSlot(addr, slot)
	if !al.ContainsAddress(addr) {
		t.Fatal("accessing a slot must warm its owning address")
	}
	if !al.ContainsSlot(addr, slot) {
		t.Fatal("slot must be warm after access")
	}
}

func TestAccessListRestoreUndoesWarmingSinceSnapshot(t *testing.T) {
	al := NewAccessList()
	addrBefore := common.HexToAddress("0x1")
	addrAfter := common.HexToAddress("0x2")

	al.AccessAddress(addrBefore)
	snap := al.Snapshot()
	al.AccessAddress(addrAfter)

	al.Restore(snap)
	if al.ContainsAddress(addrAfter) {
		t.Fatal("restore must undo warming done after the snapshot")
	}
	if !al.ContainsAddress(addrBefore) {
		t.Fatal("restore must keep warming done before the snapshot")
	}
}
