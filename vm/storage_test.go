package vm

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

func TestStorageSLoadSStoreRoundTrip(t *testing.T) {
	s := NewHostStorage(newMemoryAccounts())
	addr := common.HexToAddress("0x1")
	slot := common.Hash{1}

	if err := s.SStore(addr, slot, *uint256.NewInt(42)); err != nil {
		t.Fatal(err)
	}
	got, err := s.SLoad(addr, slot)
	if err != nil {
		t.Fatal(err)
	}
	if got.Uint64() != 42 {
		t.Fatalf("SLoad = %d, want 42", got.Uint64())
	}
}

func TestStorageOriginalIsWriteOnce(t *testing.T) {
	s := NewHostStorage(newMemoryAccounts())
	addr := common.HexToAddress("0x1")
	slot := common.Hash{1}

	orig, err := s.Original(addr, slot)
	if err != nil {
		t.Fatal(err)
	}
	if !orig.IsZero() {
		t.Fatalf("original of untouched slot = %d, want 0", orig.Uint64())
	}

	if err := s.SStore(addr, slot, *uint256.NewInt(99)); err != nil {
		t.Fatal(err)
	}

	orig2, err := s.Original(addr, slot)
	if err != nil {
		t.Fatal(err)
	}
	if !orig2.IsZero() {
		t.Fatalf("original must stay at its first-seen value (0) even after SStore, got %d", orig2.Uint64())
	}
}

func TestTransientStorageRoundTripAndIsolationFromPersistent(t *testing.T) {
	s := NewHostStorage(newMemoryAccounts())
	addr := common.HexToAddress("0x1")
	slot := common.Hash{1}

	s.TStore(addr, slot, *uint256.NewInt(7))
	if v := s.TLoad(addr, slot); v.Uint64() != 7 {
		t.Fatalf("TLoad = %d, want 7", v.Uint64())
	}

	persisted, err := s.SLoad(addr, slot)
	if err != nil {
		t.Fatal(err)
	}
	if !persisted.IsZero() {
		t.Fatal("transient writes must not leak into persistent storage")
	}

	s.ClearTransient()
	if v := s.TLoad(addr, slot); !v.IsZero() {
		t.Fatalf("transient storage must be empty after ClearTransient, got %d", v.Uint64())
	}
}

func TestStorageRestoreRevertsCurrentButKeepsOriginal(t *testing.T) {
	host := newMemoryAccounts()
	s := NewHostStorage(host)
	addr := common.HexToAddress("0x1")
	slot := common.Hash{1}

	if err := s.SStore(addr, slot, *uint256.NewInt(1)); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()

	if err := s.SStore(addr, slot, *uint256.NewInt(2)); err != nil {
		t.Fatal(err)
	}

	s.Restore(snap, host)

	got, err := s.SLoad(addr, slot)
	if err != nil {
		t.Fatal(err)
	}
	if got.Uint64() != 1 {
		t.Fatalf("current after restore = %d, want 1", got.Uint64())
	}
}
