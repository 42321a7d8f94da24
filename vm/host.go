package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Host is the optional embedder-supplied state backend (spec §6). When
// a Storage is constructed without one, Storage falls back to its own
// in-memory maps.
type Host interface {
	GetBalance(addr common.Address) (uint256.Int, error)
	SetBalance(addr common.Address, v uint256.Int) error
	GetNonce(addr common.Address) (uint64, error)
	SetNonce(addr common.Address, n uint64) error
	GetCode(addr common.Address) ([]byte, error)
	SetCode(addr common.Address, code []byte) error
	GetStorage(addr common.Address, slot common.Hash) (uint256.Int, error)
	SetStorage(addr common.Address, slot common.Hash, v uint256.Int) error
}

// delegationPrefix is the EIP-7702 designator: 0xEF 0x01 0x00.
var delegationPrefix = [3]byte{0xEF, 0x01, 0x00}

// resolveDelegatedCode inspects code retrieved for an account and,
// if it is exactly 23 bytes and begins with the EIP-7702 delegation
// designator, fetches and returns the delegated target's code instead
// (one level of indirection, no further recursion per spec §6).
func resolveDelegatedCode(code []byte, fetch func(common.Address) ([]byte, error)) ([]byte, error) {
	if len(code) == 23 && code[0] == delegationPrefix[0] && code[1] == delegationPrefix[1] && code[2] == delegationPrefix[2] {
		target := common.BytesToAddress(code[3:23])
		return fetch(target)
	}
	return code, nil
}

// DelegationTarget reports the delegated address for an EIP-7702
// designator and whether code actually is one.
func DelegationTarget(code []byte) (common.Address, bool) {
	if len(code) == 23 && code[0] == delegationPrefix[0] && code[1] == delegationPrefix[1] && code[2] == delegationPrefix[2] {
		return common.BytesToAddress(code[3:23]), true
	}
	return common.Address{}, false
}

// hostRequestKind enumerates the asynchronous data dependencies a Host
// can signal instead of answering synchronously (spec §5).
type hostRequestKind int

const (
	needStorage hostRequestKind = iota
	needBalance
	needCode
	needNonce
)

// hostRequest is the single outstanding async request token. While one
// is pending, the orchestrator preserves frame stack / access list /
// storage snapshots verbatim (spec §5, §9) so CallOrContinue's next
// reply resumes as if uninterrupted.
type hostRequest struct {
	kind hostRequestKind
	addr common.Address
	slot common.Hash // only for needStorage
}

// errHostDataPending is returned by Storage/EVM accessors when a host
// round-trip is outstanding; callers surface it up as a "need async
// data" condition rather than a terminal error.
type errHostDataPending struct {
	req hostRequest
}

func (e *errHostDataPending) Error() string { return "host data pending" }
