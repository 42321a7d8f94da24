package vm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// BlockContext carries the block-level values opcodes like COINBASE,
// NUMBER, TIMESTAMP, DIFFICULTY/PREVRANDAO, BASEFEE and BLOCKHASH read.
// It does not change across the nested calls of one transaction.
type BlockContext struct {
	Coinbase    common.Address
	GasLimit    uint64
	BlockNumber *big.Int
	Time        uint64
	Difficulty  *big.Int    // pre-merge PoW difficulty
	Random      *common.Hash // post-merge RANDAO mix, nil pre-Merge
	BaseFee     *big.Int    // EIP-1559, nil pre-London
	BlobBaseFee *big.Int    // EIP-4844, nil pre-Cancun

	// GetHash resolves BLOCKHASH for the last 256 ancestor blocks; nil
	// or out-of-range lookups return the zero hash (spec §4.4).
	GetHash func(n uint64) common.Hash
}

// TxContext carries the transaction-level values ORIGIN, GASPRICE and
// the EIP-4844/2930 fields read.
type TxContext struct {
	Origin     common.Address
	GasPrice   *big.Int
	BlobHashes []common.Hash
	AccessList types.AccessList
}

// journalEntry is one reversible mutation outside the Storage/
// AccessList abstractions (balance, nonce, code, created-account and
// self-destruct bookkeeping), undone in LIFO order on revert. Mirrors
// the teacher's go-ethereum ancestry's state journal, scaled down to
// what this module actually mutates.
type journalEntry interface {
	revert(evm *EVM)
}

type balanceChange struct {
	addr common.Address
	prev uint256.Int
}

func (c balanceChange) revert(evm *EVM) { _ = evm.host.SetBalance(c.addr, c.prev) }

type nonceChange struct {
	addr common.Address
	prev uint64
}

func (c nonceChange) revert(evm *EVM) { _ = evm.host.SetNonce(c.addr, c.prev) }

type codeChange struct {
	addr common.Address
	prev []byte
}

func (c codeChange) revert(evm *EVM) { _ = evm.host.SetCode(c.addr, c.prev) }

type createdAccountChange struct{ addr common.Address }

func (c createdAccountChange) revert(evm *EVM) { delete(evm.CreatedAccounts, c.addr) }

type selfDestructChange struct{ addr common.Address }

func (c selfDestructChange) revert(evm *EVM) { delete(evm.SelfDestructSet, c.addr) }

type refundChange struct{ prev uint64 }

func (c refundChange) revert(evm *EVM) { evm.Refund = c.prev }

// EVM bundles every piece of transaction-wide state the interpreter
// and call orchestrator share: block/tx context, the warm-set and
// storage engines, the account backend, accumulated logs and refund,
// and the bookkeeping EIP-6780 needs to know which accounts were
// created in this very transaction.
type EVM struct {
	Hardfork Hardfork
	ChainID  *big.Int
	Block    BlockContext
	TxCtx    TxContext

	Storage    *Storage
	AccessList *AccessList
	Logs       *LogCollector

	Refund          uint64
	CreatedAccounts map[common.Address]bool
	SelfDestructSet map[common.Address]common.Address // addr -> beneficiary

	Precompiles PrecompileSet
	Hooks       *Hooks

	Depth int

	host    Host
	table   *JumpTable
	journal []journalEntry

	// PendingRequest is set when a Host call returned errHostDataPending;
	// the orchestrator must stop cleanly and let the embedder resume
	// later with the same EVM (spec §5, §9).
	PendingRequest *hostRequest

	// suspended holds the one top-level frame CallOrContinue may park
	// mid-execution while PendingRequest is outstanding. Only the
	// outermost call can suspend this way: a pending Host answer raised
	// from a nested CALL/CREATE unwinds that call tree as an ordinary
	// fault instead, since resuming an arbitrarily deep recursive Go
	// call stack would need goroutines, which spec §5 rules out.
	suspended *suspendedCall

	callGasTemp uint64
}

type suspendedCall struct {
	frame *Frame
	snap  *stateSnapshot
}

// NewEVM constructs a fresh EVM for one transaction. A nil host falls
// back to an in-memory account store (spec §6's "no embedder" case).
func NewEVM(fork Hardfork, chainID *big.Int, block BlockContext, txCtx TxContext, host Host, precompiles PrecompileSet, hooks *Hooks) *EVM {
	if host == nil {
		host = newMemoryAccounts()
	}
	return &EVM{
		Hardfork:        fork,
		ChainID:         chainID,
		Block:           block,
		TxCtx:           txCtx,
		Storage:         NewHostStorage(host),
		AccessList:      NewAccessList(),
		Logs:            NewLogCollector(),
		CreatedAccounts: make(map[common.Address]bool),
		SelfDestructSet: make(map[common.Address]common.Address),
		Precompiles:     precompiles,
		Hooks:           hooks,
		host:            host,
		table:           newJumpTable(fork),
	}
}

func (evm *EVM) GetBalance(addr common.Address) (uint256.Int, error) { return evm.host.GetBalance(addr) }

func (evm *EVM) SetBalance(addr common.Address, v uint256.Int) error {
	prev, err := evm.host.GetBalance(addr)
	if err != nil {
		return err
	}
	evm.journal = append(evm.journal, balanceChange{addr, prev})
	return evm.host.SetBalance(addr, v)
}

func (evm *EVM) GetNonce(addr common.Address) (uint64, error) { return evm.host.GetNonce(addr) }

func (evm *EVM) SetNonce(addr common.Address, n uint64) error {
	prev, err := evm.host.GetNonce(addr)
	if err != nil {
		return err
	}
	evm.journal = append(evm.journal, nonceChange{addr, prev})
	return evm.host.SetNonce(addr, n)
}

func (evm *EVM) GetCode(addr common.Address) ([]byte, error) { return evm.host.GetCode(addr) }

func (evm *EVM) SetCode(addr common.Address, code []byte) error {
	prev, err := evm.host.GetCode(addr)
	if err != nil {
		return err
	}
	evm.journal = append(evm.journal, codeChange{addr, prev})
	return evm.host.SetCode(addr, code)
}

// MarkCreated records addr as created during this transaction, the
// gate EIP-6780 uses to decide whether SELFDESTRUCT still clears
// code/nonce/storage or only pays out (spec §9).
func (evm *EVM) MarkCreated(addr common.Address) {
	evm.CreatedAccounts[addr] = true
	evm.journal = append(evm.journal, createdAccountChange{addr})
}

// MarkSelfDestruct records addr as self-destructed with beneficiary,
// applied at transaction end by the runtime wrapper.
func (evm *EVM) MarkSelfDestruct(addr, beneficiary common.Address) {
	evm.SelfDestructSet[addr] = beneficiary
	evm.journal = append(evm.journal, selfDestructChange{addr})
}

// AddRefund increases the gas refund counter, journaled so a reverted
// call undoes any refund it accrued.
func (evm *EVM) AddRefund(amount uint64) {
	evm.journal = append(evm.journal, refundChange{evm.Refund})
	evm.Refund += amount
}

// SubRefund decreases the gas refund counter (e.g. SSTORE un-clearing
// a slot it previously cleared within the same transaction).
func (evm *EVM) SubRefund(amount uint64) {
	evm.journal = append(evm.journal, refundChange{evm.Refund})
	if amount > evm.Refund {
		evm.Refund = 0
		return
	}
	evm.Refund -= amount
}

// stateSnapshot is an opaque revert point covering every piece of
// mutable EVM state: the account journal, storage, access list, logs,
// refund counter and the created/self-destruct sets.
type stateSnapshot struct {
	journalLen int
	storage    *StorageSnapshot
	accessList *AccessListSnapshot
	logLen     int
	refund     uint64
}

// Snapshot captures a revert point before entering a nested call.
func (evm *EVM) Snapshot() *stateSnapshot {
	return &stateSnapshot{
		journalLen: len(evm.journal),
		storage:    evm.Storage.Snapshot(),
		accessList: evm.AccessList.Snapshot(),
		logLen:     evm.Logs.Len(),
		refund:     evm.Refund,
	}
}

// Finalize applies the transaction's accumulated SelfDestructSet
// (spec §4.6/§9): an account self-destructed this transaction that was
// also created this transaction (EIP-6780) has its code, nonce and
// storage wiped outright; from Cancun on, one self-destructed without
// being created this transaction keeps all three, having already had
// its balance paid out to the beneficiary by opSelfdestruct when
// SELFDESTRUCT ran. Before Cancun every self-destructed account is wiped.
// Call once after a top-level call finishes without reverting — a
// reverted call's own selfDestructChange journal entries already undo
// SelfDestructSet membership, so there's nothing left to finalize.
func (evm *EVM) Finalize() error {
	for addr := range evm.SelfDestructSet {
		if !evm.CreatedAccounts[addr] && evm.Hardfork.IsAtLeast(Cancun) {
			continue
		}
		if err := evm.host.SetCode(addr, nil); err != nil {
			return err
		}
		if err := evm.host.SetNonce(addr, 0); err != nil {
			return err
		}
		if clearer, ok := evm.host.(StorageClearer); ok {
			if err := clearer.ClearStorage(addr); err != nil {
				return err
			}
		}
	}
	return nil
}

// RevertToSnapshot undoes every mutation made since snap was taken.
func (evm *EVM) RevertToSnapshot(snap *stateSnapshot) {
	for i := len(evm.journal) - 1; i >= snap.journalLen; i-- {
		evm.journal[i].revert(evm)
	}
	evm.journal = evm.journal[:snap.journalLen]
	evm.Storage.Restore(snap.storage, evm.host)
	evm.AccessList.Restore(snap.accessList)
	evm.Logs.Truncate(snap.logLen)
	evm.Refund = snap.refund
}
