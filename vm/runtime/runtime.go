// Package runtime is the thin per-call wrapper around vm.EVM: it fills
// in hardfork-appropriate defaults (mirroring the teacher's own
// SetDefaults), builds the BlockContext/TxContext the interpreter
// reads, and drives one CallOrContinue to completion.
package runtime

import (
	"errors"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"

	"github.com/ethcore-labs/evmcore/vm"
)

// Config carries the block/transaction-level values a simulated call
// needs, independent of the code and calldata themselves. The teacher
// built this around go-ethereum's params.ChainConfig and core/vm.Config;
// this module only needs a single Hardfork value (its own JumpTable is
// already keyed by fork, not by per-EIP block-number fields) plus the
// BlockContext/TxContext fields vm.EVM actually reads.
type Config struct {
	Fork        vm.Hardfork
	ChainID     *big.Int
	Origin      common.Address
	Coinbase    common.Address
	BlockNumber *big.Int
	Time        uint64
	Difficulty  *big.Int
	Random      *common.Hash
	GasLimit    uint64
	GasPrice    *big.Int
	Value       *big.Int
	BaseFee     *big.Int
	BlobBaseFee *big.Int
	BlobHashes  []common.Hash

	Host  vm.Host // nil falls back to vm's in-memory account store
	Hooks *vm.Hooks

	GetHashFn func(n uint64) common.Hash
}

// SetDefaults fills every unset Config field the way the teacher's
// SetDefaults filled its go-ethereum ChainConfig/vm.Config: a fork
// defaulting to the latest this module knows (only when Fork, ChainID
// and BlockNumber are all unset, since Fork's zero value is Frontier),
// Shanghai/Cancun-era
// baseline values for BaseFee/BlobBaseFee, and a GetHashFn that derives
// a deterministic pseudo-hash from the block number (useful for
// simulations that never touch BLOCKHASH against a real chain).
func SetDefaults(cfg *Config) {
	if cfg.Fork == 0 && cfg.ChainID == nil && cfg.BlockNumber == nil {
		cfg.Fork = vm.Prague
	}
	if cfg.ChainID == nil {
		cfg.ChainID = big.NewInt(1)
	}
	if cfg.Difficulty == nil {
		cfg.Difficulty = new(big.Int)
	}
	if cfg.GasLimit == 0 {
		cfg.GasLimit = math.MaxUint64
	}
	if cfg.GasPrice == nil {
		cfg.GasPrice = new(big.Int)
	}
	if cfg.Value == nil {
		cfg.Value = new(big.Int)
	}
	if cfg.BlockNumber == nil {
		cfg.BlockNumber = new(big.Int)
	}
	if cfg.GetHashFn == nil {
		cfg.GetHashFn = func(n uint64) common.Hash {
			return common.BytesToHash(crypto.Keccak256([]byte(new(big.Int).SetUint64(n).String())))
		}
	}
	if cfg.BaseFee == nil {
		cfg.BaseFee = big.NewInt(params.InitialBaseFee)
	}
	if cfg.BlobBaseFee == nil {
		cfg.BlobBaseFee = big.NewInt(params.BlobTxMinBlobGasprice)
	}
	if cfg.Random == nil {
		cfg.Random = &common.Hash{}
	}
}

// ExecutionResult is what one Execute call produced: the return/revert
// payload, gas accounting, and (non-fatal) revert flag. Unlike the
// teacher's ExecutionResult, there is no RecordToInitiateState: that
// existed to seed a temporary go-ethereum StateDB with only the
// accounts a run touched; this module's vm.Host (hostrpc or in-memory)
// already resolves state lazily, so there is nothing to pre-record.
type ExecutionResult struct {
	Ret          []byte
	Reverted     bool
	GasUsed      uint64
	Refund       uint64
	IntrinsicGas uint64
}

// intrinsicGas is the flat, pre-execution cost of a call's calldata
// (EIP-2028 non-zero/zero byte pricing plus the base TxGas), independent
// of what the code itself goes on to spend. Reimplemented locally
// rather than imported from go-ethereum/core, since that package pulls
// in the full block-processing/state-transition machinery this module
// has no other use for.
func intrinsicGas(data []byte, isCreate bool) uint64 {
	gas := params.TxGas
	if isCreate {
		gas = params.TxGasContractCreation
	}
	if len(data) == 0 {
		return gas
	}
	var nz uint64
	for _, b := range data {
		if b != 0 {
			nz++
		}
	}
	z := uint64(len(data)) - nz
	gas += nz * params.TxDataNonZeroGasEIP2028
	gas += z * params.TxDataZeroGas
	return gas
}

// Execute runs code at address with input as calldata, crediting origin
// with originBalance first if it is currently zero (mirrors the
// teacher's "only seed a balance the backing state doesn't already
// have" behavior, generalized from a go-ethereum StateDB to vm.Host).
func Execute(address common.Address, originBalance *big.Int, code, input []byte, cfg *Config) (*ExecutionResult, error) {
	if cfg == nil {
		cfg = new(Config)
	}
	SetDefaults(cfg)

	block := vm.BlockContext{
		Coinbase:    cfg.Coinbase,
		GasLimit:    cfg.GasLimit,
		BlockNumber: cfg.BlockNumber,
		Time:        cfg.Time,
		Difficulty:  cfg.Difficulty,
		Random:      cfg.Random,
		BaseFee:     cfg.BaseFee,
		BlobBaseFee: cfg.BlobBaseFee,
		GetHash:     cfg.GetHashFn,
	}
	txCtx := vm.TxContext{
		Origin:     cfg.Origin,
		GasPrice:   cfg.GasPrice,
		BlobHashes: cfg.BlobHashes,
	}

	evm := vm.NewEVM(cfg.Fork, cfg.ChainID, block, txCtx, cfg.Host, nil, cfg.Hooks)

	if originBalance != nil && originBalance.Sign() > 0 {
		existing, err := evm.GetBalance(cfg.Origin)
		if err != nil {
			return nil, err
		}
		if existing.IsZero() {
			bal, overflow := uint256.FromBig(originBalance)
			if overflow {
				return nil, errors.New("runtime: origin balance overflows uint256")
			}
			if err := evm.SetBalance(cfg.Origin, *bal); err != nil {
				return nil, err
			}
		}
	}

	if len(code) > 0 {
		if err := evm.SetCode(address, code); err != nil {
			return nil, err
		}
	}

	value, overflow := uint256.FromBig(cfg.Value)
	if overflow {
		return nil, errors.New("runtime: call value overflows uint256")
	}

	result := evm.CallOrContinue(vm.CallParams{
		Kind:    vm.CallKindCall,
		Caller:  cfg.Origin,
		Address: address,
		Value:   *value,
		Input:   input,
		Gas:     int64(cfg.GasLimit),
	})
	if result.Pending {
		return nil, errors.New("runtime: execution suspended on a host round-trip the runtime wrapper cannot resume on its own; drive evm.CallOrContinue directly")
	}
	if result.Err != nil {
		return nil, result.Err
	}

	// A reverted top-level call already had its SelfDestructSet entries
	// undone by the revert itself, so only a non-reverted call needs its
	// EIP-6780 deletions committed.
	if !result.Reverted {
		if err := evm.Finalize(); err != nil {
			return nil, err
		}
	}

	inGas := intrinsicGas(input, false)
	gasUsed := cfg.GasLimit - uint64(result.GasLeft) + inGas

	return &ExecutionResult{
		Ret:          result.ReturnData,
		Reverted:     result.Reverted,
		GasUsed:      gasUsed,
		Refund:       evm.Refund,
		IntrinsicGas: inGas,
	}, nil
}
