// Package simulator drives vm/runtime.Execute for one transaction or a
// sequential bundle, the way the teacher's Simulator drove a
// go-ethereum StateDB-backed runtime.Execute. Where the teacher needed
// a two-pass access-list warm-up and a temporary, re-committed StateDB
// to avoid importing a remote account's entire storage trie, this
// module's vm.Host (hostrpc.Client or the in-memory default) already
// resolves state lazily on first touch and caches it write-through, so
// one pass and one shared Host suffice.
package simulator

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ethcore-labs/evmcore/vm"
	"github.com/ethcore-labs/evmcore/vm/runtime"
)

// Simulation describes one call to simulate: either against code
// supplied directly, or (when Code is empty) whatever code the backing
// Host already has for To.
type Simulation struct {
	From        common.Address
	To          common.Address
	BlockNumber *big.Int
	GasLimit    uint64
	GasPrice    *big.Int
	Value       *big.Int
	Input       []byte
	Code        []byte
	Fork        vm.Hardfork
}

// Simulator runs Simulations against a shared Host. A nil Host falls
// back to vm's own in-memory account store, e.g. for tests that don't
// want a live RPC endpoint.
type Simulator struct {
	Host  vm.Host
	Hooks *vm.Hooks
}

// SimulationResult is what running one Simulation produced.
type SimulationResult struct {
	ReturnedData []byte
	Reverted     bool
	GasUsed      uint64
	GasLimit     uint64
}

// NewSimulator builds a Simulator backed by host. Passing nil gets a
// fresh in-memory Host rather than leaving Host nil on the struct: a
// bundle's calls must all share the very same Host instance to see
// each other's mutations, and vm.NewEVM would otherwise hand each call
// its own throwaway one.
func NewSimulator(host vm.Host) (*Simulator, error) {
	if host == nil {
		host = vm.NewMemoryHost()
	}
	return &Simulator{Host: host}, nil
}

// Simulate runs one transaction against the Simulator's Host.
func (s *Simulator) Simulate(sim Simulation) (*SimulationResult, error) {
	cfg := s.configFromSimulation(sim)

	var originBalance *big.Int
	if sim.Value != nil && sim.Value.Sign() > 0 {
		originBalance = sim.Value
	}

	result, err := runtime.Execute(sim.To, originBalance, sim.Code, sim.Input, cfg)
	if err != nil {
		return nil, err
	}

	return &SimulationResult{
		ReturnedData: result.Ret,
		Reverted:     result.Reverted,
		GasUsed:      result.GasUsed,
		GasLimit:     sim.GasLimit,
	}, nil
}

// SimulateBundle runs simulations in order against the Simulator's
// Host, each seeing every earlier simulation's mutations (balances,
// code, storage) the way a block's transactions see each other's
// effects. There is nothing to commit/reopen between calls: the Host
// itself is the shared, mutable state.
func (s *Simulator) SimulateBundle(simulations []Simulation) ([]*SimulationResult, error) {
	results := make([]*SimulationResult, len(simulations))
	for i, sim := range simulations {
		result, err := s.Simulate(sim)
		if err != nil {
			return nil, err
		}
		results[i] = result
	}
	return results, nil
}

func (s *Simulator) configFromSimulation(sim Simulation) *runtime.Config {
	fork := sim.Fork
	if fork == 0 {
		fork = vm.Prague
	}
	return &runtime.Config{
		Fork:        fork,
		Origin:      sim.From,
		BlockNumber: sim.BlockNumber,
		GasLimit:    sim.GasLimit,
		GasPrice:    sim.GasPrice,
		Value:       sim.Value,
		Host:        s.Host,
		Hooks:       s.Hooks,
	}
}
