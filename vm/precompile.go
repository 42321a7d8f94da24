package vm

import "github.com/ethereum/go-ethereum/common"

// PrecompiledContract is the call convention a precompile is invoked
// with: required gas for a given input, and the computation itself.
// evmcore ships no bodies (spec §1: precompile implementations are an
// external collaborator, interfaced but not specified); the registry
// below only carries the hardfork-gated address set. The call
// orchestrator dispatches to a precompile only when a body is installed
// in the PrecompileSet given to NewEVM; any other address with empty
// code succeeds with empty output (spec §4.8 step 5). An embedder wires
// real implementations in by populating that map.
type PrecompiledContract interface {
	RequiredGas(input []byte) uint64
	Run(input []byte) ([]byte, error)
}

// PrecompileAddress is the big-endian byte value of a precompile's
// address, e.g. 1 for ECRECOVER.
type PrecompileAddress = byte

// PrecompileAddresses returns the set of precompile addresses live at
// fork, per spec §4.8 step 5: 0x01..0x09 for every fork before Cancun,
// 0x01..0x0A from Cancun (adds KZG point evaluation at 0x0A), and
// 0x01..0x12 from Prague (adds the BLS12-381 operations).
func PrecompileAddresses(fork Hardfork) []common.Address {
	var hi byte
	switch {
	case fork.IsAtLeast(Prague):
		hi = 0x12
	case fork.IsAtLeast(Cancun):
		hi = 0x0A
	default:
		hi = 0x09
	}
	addrs := make([]common.Address, 0, hi)
	for i := byte(1); i <= hi; i++ {
		var a common.Address
		a[19] = i
		addrs = append(addrs, a)
	}
	return addrs
}

// PrecompileSet is a hardfork-scoped registry of installed
// PrecompiledContract bodies, empty by default.
type PrecompileSet map[common.Address]PrecompiledContract

// IsPrecompile reports whether addr names a precompile at the given
// fork, independent of whether a body is actually installed in a
// PrecompileSet. The call orchestrator does not consult it: an in-range
// address with no installed body is treated like any other account, so
// with empty code it succeeds with empty output.
func IsPrecompile(addr common.Address, fork Hardfork) bool {
	for _, a := range PrecompileAddresses(fork) {
		if a == addr {
			return true
		}
	}
	return false
}
