// Command evmrun simulates a single call against
// either a live chain node (via hostrpc) or a throwaway in-memory
// account, mirroring the teacher's example.go entry points but driven
// by real flags instead of hardcoded addresses.
package main

import (
	"encoding/json"
	"flag"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"

	"github.com/ethcore-labs/evmcore/hostrpc"
	"github.com/ethcore-labs/evmcore/simulator"
	"github.com/ethcore-labs/evmcore/vm"
)

func main() {
	var (
		rpcEndpoint = flag.String("rpc", "", "JSON-RPC endpoint to read state from (empty = in-memory only)")
		blockNumber = flag.String("block", "", "block number to read state at, hex or decimal (empty = latest)")
		from        = flag.String("from", "0x0000000000000000000000000000000000000000", "caller address")
		to          = flag.String("to", "", "callee address")
		codeHex     = flag.String("code", "", "bytecode to install at --to before calling, hex-encoded (0x-prefixed)")
		inputHex    = flag.String("input", "0x", "calldata, hex-encoded")
		value       = flag.String("value", "0", "call value in wei, decimal")
		gasLimit    = flag.Uint64("gas", 300_000, "gas limit")
	)
	flag.Parse()

	if *to == "" {
		log.Crit("--to is required")
	}

	var host vm.Host
	if *rpcEndpoint != "" {
		host = hostrpc.NewClient(*rpcEndpoint, normalizeBlock(*blockNumber))
	}

	sim, err := simulator.NewSimulator(host)
	if err != nil {
		log.Crit("failed to build simulator", "error", err)
	}

	val, ok := new(big.Int).SetString(*value, 10)
	if !ok {
		log.Crit("invalid --value", "value", *value)
	}

	simulation := simulator.Simulation{
		From:     common.HexToAddress(*from),
		To:       common.HexToAddress(*to),
		GasLimit: *gasLimit,
		GasPrice: big.NewInt(0),
		Value:    val,
		Input:    hexutil.MustDecode(*inputHex),
	}
	if *codeHex != "" {
		simulation.Code = hexutil.MustDecode(*codeHex)
	}

	result, err := sim.Simulate(simulation)
	if err != nil {
		log.Crit("simulation failed", "error", err)
	}

	out, _ := json.MarshalIndent(map[string]interface{}{
		"returnData": hexutil.Encode(result.ReturnedData),
		"reverted":   result.Reverted,
		"gasUsed":    result.GasUsed,
	}, "", "  ")
	log.Info("simulation complete", "result", string(out))
}

func normalizeBlock(s string) string {
	if s == "" {
		return "latest"
	}
	if strings.HasPrefix(s, "0x") {
		return s
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return "latest"
	}
	return hexutil.EncodeBig(n)
}
