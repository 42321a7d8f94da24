package simulator

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ethcore-labs/evmcore/vm"
)

func TestSimulate(t *testing.T) {
	code := []byte{
		byte(vm.PUSH0), byte(vm.CALLDATALOAD),
		byte(vm.PUSH0), byte(vm.SSTORE),
		byte(vm.PUSH0), byte(vm.SLOAD),
		byte(vm.PUSH0), byte(vm.MSTORE),
		byte(vm.PUSH1), byte(0x20), byte(vm.PUSH0), byte(vm.RETURN),
	}

	sim, err := NewSimulator(nil)
	if err != nil {
		t.Fatal(err)
	}

	contractAddr := common.HexToAddress("0x0000000000000000000000000000000000000011")

	simulation := Simulation{
		From:        common.HexToAddress("0x0000000000000000000000000000000000000000"),
		To:          contractAddr,
		Code:        code,
		BlockNumber: big.NewInt(1),
		GasLimit:    300000,
		GasPrice:    big.NewInt(0),
		Value:       big.NewInt(0),
		Input:       hexutil.MustDecode(`0x0000000000000000000000000000000000000000000000000000000000000020`),
	}

	result, err := sim.Simulate(simulation)
	if err != nil {
		t.Fatal(err)
	}
	if result.Reverted {
		t.Fatal("unexpected revert")
	}

	val := new(big.Int).SetBytes(result.ReturnedData)
	if val.Cmp(big.NewInt(32)) != 0 {
		t.Fatalf("value: %s, want 32", val)
	}
}

// TestSimulateBundle runs the same contract three times in sequence,
// each call adding its input to the slot the previous call left behind
// (1, then 1+2=3, then 3+3=6), proving the bundle shares one Host
// across calls instead of resetting state between them.
func TestSimulateBundle(t *testing.T) {
	code := []byte{
		byte(vm.PUSH0), byte(vm.CALLDATALOAD),
		byte(vm.PUSH0), byte(vm.SLOAD),
		byte(vm.ADD),
		byte(vm.PUSH0), byte(vm.SSTORE),
		byte(vm.PUSH0), byte(vm.SLOAD),
		byte(vm.PUSH0), byte(vm.MSTORE),
		byte(vm.PUSH1), byte(0x20), byte(vm.PUSH0), byte(vm.RETURN),
	}

	sim, err := NewSimulator(nil)
	if err != nil {
		t.Fatal(err)
	}

	contractAddr := common.HexToAddress("0x0000000000000000000000000000000000000011")
	from := common.HexToAddress("0x0000000000000000000000000000000000000000")

	inputs := []string{
		"0x0000000000000000000000000000000000000000000000000000000000000001",
		"0x0000000000000000000000000000000000000000000000000000000000000002",
		"0x0000000000000000000000000000000000000000000000000000000000000003",
	}
	simulations := make([]Simulation, len(inputs))
	for i, in := range inputs {
		simulations[i] = Simulation{
			From:        from,
			To:          contractAddr,
			Code:        code,
			BlockNumber: big.NewInt(1),
			GasLimit:    300000,
			GasPrice:    big.NewInt(0),
			Value:       big.NewInt(0),
			Input:       hexutil.MustDecode(in),
		}
	}

	results, err := sim.SimulateBundle(simulations)
	if err != nil {
		t.Fatal(err)
	}

	want := []int64{1, 3, 6}
	for i, r := range results {
		if r.Reverted {
			t.Fatalf("result %d: unexpected revert", i)
		}
		val := new(big.Int).SetBytes(r.ReturnedData)
		if val.Cmp(big.NewInt(want[i])) != 0 {
			t.Fatalf("result %d: value %s, want %d", i, val, want[i])
		}
	}
}
