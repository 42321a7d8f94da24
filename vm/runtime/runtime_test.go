package runtime

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ethcore-labs/evmcore/vm"
)

func TestExecuteReturnsValue(t *testing.T) {
	code := []byte{
		byte(vm.PUSH1), 7,
		byte(vm.PUSH0), byte(vm.MSTORE),
		byte(vm.PUSH1), 0x20, byte(vm.PUSH0), byte(vm.RETURN),
	}
	addr := common.HexToAddress("0x2")

	result, err := Execute(addr, nil, code, nil, &Config{GasLimit: 100_000})
	if err != nil {
		t.Fatal(err)
	}
	if result.Reverted {
		t.Fatal("unexpected revert")
	}
	got := new(big.Int).SetBytes(result.Ret)
	if got.Cmp(big.NewInt(7)) != 0 {
		t.Fatalf("result = %s, want 7", got)
	}
}

func TestExecuteGasUsedIncludesIntrinsicGas(t *testing.T) {
	code := []byte{byte(vm.STOP)}
	addr := common.HexToAddress("0x2")
	input := []byte{0x01, 0x02, 0x00}

	result, err := Execute(addr, nil, code, input, &Config{GasLimit: 100_000})
	if err != nil {
		t.Fatal(err)
	}
	if result.IntrinsicGas == 0 {
		t.Fatal("expected nonzero intrinsic gas for nonempty calldata")
	}
	if result.GasUsed < result.IntrinsicGas {
		t.Fatalf("gasUsed (%d) must be at least intrinsicGas (%d)", result.GasUsed, result.IntrinsicGas)
	}
}

func TestExecuteSeedsOriginBalanceOnlyWhenZero(t *testing.T) {
	host := vm.NewMemoryHost()
	origin := common.HexToAddress("0x1")
	addr := common.HexToAddress("0x2")

	if err := host.SetBalance(origin, *uint256.NewInt(5)); err != nil {
		t.Fatal(err)
	}

	code := []byte{byte(vm.STOP)}
	cfg := &Config{GasLimit: 100_000, Origin: origin, Host: host}
	if _, err := Execute(addr, big.NewInt(1000), code, nil, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := host.GetBalance(origin)
	if err != nil {
		t.Fatal(err)
	}
	if got.Uint64() != 5 {
		t.Fatalf("origin balance = %d, want unchanged 5 (already nonzero)", got.Uint64())
	}
}

func TestExecuteRevertIsReportedNotErrored(t *testing.T) {
	code := []byte{byte(vm.PUSH0), byte(vm.PUSH0), byte(vm.REVERT)}
	addr := common.HexToAddress("0x2")

	result, err := Execute(addr, nil, code, nil, &Config{GasLimit: 100_000})
	if err != nil {
		t.Fatalf("a REVERT must surface as Reverted, not an error: %v", err)
	}
	if !result.Reverted {
		t.Fatal("expected Reverted = true")
	}
}
