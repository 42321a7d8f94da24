package vm

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

func newTestEVM() *EVM {
	block := BlockContext{
		BlockNumber: big.NewInt(1),
		GasLimit:    30_000_000,
		Difficulty:  new(big.Int),
		BaseFee:     big.NewInt(0),
		GetHash:     func(n uint64) common.Hash { return common.Hash{} },
	}
	txCtx := TxContext{GasPrice: big.NewInt(0)}
	return NewEVM(Prague, big.NewInt(1), block, txCtx, nil, nil, nil)
}

func deploy(t *testing.T, evm *EVM, caller common.Address, code []byte) common.Address {
	t.Helper()
	res := evm.CreateTop(caller, uint256.Int{}, 1_000_000, code)
	if res.Err != nil {
		t.Fatalf("deploy failed: %v", res.Err)
	}
	return res.Address
}

// TestBasicArithmeticAndReturn runs 3 + 4, stores it, and returns it.
func TestBasicArithmeticAndReturn(t *testing.T) {
	evm := newTestEVM()
	caller := common.HexToAddress("0x1")
	contract := common.HexToAddress("0x2")

	code := []byte{
		byte(PUSH1), 3,
		byte(PUSH1), 4,
		byte(ADD),
		byte(PUSH0), byte(MSTORE),
		byte(PUSH1), 0x20, byte(PUSH0), byte(RETURN),
	}
	if err := evm.SetCode(contract, code); err != nil {
		t.Fatal(err)
	}

	res := evm.CallOrContinue(CallParams{
		Kind: CallKindCall, Caller: caller, Address: contract, Gas: 100_000,
	})
	if res.Err != nil {
		t.Fatalf("call failed: %v", res.Err)
	}
	if res.Reverted {
		t.Fatal("unexpected revert")
	}
	got := new(big.Int).SetBytes(res.ReturnData)
	if got.Cmp(big.NewInt(7)) != 0 {
		t.Fatalf("result = %s, want 7", got)
	}
}

// TestInvalidJumpFaults checks JUMP to a non-JUMPDEST position faults
// rather than silently wrapping or landing mid-PUSH-immediate.
func TestInvalidJumpFaults(t *testing.T) {
	evm := newTestEVM()
	caller := common.HexToAddress("0x1")
	contract := common.HexToAddress("0x2")

	// PUSH1 0x04; JUMP; PUSH1 0x99 (byte 0x99 squats where JUMP targets,
	// inside a PUSH1's immediate, so it must never validate).
	code := []byte{
		byte(PUSH1), 0x04,
		byte(JUMP),
		byte(PUSH1), 0x99,
		byte(JUMPDEST),
	}
	if err := evm.SetCode(contract, code); err != nil {
		t.Fatal(err)
	}

	res := evm.CallOrContinue(CallParams{Kind: CallKindCall, Caller: caller, Address: contract, Gas: 100_000})
	if res.Err != ErrInvalidJump {
		t.Fatalf("err = %v, want ErrInvalidJump", res.Err)
	}
}

// TestRevertRestoresStorage checks an SSTORE followed by REVERT leaves
// storage exactly as it was before the call.
func TestRevertRestoresStorage(t *testing.T) {
	evm := newTestEVM()
	caller := common.HexToAddress("0x1")
	contract := common.HexToAddress("0x2")
	slot := common.Hash{}

	if err := evm.Storage.SStore(contract, slot, *uint256.NewInt(11)); err != nil {
		t.Fatal(err)
	}

	// SSTORE slot = 99, then REVERT.
	code := []byte{
		byte(PUSH1), 99,
		byte(PUSH0), byte(SSTORE),
		byte(PUSH0), byte(PUSH0), byte(REVERT),
	}
	if err := evm.SetCode(contract, code); err != nil {
		t.Fatal(err)
	}

	res := evm.CallOrContinue(CallParams{Kind: CallKindCall, Caller: caller, Address: contract, Gas: 100_000})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if !res.Reverted {
		t.Fatal("expected revert")
	}

	got, err := evm.Storage.SLoad(contract, slot)
	if err != nil {
		t.Fatal(err)
	}
	if got.Uint64() != 11 {
		t.Fatalf("slot = %d, want 11 (unchanged)", got.Uint64())
	}
}

// TestTransientStorageIsolatedAcrossCalls checks a TSTORE stays visible
// after the writing call returns, and that ClearTransient at transaction
// end removes it so it cannot reach a later transaction.
func TestTransientStorageIsolatedAcrossCalls(t *testing.T) {
	evm := newTestEVM()
	caller := common.HexToAddress("0x1")
	contract := common.HexToAddress("0x2")

	writeCode := []byte{
		byte(PUSH1), 42,
		byte(PUSH0), byte(TSTORE),
		byte(STOP),
	}
	if err := evm.SetCode(contract, writeCode); err != nil {
		t.Fatal(err)
	}
	if res := evm.CallOrContinue(CallParams{Kind: CallKindCall, Caller: caller, Address: contract, Gas: 100_000}); res.Err != nil {
		t.Fatalf("write call failed: %v", res.Err)
	}

	v := evm.Storage.TLoad(contract, common.Hash{})
	if v.Uint64() != 42 {
		t.Fatalf("expected transient write visible within the writing call's lifetime, got %d", v.Uint64())
	}

	evm.Storage.ClearTransient()
	v = evm.Storage.TLoad(contract, common.Hash{})
	if !v.IsZero() {
		t.Fatalf("transient storage must not survive past transaction end, got %d", v.Uint64())
	}
}

// TestCreate2AddressIsDeterministic checks CREATE2 derives the same
// address from the same (caller, salt, initcode) pair every time, and a
// different address when any of the three changes.
func TestCreate2AddressIsDeterministic(t *testing.T) {
	caller := common.HexToAddress("0xaa")
	salt := [32]byte{1}
	initCode := []byte{byte(PUSH0), byte(PUSH0), byte(RETURN)}

	initCodeHash := crypto.Keccak256(initCode)

	a1 := CreateAddress2(caller, salt, initCodeHash)
	a2 := CreateAddress2(caller, salt, initCodeHash)
	if a1 != a2 {
		t.Fatalf("CREATE2 address not deterministic: %s vs %s", a1, a2)
	}

	salt2 := [32]byte{2}
	a3 := CreateAddress2(caller, salt2, initCodeHash)
	if a3 == a1 {
		t.Fatal("different salt produced the same CREATE2 address")
	}
}

// TestCreateDeploysRunnableContract checks CreateTop deploys initcode's
// RETURN payload as the new account's code, and that code then runs.
func TestCreateDeploysRunnableContract(t *testing.T) {
	evm := newTestEVM()
	caller := common.HexToAddress("0x1")

	runtimeCode := []byte{
		byte(PUSH1), 77,
		byte(PUSH0), byte(MSTORE),
		byte(PUSH1), 0x20, byte(PUSH0), byte(RETURN),
	}
	initCode := append([]byte{
		byte(PUSH1), byte(len(runtimeCode)), byte(PUSH1), 0x0a, byte(PUSH0), byte(CODECOPY),
		byte(PUSH1), byte(len(runtimeCode)), byte(PUSH0), byte(RETURN),
	}, runtimeCode...)

	contract := deploy(t, evm, caller, initCode)

	res := evm.CallOrContinue(CallParams{Kind: CallKindCall, Caller: caller, Address: contract, Gas: 100_000})
	if res.Err != nil {
		t.Fatalf("call to deployed contract failed: %v", res.Err)
	}
	got := new(big.Int).SetBytes(res.ReturnData)
	if got.Cmp(big.NewInt(77)) != 0 {
		t.Fatalf("result = %s, want 77", got)
	}
}

// TestOversizeInitCodeRejected checks EIP-3860's initcode size cap is
// enforced at or after Shanghai.
func TestOversizeInitCodeRejected(t *testing.T) {
	evm := newTestEVM()
	caller := common.HexToAddress("0x1")

	oversized := make([]byte, MaxInitCodeSize+1)
	res := evm.CreateTop(caller, uint256.Int{}, 5_000_000, oversized)
	if res.Err != ErrMaxInitCodeSizeExceeded {
		t.Fatalf("err = %v, want ErrMaxInitCodeSizeExceeded", res.Err)
	}
}

// TestSelfdestructToSelfIsNoopTransfer checks SELFDESTRUCT where the
// beneficiary is the contract's own address doesn't lose the balance:
// net balance must be unchanged (see DESIGN.md's Open Question
// resolution for this case).
func TestSelfdestructToSelfIsNoopTransfer(t *testing.T) {
	evm := newTestEVM()
	caller := common.HexToAddress("0x1")
	contract := common.HexToAddress("0x2")

	if err := evm.SetBalance(contract, *uint256.NewInt(100)); err != nil {
		t.Fatal(err)
	}

	// SELFDESTRUCT(address(this)).
	code := append([]byte{byte(ADDRESS)}, byte(SELFDESTRUCT))
	if err := evm.SetCode(contract, code); err != nil {
		t.Fatal(err)
	}

	res := evm.CallOrContinue(CallParams{Kind: CallKindCall, Caller: caller, Address: contract, Gas: 100_000})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}

	got, err := evm.GetBalance(contract)
	if err != nil {
		t.Fatal(err)
	}
	if got.Uint64() != 100 {
		t.Fatalf("balance after self-destruct-to-self = %d, want 100 (unchanged)", got.Uint64())
	}
}

// TestFinalizeDeletesAccountCreatedAndDestroyedThisTransaction checks
// EIP-6780's full wipe: a contract CREATEd and SELFDESTRUCTed within the
// same transaction has its code, nonce and storage cleared once Finalize
// runs after a non-reverted top-level call.
func TestFinalizeDeletesAccountCreatedAndDestroyedThisTransaction(t *testing.T) {
	evm := newTestEVM()
	caller := common.HexToAddress("0x1")
	beneficiary := common.HexToAddress("0xbe")

	// Runtime code: SSTORE slot 0 = 7, then SELFDESTRUCT(beneficiary).
	runtimeCode := []byte{
		byte(PUSH1), 7,
		byte(PUSH0), byte(SSTORE),
		byte(PUSH1), 0xbe, byte(SELFDESTRUCT),
	}
	initCode := append([]byte{
		byte(PUSH1), byte(len(runtimeCode)), byte(PUSH1), 0x0a, byte(PUSH0), byte(CODECOPY),
		byte(PUSH1), byte(len(runtimeCode)), byte(PUSH0), byte(RETURN),
	}, runtimeCode...)

	contract := deploy(t, evm, caller, initCode)
	if !evm.CreatedAccounts[contract] {
		t.Fatal("deployed address must be marked created")
	}

	res := evm.CallOrContinue(CallParams{Kind: CallKindCall, Caller: caller, Address: contract, Gas: 100_000})
	if res.Err != nil {
		t.Fatalf("call failed: %v", res.Err)
	}
	if res.Reverted {
		t.Fatal("unexpected revert")
	}
	if evm.SelfDestructSet[contract] != beneficiary {
		t.Fatal("contract must be recorded in SelfDestructSet with the right beneficiary")
	}

	if err := evm.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	code, err := evm.GetCode(contract)
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != 0 {
		t.Fatalf("code after Finalize = %x, want empty", code)
	}
	nonce, err := evm.GetNonce(contract)
	if err != nil {
		t.Fatal(err)
	}
	if nonce != 0 {
		t.Fatalf("nonce after Finalize = %d, want 0", nonce)
	}
	slot, err := evm.Storage.SLoad(contract, common.Hash{})
	if err != nil {
		t.Fatal(err)
	}
	if !slot.IsZero() {
		t.Fatalf("slot 0 after Finalize = %d, want 0", slot.Uint64())
	}
}

// TestFinalizeKeepsAccountNotCreatedThisTransaction checks an account
// that self-destructs without having been created this transaction keeps
// its code/nonce/storage after Finalize: only its balance moved, paid
// out by opSelfdestruct's transfer when SELFDESTRUCT ran.
func TestFinalizeKeepsAccountNotCreatedThisTransaction(t *testing.T) {
	evm := newTestEVM()
	caller := common.HexToAddress("0x1")
	contract := common.HexToAddress("0x2")
	beneficiary := common.HexToAddress("0xbe")

	code := []byte{
		byte(PUSH1), 7,
		byte(PUSH0), byte(SSTORE),
		byte(PUSH1), 0xbe, byte(SELFDESTRUCT),
	}
	if err := evm.SetCode(contract, code); err != nil {
		t.Fatal(err)
	}
	if err := evm.SetBalance(contract, *uint256.NewInt(50)); err != nil {
		t.Fatal(err)
	}

	res := evm.CallOrContinue(CallParams{Kind: CallKindCall, Caller: caller, Address: contract, Gas: 100_000})
	if res.Err != nil {
		t.Fatalf("call failed: %v", res.Err)
	}
	if evm.CreatedAccounts[contract] {
		t.Fatal("contract was never CREATEd this transaction")
	}

	if err := evm.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	got, err := evm.GetCode(contract)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 {
		t.Fatal("code must survive Finalize when the account wasn't created this transaction")
	}

	beneficiaryBal, err := evm.GetBalance(beneficiary)
	if err != nil {
		t.Fatal(err)
	}
	if beneficiaryBal.Uint64() != 50 {
		t.Fatalf("beneficiary balance = %d, want 50", beneficiaryBal.Uint64())
	}
}
