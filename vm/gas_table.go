package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// gasFunc computes the dynamic (input-dependent) portion of an
// opcode's gas cost, given the memory size the operation's
// memorySizeFunc already derived from the stack. It is charged in
// addition to the operation's constantGas (spec §4.4).
type gasFunc func(in *Interpreter, frame *Frame, memorySize uint64) (uint64, error)

func safeAdd(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum < a
}

func safeMul(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	p := a * b
	return p, p/a != b
}

// memoryGasCost charges for growing memory to cover memorySize bytes,
// a no-op when the operation needs no memory (memorySize == 0).
func memoryGasCost(frame *Frame, memorySize uint64) (uint64, error) {
	if memorySize == 0 {
		return 0, nil
	}
	return frame.Memory.expansionCost(memorySize)
}

func stackAddr(stack *Stack, n int) common.Address {
	b := stack.peekAt(n).Bytes20()
	return common.Address(b)
}

func gasKeccak256(in *Interpreter, frame *Frame, memorySize uint64) (uint64, error) {
	memCost, err := memoryGasCost(frame, memorySize)
	if err != nil {
		return 0, err
	}
	sizeU, overflow := frame.Stack.peekAt(1).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	wordCost, overflow := safeMul(toWordSize(sizeU), Keccak256WordGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	total, overflow := safeAdd(memCost, wordCost)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return total, nil
}

func gasCopyAt(sizeIdx int) gasFunc {
	return func(in *Interpreter, frame *Frame, memorySize uint64) (uint64, error) {
		memCost, err := memoryGasCost(frame, memorySize)
		if err != nil {
			return 0, err
		}
		sizeU, overflow := frame.Stack.peekAt(sizeIdx).Uint64WithOverflow()
		if overflow {
			return 0, ErrGasUintOverflow
		}
		wordCost, overflow := safeMul(toWordSize(sizeU), CopyGas)
		if overflow {
			return 0, ErrGasUintOverflow
		}
		total, overflow := safeAdd(memCost, wordCost)
		if overflow {
			return 0, ErrGasUintOverflow
		}
		return total, nil
	}
}

var (
	gasCallDataCopy   = gasCopyAt(2)
	gasCodeCopy       = gasCopyAt(2)
	gasReturnDataCopy = gasCopyAt(2)
)

func gasExtCodeCopy(in *Interpreter, frame *Frame, memorySize uint64) (uint64, error) {
	memCost, err := memoryGasCost(frame, memorySize)
	if err != nil {
		return 0, err
	}
	sizeU, overflow := frame.Stack.peekAt(3).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	copyCost, overflow := safeMul(toWordSize(sizeU), CopyGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}

	var accessCost uint64
	fork := in.evm.Hardfork
	switch {
	case fork.IsAtLeast(Berlin):
		accessCost = in.evm.AccessList.AccessAddress(stackAddr(frame.Stack, 0))
	case fork.IsAtLeast(TangerineWhistle):
		accessCost = ExtcodeCopyBaseEIP150
	default:
		accessCost = ExtcodeCopyBaseFrontier
	}

	total, overflow := safeAdd(memCost, copyCost)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	total, overflow = safeAdd(total, accessCost)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return total, nil
}

func gasMCopy(in *Interpreter, frame *Frame, memorySize uint64) (uint64, error) {
	memCost, err := memoryGasCost(frame, memorySize)
	if err != nil {
		return 0, err
	}
	sizeU, overflow := frame.Stack.peekAt(2).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	wordCost, overflow := safeMul(toWordSize(sizeU), CopyGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	total, overflow := safeAdd(memCost, wordCost)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return total, nil
}

func gasMLoadStore(in *Interpreter, frame *Frame, memorySize uint64) (uint64, error) {
	return memoryGasCost(frame, memorySize)
}

func gasBalance(in *Interpreter, frame *Frame, memorySize uint64) (uint64, error) {
	fork := in.evm.Hardfork
	addr := stackAddr(frame.Stack, 0)
	switch {
	case fork.IsAtLeast(Berlin):
		return in.evm.AccessList.AccessAddress(addr), nil
	case fork.IsAtLeast(Istanbul):
		return BalanceGasEIP1884, nil
	case fork.IsAtLeast(TangerineWhistle):
		return BalanceGasEIP150, nil
	default:
		return BalanceGasFrontier, nil
	}
}

func gasExtCodeSize(in *Interpreter, frame *Frame, memorySize uint64) (uint64, error) {
	fork := in.evm.Hardfork
	addr := stackAddr(frame.Stack, 0)
	switch {
	case fork.IsAtLeast(Berlin):
		return in.evm.AccessList.AccessAddress(addr), nil
	case fork.IsAtLeast(TangerineWhistle):
		return ExtcodeSizeGasEIP150, nil
	default:
		return ExtcodeSizeGasFrontier, nil
	}
}

func gasExtCodeHash(in *Interpreter, frame *Frame, memorySize uint64) (uint64, error) {
	fork := in.evm.Hardfork
	addr := stackAddr(frame.Stack, 0)
	switch {
	case fork.IsAtLeast(Berlin):
		return in.evm.AccessList.AccessAddress(addr), nil
	case fork.IsAtLeast(Istanbul):
		return ExtcodeHashGasEIP1884, nil
	default:
		return ExtcodeHashGasConstantinople, nil
	}
}

func gasSload(in *Interpreter, frame *Frame, memorySize uint64) (uint64, error) {
	fork := in.evm.Hardfork
	slot := common.Hash(frame.Stack.peekAt(0).Bytes32())
	switch {
	case fork.IsAtLeast(Berlin):
		return in.evm.AccessList.AccessStorageSlot(frame.Self, slot), nil
	case fork.IsAtLeast(Istanbul):
		return SloadGasEIP1884, nil
	case fork.IsAtLeast(TangerineWhistle):
		return SloadGasEIP150, nil
	default:
		return GasQuickStep, nil
	}
}

// gasSStore implements SSTORE's dynamic gas, dispatching by hardfork
// to the legacy flat schedule, EIP-2200 net-gas metering, or the
// Berlin+ access-list-aware variant (spec §4.5, §9).
func gasSStore(in *Interpreter, frame *Frame, memorySize uint64) (uint64, error) {
	fork := in.evm.Hardfork
	slot := common.Hash(frame.Stack.peekAt(0).Bytes32())
	newVal := *frame.Stack.peekAt(1)

	switch {
	case fork == Constantinople:
		// EIP-1283, live for exactly one fork before Petersburg reverted it.
		return gasSStoreEIP2929(in, frame, slot, newVal, SstoreClearsScheduleRefundEIP2200)
	case fork.IsBefore(Istanbul):
		return gasSStoreLegacy(in, frame, slot, newVal)
	case !fork.IsAtLeast(Berlin):
		return gasSStoreNetGas(in, frame, slot, newVal, SstoreClearsScheduleRefundEIP2200)
	}

	var accessCost uint64
	if !in.evm.AccessList.ContainsSlot(frame.Self, slot) {
		accessCost = ColdSloadCostEIP2929
	}
	in.evm.AccessList.AccessStorageSlot(frame.Self, slot)

	clearRefund := SstoreClearsScheduleRefundEIP2200
	if fork.IsAtLeast(London) {
		clearRefund = SstoreClearsScheduleRefundEIP3529
	}
	cost, err := gasSStoreNetGas(in, frame, slot, newVal, clearRefund)
	if err != nil {
		return 0, err
	}
	return cost + accessCost, nil
}

func gasSStoreLegacy(in *Interpreter, frame *Frame, slot common.Hash, newVal uint256.Int) (uint64, error) {
	current, err := in.evm.Storage.Current(frame.Self, slot)
	if err != nil {
		return 0, err
	}
	if current.IsZero() && !newVal.IsZero() {
		return SstoreSetGas, nil
	}
	if !current.IsZero() && newVal.IsZero() {
		in.evm.AddRefund(SstoreRefundGas)
	}
	return SstoreResetGas, nil
}

// gasSStoreNetGas is EIP-2200's rule, shared by the pre- and
// post-Berlin variants (the latter adds a cold-access surcharge
// computed by the caller).
func gasSStoreNetGas(in *Interpreter, frame *Frame, slot common.Hash, newVal uint256.Int, clearRefund uint64) (uint64, error) {
	if frame.Gas <= int64(SstoreSentryGasEIP2200) {
		return 0, ErrOutOfGas
	}
	return gasSStoreEIP2929(in, frame, slot, newVal, clearRefund)
}

func gasSStoreEIP2929(in *Interpreter, frame *Frame, slot common.Hash, newVal uint256.Int, clearRefund uint64) (uint64, error) {
	current, err := in.evm.Storage.Current(frame.Self, slot)
	if err != nil {
		return 0, err
	}
	original, err := in.evm.Storage.Original(frame.Self, slot)
	if err != nil {
		return 0, err
	}
	noopCost, resetCost := SloadGasEIP2200, SstoreResetGasEIP2200
	if in.evm.Hardfork.IsAtLeast(Berlin) {
		// EIP-2929: the cold surcharge is added by gasSStore, so the warm
		// base is WarmStorageRead and reset drops the ColdSload share.
		noopCost = WarmStorageReadCostEIP2929
		resetCost = SstoreResetGasEIP2200 - ColdSloadCostEIP2929
	}

	if current.Eq(&newVal) {
		return noopCost, nil
	}
	if original.Eq(&current) {
		if original.IsZero() {
			return SstoreSetGasEIP2200, nil
		}
		if newVal.IsZero() {
			in.evm.AddRefund(clearRefund)
		}
		return resetCost, nil
	}
	// dirty slot: value already diverges from original this tx.
	if !original.IsZero() {
		if current.IsZero() {
			in.evm.SubRefund(clearRefund)
		}
		if newVal.IsZero() {
			in.evm.AddRefund(clearRefund)
		}
	}
	if original.Eq(&newVal) {
		if original.IsZero() {
			in.evm.AddRefund(SstoreSetGasEIP2200 - noopCost)
		} else {
			in.evm.AddRefund(resetCost - noopCost)
		}
	}
	return noopCost, nil
}

func gasExp(in *Interpreter, frame *Frame, memorySize uint64) (uint64, error) {
	exponent := frame.Stack.peekAt(1)
	byteLen := uint64((exponent.BitLen() + 7) / 8)
	perByte := ExpByteFrontier
	if in.evm.Hardfork.IsAtLeast(SpuriousDragon) {
		perByte = ExpByteEIP158
	}
	cost, overflow := safeMul(byteLen, perByte)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return cost, nil
}

func gasLog(numTopics int) gasFunc {
	return func(in *Interpreter, frame *Frame, memorySize uint64) (uint64, error) {
		memCost, err := memoryGasCost(frame, memorySize)
		if err != nil {
			return 0, err
		}
		sizeU, overflow := frame.Stack.peekAt(1).Uint64WithOverflow()
		if overflow {
			return 0, ErrGasUintOverflow
		}
		dataCost, overflow := safeMul(sizeU, LogDataGas)
		if overflow {
			return 0, ErrGasUintOverflow
		}
		total, overflow := safeAdd(memCost, uint64(numTopics)*LogTopicGas)
		if overflow {
			return 0, ErrGasUintOverflow
		}
		total, overflow = safeAdd(total, dataCost)
		if overflow {
			return 0, ErrGasUintOverflow
		}
		return total, nil
	}
}

func gasCreate(in *Interpreter, frame *Frame, memorySize uint64) (uint64, error) {
	memCost, err := memoryGasCost(frame, memorySize)
	if err != nil {
		return 0, err
	}
	total := memCost
	if in.evm.Hardfork.IsAtLeast(Shanghai) {
		sizeU, overflow := frame.Stack.peekAt(2).Uint64WithOverflow()
		if overflow {
			return 0, ErrGasUintOverflow
		}
		initCost, overflow := safeMul(toWordSize(sizeU), InitCodeWordGas)
		if overflow {
			return 0, ErrGasUintOverflow
		}
		total, overflow = safeAdd(memCost, initCost)
		if overflow {
			return 0, ErrGasUintOverflow
		}
	}
	return chargeCreateGas(in, frame, total)
}

// chargeCreateGas applies EIP-150's 63/64 forwarding rule to CREATE and
// CREATE2: unlike the CALL family there is no explicit gas argument, so
// the entire post-cost remainder (minus one 64th) is forwarded,
// stashed in callGasTemp for the execute step to pick up.
func chargeCreateGas(in *Interpreter, frame *Frame, cost uint64) (uint64, error) {
	all := uint256.NewInt(^uint64(0))
	forwarded, err := callGas(uint64(frame.Gas), cost, all)
	if err != nil {
		return 0, err
	}
	in.evm.callGasTemp = forwarded
	return addGas(cost, forwarded)
}

func gasCreate2(in *Interpreter, frame *Frame, memorySize uint64) (uint64, error) {
	memCost, err := memoryGasCost(frame, memorySize)
	if err != nil {
		return 0, err
	}
	sizeU, overflow := frame.Stack.peekAt(2).Uint64WithOverflow()
	if overflow {
		return 0, ErrGasUintOverflow
	}
	hashCost, overflow := safeMul(toWordSize(sizeU), Keccak256WordGas)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	total, overflow := safeAdd(memCost, hashCost)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	if in.evm.Hardfork.IsAtLeast(Shanghai) {
		initCost, overflow := safeMul(toWordSize(sizeU), InitCodeWordGas)
		if overflow {
			return 0, ErrGasUintOverflow
		}
		total, overflow = safeAdd(total, initCost)
		if overflow {
			return 0, ErrGasUintOverflow
		}
	}
	return chargeCreateGas(in, frame, total)
}

// callAccessCost computes the address-access part of the cost shared by
// every member of the CALL family; value-transfer and new-account
// surcharges are not included here.
func callAccessCost(in *Interpreter, addr common.Address) uint64 {
	fork := in.evm.Hardfork
	if fork.IsAtLeast(Berlin) {
		return in.evm.AccessList.AccessAddress(addr)
	}
	if fork.IsAtLeast(TangerineWhistle) {
		return CallGasEIP150
	}
	return CallGasFrontier
}

// gasCallFamily builds the dynamic gas function shared by CALL,
// CALLCODE, DELEGATECALL and STATICCALL: every variant's stack puts
// the target address second from the top (after gas). hasValue is
// true only for CALL/CALLCODE, which carry an explicit value argument
// third from the top; isCall is true only for plain CALL, the sole
// variant that can bring a previously-empty account into existence
// and so is the only one charged CallNewAccountGas (spec §4.8).
func gasCallFamily(hasValue, isCall bool) gasFunc {
	return func(in *Interpreter, frame *Frame, memorySize uint64) (uint64, error) {
		memCost, err := memoryGasCost(frame, memorySize)
		if err != nil {
			return 0, err
		}
		addr := stackAddr(frame.Stack, 1)
		cost := callAccessCost(in, addr)

		if hasValue {
			value := frame.Stack.peekAt(2)
			if !value.IsZero() {
				cost, err = addGas(cost, CallValueTransferGas)
				if err != nil {
					return 0, err
				}
				if isCall && !hostExists(in.evm.host, addr) {
					cost, err = addGas(cost, CallNewAccountGas)
					if err != nil {
						return 0, err
					}
				}
			}
		}
		cost, err = addGas(cost, memCost)
		if err != nil {
			return 0, err
		}

		forwarded, err := callGas(uint64(frame.Gas), cost, frame.Stack.peekAt(0))
		if err != nil {
			return 0, err
		}
		in.evm.callGasTemp = forwarded

		return addGas(cost, forwarded)
	}
}

func addGas(a, b uint64) (uint64, error) {
	sum, overflow := safeAdd(a, b)
	if overflow {
		return 0, ErrGasUintOverflow
	}
	return sum, nil
}

// callGas implements EIP-150's 63/64 forwarding rule: of the gas left
// after paying base (this opcode's own access/memory/value cost), only
// all-but-one-64th may be forwarded to the callee, capped further by
// whatever the caller explicitly requested.
func callGas(availableGas, base uint64, requested *uint256.Int) (uint64, error) {
	if availableGas < base {
		return 0, ErrGasUintOverflow
	}
	availableGas -= base
	capped := availableGas - availableGas/64
	if !requested.IsUint64() || requested.Uint64() > capped {
		return capped, nil
	}
	return requested.Uint64(), nil
}

var (
	gasCall         = gasCallFamily(true, true)
	gasCallCode     = gasCallFamily(true, false)
	gasDelegateCall = gasCallFamily(false, false)
	gasStaticCall   = gasCallFamily(false, false)
)

func gasSelfdestruct(in *Interpreter, frame *Frame, memorySize uint64) (uint64, error) {
	fork := in.evm.Hardfork
	beneficiary := stackAddr(frame.Stack, 0)

	var cost uint64
	if fork.IsAtLeast(TangerineWhistle) {
		cost += SelfdestructGasEIP150
		if !hostExists(in.evm.host, beneficiary) {
			balance, _ := in.evm.GetBalance(frame.Self)
			if !balance.IsZero() {
				cost += CreateBySelfdestructGas
			}
		}
	}
	if fork.IsAtLeast(Berlin) {
		if !in.evm.AccessList.ContainsAddress(beneficiary) {
			cost += ColdAccountAccessCostEIP2929
		}
		in.evm.AccessList.AccessAddress(beneficiary)
	}
	return cost, nil
}
