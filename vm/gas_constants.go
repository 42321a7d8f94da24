package vm

// Fee schedule constants, grounded on params/protocol_params.go across
// the EVM family (go-ethereum and its forks keep these identical;
// only the EIP gating point differs by hardfork, handled in gas_table.go).
const (
	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasFastStep    uint64 = 5
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10
	GasExtStep     uint64 = 20

	Keccak256Gas     uint64 = 30
	Keccak256WordGas uint64 = 6

	MemoryGas    uint64 = 3
	QuadCoeffDiv uint64 = 512
	CopyGas      uint64 = 3

	JumpdestGas uint64 = 1

	ExpGas         uint64 = 10
	ExpByteFrontier uint64 = 10
	ExpByteEIP158   uint64 = 50

	LogGas      uint64 = 375
	LogTopicGas uint64 = 375
	LogDataGas  uint64 = 8

	CreateGas  uint64 = 32000
	Create2Gas uint64 = 32000

	CreateDataGas        uint64 = 200
	MaxCodeSize                 = 24576
	MaxInitCodeSize              = 2 * MaxCodeSize
	InitCodeWordGas      uint64 = 2

	CallStipend          uint64 = 2300
	CallValueTransferGas uint64 = 9000
	CallNewAccountGas    uint64 = 25000

	CallGasEIP150        uint64 = 700
	CallGasFrontier      uint64 = 40
	SelfdestructGasEIP150 uint64 = 5000
	SelfdestructRefundGas uint64 = 24000
	CreateBySelfdestructGas uint64 = 25000

	SstoreSetGas    uint64 = 20000
	SstoreResetGas  uint64 = 5000
	SstoreClearGas  uint64 = 5000
	SstoreRefundGas uint64 = 15000

	SstoreSentryGasEIP2200            uint64 = 2300
	SloadGasEIP2200                   uint64 = 800
	SstoreSetGasEIP2200               uint64 = 20000
	SstoreResetGasEIP2200             uint64 = 5000
	SstoreClearsScheduleRefundEIP2200 uint64 = 15000

	// EIP-2929 cold/warm access costs
	ColdAccountAccessCostEIP2929 uint64 = 2600
	ColdSloadCostEIP2929         uint64 = 2100
	WarmStorageReadCostEIP2929   uint64 = 100

	SloadGasEIP150  uint64 = 200
	SloadGasEIP1884 uint64 = 800

	BalanceGasFrontier uint64 = 20
	BalanceGasEIP150   uint64 = 400
	BalanceGasEIP1884  uint64 = 700

	ExtcodeSizeGasFrontier uint64 = 20
	ExtcodeSizeGasEIP150   uint64 = 700

	ExtcodeCopyBaseFrontier uint64 = 20
	ExtcodeCopyBaseEIP150   uint64 = 700

	ExtcodeHashGasConstantinople uint64 = 400
	ExtcodeHashGasEIP1884        uint64 = 700

	SelfBalanceGas uint64 = 5
	ChainIDGas     uint64 = 2
	BaseFeeGas     uint64 = 2
	BlobHashGas    uint64 = 3
	BlobBaseFeeGas uint64 = 2
	BlockHashGas   uint64 = 20

	TLoadGas  uint64 = 100
	TStoreGas uint64 = 100

	// EIP-3529 (London) refund cap divisor; applied by the caller, not
	// the core, per spec §6 — kept here only as documentation of the
	// value the caller is expected to use.
	MaxRefundQuotientLondon   uint64 = 5
	MaxRefundQuotientPreLondon uint64 = 2

	// SstoreClearsScheduleRefundEIP3529 replaces
	// SstoreClearsScheduleRefundEIP2200 from London onward.
	SstoreClearsScheduleRefundEIP3529 uint64 = 4800
)
