package vm

import "github.com/ethereum/go-ethereum/common"

// Hooks are optional pre/post step callbacks (spec's "Tracer hooks
// (optional)" row), shaped like the teacher's use of go-ethereum's
// core/tracing.Hooks but defined locally: this module does not depend
// on an EIP-3155 struct-tracer implementation, only on the hook
// points a tracer would attach to. Every field is nil-checked at the
// call site so an untraced run costs one branch per hook.
type Hooks struct {
	OnOpcode   func(pc uint64, op OpCode, gas, cost uint64, frame *Frame, returnData []byte, depth int, err error)
	OnFault    func(pc uint64, op OpCode, gas, cost uint64, frame *Frame, depth int, err error)
	OnEnter    func(depth int, typ OpCode, from, to common.Address, input []byte, gas uint64, value *[32]byte)
	OnExit     func(depth int, output []byte, gasUsed uint64, err error, reverted bool)
	OnGasChange func(old, new uint64, reason string)
}

func (h *Hooks) onOpcode(pc uint64, op OpCode, gas, cost uint64, frame *Frame, returnData []byte, depth int, err error) {
	if h != nil && h.OnOpcode != nil {
		h.OnOpcode(pc, op, gas, cost, frame, returnData, depth, err)
	}
}

func (h *Hooks) onFault(pc uint64, op OpCode, gas, cost uint64, frame *Frame, depth int, err error) {
	if h != nil && h.OnFault != nil {
		h.OnFault(pc, op, gas, cost, frame, depth, err)
	}
}

func (h *Hooks) onEnter(depth int, typ OpCode, from, to common.Address, input []byte, gas uint64, value *[32]byte) {
	if h != nil && h.OnEnter != nil {
		h.OnEnter(depth, typ, from, to, input, gas, value)
	}
}

func (h *Hooks) onExit(depth int, output []byte, gasUsed uint64, err error, reverted bool) {
	if h != nil && h.OnExit != nil {
		h.OnExit(depth, output, gasUsed, err, reverted)
	}
}

func (h *Hooks) onGasChange(old, new uint64, reason string) {
	if h != nil && h.OnGasChange != nil {
		h.OnGasChange(old, new, reason)
	}
}
