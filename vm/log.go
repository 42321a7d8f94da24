package vm

import "github.com/ethereum/go-ethereum/core/types"

// LogCollector appends Log records in program order for the duration
// of a transaction. Reusing go-ethereum's types.Log keeps the record
// shape (address, topics, data) compatible with downstream tooling
// without redefining an equivalent struct.
type LogCollector struct {
	logs []*types.Log
}

// NewLogCollector returns an empty collector.
func NewLogCollector() *LogCollector {
	return &LogCollector{}
}

// Append adds a log record.
func (c *LogCollector) Append(l *types.Log) {
	c.logs = append(c.logs, l)
}

// Logs returns the logs collected so far, in emission order.
func (c *LogCollector) Logs() []*types.Log {
	return c.logs
}

// Len returns the current log count, used as a rewind point when a
// nested call reverts (logs emitted by a reverted child must not be
// visible to the caller).
func (c *LogCollector) Len() int {
	return len(c.logs)
}

// Truncate drops every log past n, used to undo a reverted child's
// emissions.
func (c *LogCollector) Truncate(n int) {
	c.logs = c.logs[:n]
}
