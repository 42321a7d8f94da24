// Package hostrpc adapts the teacher's plain JSON-RPC client into a
// vm.Host backed by a live chain node, so a simulation can read the
// real balances, code and storage a contract would see without first
// importing the whole state trie.
package hostrpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/ethcore-labs/evmcore/vm"
)

var _ vm.Host = (*Client)(nil)

// Client is a vm.Host backed by eth_getBalance/eth_getCode/
// eth_getStorageAt/eth_getTransactionCount JSON-RPC calls against a
// single fixed block, with a local write-through cache so Set* calls
// made during execution are visible to subsequent Get* calls without a
// round trip. The teacher's Client had one cache map per concern
// (addressCodeSet/addressBalanceSet/addressStorageSet, each keyed
// separately from the live value); this adapter folds "known" and
// "value" into one map per concern, since a simulated Set always
// supersedes whatever the chain would have returned anyway.
type Client struct {
	Endpoint string
	Block    string // hex quantity ("0x10") or a tag ("latest"); defaults to "latest"

	code    map[common.Address][]byte
	balance map[common.Address]uint256.Int
	nonce   map[common.Address]uint64
	storage map[common.Address]map[common.Hash]uint256.Int
	cleared map[common.Address]bool
}

// NewClient builds a Client reading state as of block (pass "" for the
// chain's latest block).
func NewClient(endpoint, block string) *Client {
	if block == "" {
		block = "latest"
	}
	return &Client{
		Endpoint: endpoint,
		Block:    block,
		code:     make(map[common.Address][]byte),
		balance:  make(map[common.Address]uint256.Int),
		nonce:    make(map[common.Address]uint64),
		storage:  make(map[common.Address]map[common.Hash]uint256.Int),
		cleared:  make(map[common.Address]bool),
	}
}

func (c *Client) GetBalance(addr common.Address) (uint256.Int, error) {
	if v, ok := c.balance[addr]; ok {
		return v, nil
	}
	resp, err := c.call("eth_getBalance", addr, c.Block)
	if err != nil {
		return uint256.Int{}, err
	}
	amount, err := hexutil.DecodeBig(resp)
	if err != nil {
		return uint256.Int{}, fmt.Errorf("hostrpc: invalid balance %q: %w", resp, err)
	}
	v, overflow := uint256.FromBig(amount)
	if overflow {
		return uint256.Int{}, fmt.Errorf("hostrpc: balance %s overflows uint256", amount)
	}
	c.balance[addr] = *v
	return *v, nil
}

func (c *Client) SetBalance(addr common.Address, v uint256.Int) error {
	c.balance[addr] = v
	return nil
}

func (c *Client) GetNonce(addr common.Address) (uint64, error) {
	if v, ok := c.nonce[addr]; ok {
		return v, nil
	}
	resp, err := c.call("eth_getTransactionCount", addr, c.Block)
	if err != nil {
		return 0, err
	}
	n, err := hexutil.DecodeUint64(resp)
	if err != nil {
		return 0, fmt.Errorf("hostrpc: invalid nonce %q: %w", resp, err)
	}
	c.nonce[addr] = n
	return n, nil
}

func (c *Client) SetNonce(addr common.Address, n uint64) error {
	c.nonce[addr] = n
	return nil
}

func (c *Client) GetCode(addr common.Address) ([]byte, error) {
	if v, ok := c.code[addr]; ok {
		return v, nil
	}
	resp, err := c.call("eth_getCode", addr, c.Block)
	if err != nil {
		return nil, err
	}
	code, err := hexutil.Decode(resp)
	if err != nil {
		return nil, fmt.Errorf("hostrpc: invalid code %q: %w", resp, err)
	}
	c.code[addr] = code
	return code, nil
}

func (c *Client) SetCode(addr common.Address, code []byte) error {
	c.code[addr] = code
	return nil
}

func (c *Client) GetStorage(addr common.Address, slot common.Hash) (uint256.Int, error) {
	if slots, ok := c.storage[addr]; ok {
		if v, ok := slots[slot]; ok {
			return v, nil
		}
	}
	if c.cleared[addr] {
		return uint256.Int{}, nil
	}
	resp, err := c.call("eth_getStorageAt", addr, slot, c.Block)
	if err != nil {
		return uint256.Int{}, err
	}
	var v uint256.Int
	v.SetBytes(common.HexToHash(resp).Bytes())
	c.put(addr, slot, v)
	return v, nil
}

func (c *Client) SetStorage(addr common.Address, slot common.Hash, v uint256.Int) error {
	c.put(addr, slot, v)
	return nil
}

// ClearStorage implements vm.StorageClearer, dropping every cached slot
// for addr and marking it so a later GetStorage reads back zero instead
// of falling through to eth_getStorageAt: a self-destructed,
// this-transaction-created account's storage must read back empty for
// the rest of the simulation, even though the live chain behind this
// Client still has the pre-wipe values.
func (c *Client) ClearStorage(addr common.Address) error {
	delete(c.storage, addr)
	c.cleared[addr] = true
	return nil
}

func (c *Client) put(addr common.Address, slot common.Hash, v uint256.Int) {
	delete(c.cleared, addr)
	slots, ok := c.storage[addr]
	if !ok {
		slots = make(map[common.Hash]uint256.Int)
		c.storage[addr] = slots
	}
	slots[slot] = v
}

// call issues one JSON-RPC request and returns its result as a raw hex
// string, the shape every method this Client needs returns.
func (c *Client) call(method string, params ...interface{}) (string, error) {
	resp, err := rpcPost(c.Endpoint, method, params)
	if err != nil {
		return "", err
	}
	if resp.Err != nil {
		return "", resp.Err
	}
	var result string
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return "", fmt.Errorf("hostrpc: %s: unexpected response shape: %w", method, err)
	}
	return result, nil
}

type rpcRequest struct {
	ID      int           `json:"id"`
	JSONRpc string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	ID      int             `json:"id"`
	JSONRpc string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Err     *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf(`{"code": %d, "message": %q}`, e.Code, e.Message)
}

func rpcPost(endpoint, method string, params []interface{}) (*rpcResponse, error) {
	payload := rpcRequest{ID: 1, JSONRpc: "2.0", Method: method, Params: params}
	data, err := json.Marshal(&payload)
	if err != nil {
		return nil, err
	}

	log.Debug("host round-trip", "method", method, "endpoint", endpoint)
	resp, err := http.Post(endpoint, "application/json", bytes.NewReader(data))
	if err != nil {
		log.Error("host round-trip failed", "method", method, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("host round-trip response unreadable", "method", method, "error", err)
		return nil, err
	}

	var result rpcResponse
	if err := json.Unmarshal(b, &result); err != nil {
		log.Error("host round-trip response malformed", "method", method, "error", err)
		return nil, err
	}
	if result.Err != nil {
		log.Warn("host round-trip returned an RPC error", "method", method, "error", result.Err)
	}
	return &result, nil
}
