package hostrpc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// newStubServer answers every JSON-RPC call with a fixed hex result,
// regardless of method — enough to exercise Client's decode paths
// without depending on a live node.
func newStubServer(t *testing.T, result string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		resp := rpcResponse{ID: req.ID, JSONRpc: "2.0", Result: json.RawMessage(`"` + result + `"`)}
		if err := json.NewEncoder(w).Encode(&resp); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientGetBalanceDecodesAndCaches(t *testing.T) {
	srv := newStubServer(t, "0x64") // 100
	c := NewClient(srv.URL, "")
	addr := common.HexToAddress("0x1")

	v, err := c.GetBalance(addr)
	if err != nil {
		t.Fatal(err)
	}
	if v.Uint64() != 100 {
		t.Fatalf("balance = %d, want 100", v.Uint64())
	}

	srv.Close() // cached value must not need a second round-trip
	v2, err := c.GetBalance(addr)
	if err != nil {
		t.Fatalf("cached GetBalance should not hit the network: %v", err)
	}
	if v2.Uint64() != 100 {
		t.Fatalf("cached balance = %d, want 100", v2.Uint64())
	}
}

func TestClientSetBalanceIsVisibleWithoutRoundTrip(t *testing.T) {
	srv := newStubServer(t, "0x0")
	c := NewClient(srv.URL, "")
	addr := common.HexToAddress("0x1")

	want := *uint256.NewInt(555)
	if err := c.SetBalance(addr, want); err != nil {
		t.Fatal(err)
	}
	srv.Close()

	got, err := c.GetBalance(addr)
	if err != nil {
		t.Fatalf("write-through read should not hit the network: %v", err)
	}
	if got.Uint64() != 555 {
		t.Fatalf("balance = %d, want 555", got.Uint64())
	}
}

func TestClientGetCodeDecodesHex(t *testing.T) {
	srv := newStubServer(t, "0x6001600101")
	c := NewClient(srv.URL, "")
	addr := common.HexToAddress("0x1")

	code, err := c.GetCode(addr)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x60, 0x01, 0x60, 0x01, 0x01}
	if len(code) != len(want) {
		t.Fatalf("code = %x, want %x", code, want)
	}
	for i := range want {
		if code[i] != want[i] {
			t.Fatalf("code = %x, want %x", code, want)
		}
	}
}

func TestClientGetNonceDecodesUint64(t *testing.T) {
	srv := newStubServer(t, "0x5")
	c := NewClient(srv.URL, "")
	addr := common.HexToAddress("0x1")

	n, err := c.GetNonce(addr)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Fatalf("nonce = %d, want 5", n)
	}
}

func TestClientGetStorageDecodesSlotValue(t *testing.T) {
	srv := newStubServer(t, "0x000000000000000000000000000000000000000000000000000000000000002a")
	c := NewClient(srv.URL, "")
	addr := common.HexToAddress("0x1")
	slot := common.Hash{1}

	v, err := c.GetStorage(addr, slot)
	if err != nil {
		t.Fatal(err)
	}
	if v.Uint64() != 0x2a {
		t.Fatalf("storage = %d, want 42", v.Uint64())
	}
}

func TestClientDefaultsBlockToLatest(t *testing.T) {
	c := NewClient("http://example.invalid", "")
	if c.Block != "latest" {
		t.Fatalf("Block = %q, want %q", c.Block, "latest")
	}
}
