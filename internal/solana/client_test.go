package solana

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// validSig is a well-formed 87-character base58 signature.
const validSig = "5j7s6NiJS3JAkvgkoc18WVAsiSaci2pxB2A6ueCJP4tprA2TFg9wSyTLeYouxPBJEMzJinENTkpA52YStRW5Dia7"

func testClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

func TestVerifyTransaction_Found(t *testing.T) {
	client, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Method != "getTransaction" {
			t.Errorf("method: got %q", req.Method)
		}
		if len(req.Params) == 0 || req.Params[0] != validSig {
			t.Errorf("params: got %v", req.Params)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"jsonrpc": "2.0",
			"id": 1,
			"result": {
				"slot": 123456789,
				"blockTime": 1767225600,
				"meta": {
					"preBalances": [5000000000, 100],
					"postBalances": [3500000000, 100]
				}
			}
		}`))
	})
	defer srv.Close()

	verification, err := client.VerifyTransaction(context.Background(), validSig)
	if err != nil {
		t.Fatal(err)
	}
	if verification.Slot != 123456789 {
		t.Errorf("slot: got %d", verification.Slot)
	}
	if !verification.HasBlockTime {
		t.Error("expected block time")
	}
	if got := verification.BlockTime.Unix(); got != 1767225600 {
		t.Errorf("block time: got %d", got)
	}
	if verification.SolDelta != -1.5 {
		t.Errorf("sol delta: got %v, want -1.5", verification.SolDelta)
	}
}

func TestVerifyTransaction_NoBlockTime(t *testing.T) {
	client, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"slot":42,"blockTime":null,"meta":null}}`))
	})
	defer srv.Close()

	verification, err := client.VerifyTransaction(context.Background(), validSig)
	if err != nil {
		t.Fatal(err)
	}
	if verification.HasBlockTime {
		t.Error("expected no block time")
	}
	if verification.SolDelta != 0 {
		t.Errorf("sol delta without meta: got %v, want 0", verification.SolDelta)
	}
}

func TestVerifyTransaction_NotFound(t *testing.T) {
	client, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":null}`))
	})
	defer srv.Close()

	_, err := client.VerifyTransaction(context.Background(), validSig)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestVerifyTransaction_RPCError(t *testing.T) {
	client, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"invalid params"}}`))
	})
	defer srv.Close()

	_, err := client.VerifyTransaction(context.Background(), validSig)
	if err == nil || !strings.Contains(err.Error(), "invalid params") {
		t.Errorf("got %v, want rpc error", err)
	}
}

func TestVerifyTransaction_HTTPError(t *testing.T) {
	client, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer srv.Close()

	if _, err := client.VerifyTransaction(context.Background(), validSig); err == nil {
		t.Error("expected error on 503")
	}
}

func TestVerifyTransaction_InvalidSignature(t *testing.T) {
	client := NewClient("http://localhost:1", time.Second)
	tests := []string{
		"",
		"short",
		"has spaces " + validSig[:64],
		strings.Repeat("0", 87), // 0 is not in the base58 alphabet
		strings.Repeat("a", 200),
	}
	for _, sig := range tests {
		if _, err := client.VerifyTransaction(context.Background(), sig); !errors.Is(err, ErrInvalidSignature) {
			t.Errorf("signature %q: got %v, want ErrInvalidSignature", sig, err)
		}
	}
}

func TestValidSignature(t *testing.T) {
	if !validSignature(validSig) {
		t.Error("expected valid")
	}
	if validSignature(validSig + "!") {
		t.Error("expected invalid on non-base58 rune")
	}
}
