// Package solana verifies transactions against a Solana JSON-RPC endpoint.
package solana

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Sentinel errors for the handler layer's status mapping.
var (
	ErrNotFound         = errors.New("transaction not found")
	ErrInvalidSignature = errors.New("invalid transaction signature")
)

const lamportsPerSOL = 1_000_000_000

// base58Alphabet is the Bitcoin base58 set used for Solana signatures.
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Client is a minimal JSON-RPC client for transaction lookups.
type Client struct {
	http   *resty.Client
	rpcURL string
}

// NewClient creates a client for the given RPC endpoint.
func NewClient(rpcURL string, timeout time.Duration) *Client {
	return &Client{
		http:   resty.New().SetTimeout(timeout),
		rpcURL: rpcURL,
	}
}

// Verification is the decoded outcome of a confirmed transaction lookup.
type Verification struct {
	Slot      uint64
	BlockTime time.Time
	// HasBlockTime is false for transactions the RPC node returns without a
	// block time (possible for very recent or pruned slots).
	HasBlockTime bool
	// SolDelta is the fee payer's balance change in SOL.
	SolDelta float64
}

type rpcRequest struct {
	Jsonrpc string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type txMeta struct {
	PreBalances  []int64 `json:"preBalances"`
	PostBalances []int64 `json:"postBalances"`
}

type txValue struct {
	BlockTime *int64  `json:"blockTime"`
	Slot      uint64  `json:"slot"`
	Meta      *txMeta `json:"meta"`
}

type rpcResponse struct {
	Result *txValue  `json:"result"`
	Error  *rpcError `json:"error"`
}

// VerifyTransaction looks up signature with getTransaction and summarizes it.
// Returns ErrInvalidSignature for malformed input and ErrNotFound when the
// node has no record of the transaction.
func (c *Client) VerifyTransaction(ctx context.Context, signature string) (*Verification, error) {
	signature = strings.TrimSpace(signature)
	if !validSignature(signature) {
		return nil, ErrInvalidSignature
	}

	req := rpcRequest{
		Jsonrpc: "2.0",
		ID:      1,
		Method:  "getTransaction",
		Params: []interface{}{
			signature,
			map[string]interface{}{"maxSupportedTransactionVersion": 0},
		},
	}

	var out rpcResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		Post(c.rpcURL)
	if err != nil {
		return nil, fmt.Errorf("rpc request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("rpc returned status %s", resp.Status())
	}
	if out.Error != nil {
		return nil, fmt.Errorf("rpc error %d: %s", out.Error.Code, out.Error.Message)
	}
	if out.Result == nil {
		return nil, ErrNotFound
	}

	verification := &Verification{Slot: out.Result.Slot}
	if out.Result.BlockTime != nil {
		verification.BlockTime = time.Unix(*out.Result.BlockTime, 0)
		verification.HasBlockTime = true
	}
	if meta := out.Result.Meta; meta != nil && len(meta.PreBalances) > 0 && len(meta.PostBalances) > 0 {
		verification.SolDelta = float64(meta.PostBalances[0]-meta.PreBalances[0]) / lamportsPerSOL
	}
	return verification, nil
}

// validSignature checks the base58 shape of a Solana signature (64 bytes
// encode to roughly 86-88 characters).
func validSignature(signature string) bool {
	if len(signature) < 64 || len(signature) > 96 {
		return false
	}
	for _, r := range signature {
		if !strings.ContainsRune(base58Alphabet, r) {
			return false
		}
	}
	return true
}
