// Package models defines request, response, and persistence types for the concierge API.
package models

import (
	"fmt"
	"strings"
)

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Query string `json:"query"`
}

// Validate rejects empty or whitespace-only queries. Intent resolution itself
// accepts any string; the rejection happens at the API boundary.
func (r *ChatRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("query cannot be empty")
	}
	return nil
}

// ChatResponse is the body returned by POST /api/v1/chat.
type ChatResponse struct {
	Response string `json:"response"`
	Intent   string `json:"intent"`
	Language string `json:"language"`
}

// VerifyRequest is the body of POST /api/v1/verify-tx.
type VerifyRequest struct {
	TxHash string `json:"tx_hash"`
}

// Validate rejects an empty transaction hash.
func (r *VerifyRequest) Validate() error {
	if strings.TrimSpace(r.TxHash) == "" {
		return fmt.Errorf("tx_hash cannot be empty")
	}
	return nil
}

// VerifyResponse is the body returned by POST /api/v1/verify-tx.
type VerifyResponse struct {
	Response  string  `json:"response"`
	Slot      uint64  `json:"slot,omitempty"`
	BlockTime string  `json:"block_time,omitempty"`
	SolDelta  float64 `json:"sol_delta"`
}

// StatusResponse is the body returned by GET /api/v1/status. Interactions is
// nil when the server runs without interaction storage.
type StatusResponse struct {
	EmbeddingModel string `json:"embedding_model"`
	IntentCache    int    `json:"intent_cache"`
	Interactions   *int   `json:"interactions,omitempty"`
}
