// Package cli provides output utilities for the concierge CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/concierge/internal/models"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteChatResponse writes a chat response to w in the given format.
func WriteChatResponse(w io.Writer, response *models.ChatResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		fmt.Fprintf(w, "[%s/%s]\n%s\n", response.Intent, response.Language, response.Response)
		return nil
	}
}

// WriteStatus writes a server status report to w in the given format.
func WriteStatus(w io.Writer, status *models.StatusResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	default:
		fmt.Fprintf(w, "Embedding model: %s\n", status.EmbeddingModel)
		fmt.Fprintf(w, "Intent cache:    %d\n", status.IntentCache)
		if status.Interactions != nil {
			fmt.Fprintf(w, "Interactions:    %d\n", *status.Interactions)
		}
		return nil
	}
}

// WriteVerifyResponse writes a transaction verification to w in the given format.
func WriteVerifyResponse(w io.Writer, response *models.VerifyResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		fmt.Fprintln(w, response.Response)
		if response.Slot > 0 {
			fmt.Fprintf(w, "Slot: %d\n", response.Slot)
		}
		if response.BlockTime != "" {
			fmt.Fprintf(w, "Block time: %s\n", response.BlockTime)
		}
		return nil
	}
}
