package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/concierge/internal/models"
)

func TestWriteChatResponse_Text(t *testing.T) {
	var buf bytes.Buffer
	resp := &models.ChatResponse{Response: "O teu saldo é 1250.75 USDC.", Intent: "balance", Language: "pt"}
	if err := WriteChatResponse(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "[balance/pt]") {
		t.Errorf("missing intent header: %q", out)
	}
	if !strings.Contains(out, "saldo") {
		t.Errorf("missing response text: %q", out)
	}
}

func TestWriteChatResponse_JSON(t *testing.T) {
	var buf bytes.Buffer
	resp := &models.ChatResponse{Response: "hi", Intent: "unknown", Language: "en"}
	if err := WriteChatResponse(&buf, resp, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.ChatResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Intent != "unknown" || decoded.Language != "en" {
		t.Errorf("round trip: %+v", decoded)
	}
}

func TestWriteStatus_Text(t *testing.T) {
	var buf bytes.Buffer
	count := 7
	status := &models.StatusResponse{EmbeddingModel: "available", IntentCache: 3, Interactions: &count}
	if err := WriteStatus(&buf, status, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "available") || !strings.Contains(out, "7") {
		t.Errorf("missing details: %q", out)
	}

	buf.Reset()
	if err := WriteStatus(&buf, &models.StatusResponse{EmbeddingModel: "uninitialized"}, OutputText); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "Interactions") {
		t.Errorf("interactions line without storage: %q", buf.String())
	}
}

func TestWriteStatus_JSON(t *testing.T) {
	var buf bytes.Buffer
	count := 2
	status := &models.StatusResponse{EmbeddingModel: "unavailable", IntentCache: 1, Interactions: &count}
	if err := WriteStatus(&buf, status, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.StatusResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.EmbeddingModel != "unavailable" || decoded.Interactions == nil || *decoded.Interactions != 2 {
		t.Errorf("round trip: %+v", decoded)
	}
}

func TestWriteVerifyResponse_Text(t *testing.T) {
	var buf bytes.Buffer
	resp := &models.VerifyResponse{
		Response:  "Transação válida!",
		Slot:      42,
		BlockTime: "2026-01-01T00:00:00Z",
		SolDelta:  -1.5,
	}
	if err := WriteVerifyResponse(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Slot: 42") || !strings.Contains(out, "Block time:") {
		t.Errorf("missing details: %q", out)
	}
}
