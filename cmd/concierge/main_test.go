package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperjump/concierge/internal/intent"
	"github.com/hyperjump/concierge/internal/models"
)

func TestPrototypeOverrides(t *testing.T) {
	got := prototypeOverrides(map[string]string{
		"deposit": "depositar fundos",
		"balance": "saldo da conta",
	})
	if got[intent.Deposit] != "depositar fundos" {
		t.Errorf("deposit: got %q", got[intent.Deposit])
	}
	if got[intent.Balance] != "saldo da conta" {
		t.Errorf("balance: got %q", got[intent.Balance])
	}
	if len(got) != 2 {
		t.Errorf("len: got %d, want 2", len(got))
	}
}

func TestPostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content type: %q", r.Header.Get("Content-Type"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":"ok","intent":"balance","language":"en"}`))
	}))
	defer srv.Close()

	var out models.ChatResponse
	if err := postJSON(srv.URL, &models.ChatRequest{Query: "balance"}, &out); err != nil {
		t.Fatal(err)
	}
	if out.Intent != "balance" {
		t.Errorf("intent: got %q", out.Intent)
	}
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method: %q", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"embedding_model":"unavailable","intent_cache":4,"interactions":12}`))
	}))
	defer srv.Close()

	var out models.StatusResponse
	if err := getJSON(srv.URL, &out); err != nil {
		t.Fatal(err)
	}
	if out.EmbeddingModel != "unavailable" || out.IntentCache != 4 {
		t.Errorf("status: %+v", out)
	}
	if out.Interactions == nil || *out.Interactions != 12 {
		t.Errorf("interactions: %v", out.Interactions)
	}
}

func TestGetJSON_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"count failed"}`))
	}))
	defer srv.Close()

	var out models.StatusResponse
	err := getJSON(srv.URL, &out)
	if err == nil || !strings.Contains(err.Error(), "count failed") {
		t.Errorf("got %v, want server error message", err)
	}
}

func TestPostJSON_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"query cannot be empty"}`))
	}))
	defer srv.Close()

	var out models.ChatResponse
	err := postJSON(srv.URL, &models.ChatRequest{}, &out)
	if err == nil || !strings.Contains(err.Error(), "query cannot be empty") {
		t.Errorf("got %v, want server error message", err)
	}
}
