package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/concierge/internal/models"
	"github.com/hyperjump/concierge/internal/solana"
	"github.com/hyperjump/concierge/pkg/utils"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	lang := s.replies.DetectLanguage(req.Query)
	start := time.Now()
	label, strategy := s.resolver.Classify(r.Context(), req.Query)
	duration := time.Since(start)

	s.logger.Info("chat resolved",
		zap.String("query", utils.Truncate(req.Query, 200)),
		zap.String("language", lang),
		zap.String("intent", string(label)),
		zap.String("strategy", string(strategy)),
		zap.Duration("duration", duration),
	)

	if s.storage != nil {
		interaction := &models.Interaction{
			Query:      req.Query,
			Language:   lang,
			Intent:     string(label),
			Strategy:   string(strategy),
			DurationMS: duration.Milliseconds(),
		}
		if err := s.storage.RecordInteraction(r.Context(), interaction); err != nil {
			s.logger.Warn("interaction log failed", zap.Error(err))
		}
	}

	s.respondJSON(w, http.StatusOK, &models.ChatResponse{
		Response: s.replies.Build(lang, label),
		Intent:   string(label),
		Language: lang,
	})
}

func (s *Server) handleVerifyTx(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	verification, err := s.verifier.VerifyTransaction(r.Context(), req.TxHash)
	if err != nil {
		switch {
		case errors.Is(err, solana.ErrInvalidSignature):
			s.respondError(w, http.StatusBadRequest, "invalid tx hash")
		case errors.Is(err, solana.ErrNotFound):
			s.respondError(w, http.StatusNotFound, "transaction not found")
		default:
			s.logger.Error("transaction verification failed",
				zap.String("tx_hash", utils.Truncate(req.TxHash, 96)),
				zap.Error(err))
			s.respondError(w, http.StatusBadGateway, "verification failed")
		}
		return
	}

	dateStr := "Data desconhecida"
	blockTime := ""
	if verification.HasBlockTime {
		dateStr = verification.BlockTime.Format("02/01/2006 15:04")
		blockTime = verification.BlockTime.Format(time.RFC3339)
	}
	s.respondJSON(w, http.StatusOK, &models.VerifyResponse{
		Response: fmt.Sprintf("Transação válida! Data: %s. Mudança de saldo: %.4f SOL (aprox).",
			dateStr, verification.SolDelta),
		Slot:      verification.Slot,
		BlockTime: blockTime,
		SolDelta:  verification.SolDelta,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := &models.StatusResponse{
		EmbeddingModel: s.provisioner.Status(),
		IntentCache:    s.resolver.CacheSize(),
	}
	if s.storage != nil {
		count, err := s.storage.CountInteractions(r.Context())
		if err != nil {
			s.logger.Error("status: count interactions failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Interactions = &count
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGreet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, s.replies.Greet(name))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encoding failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
