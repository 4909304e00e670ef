// Package main is the concierge CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/concierge/internal/cli"
	"github.com/hyperjump/concierge/internal/config"
	"github.com/hyperjump/concierge/internal/embedding"
	"github.com/hyperjump/concierge/internal/intent"
	"github.com/hyperjump/concierge/internal/models"
	"github.com/hyperjump/concierge/internal/reply"
	"github.com/hyperjump/concierge/internal/server"
	"github.com/hyperjump/concierge/internal/solana"
	"github.com/hyperjump/concierge/internal/storage"
	"github.com/hyperjump/concierge/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/concierge/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ask":
		runAsk()
	case "verify-tx":
		runVerifyTx()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("concierge version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (per-query resolution scores, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to open interaction storage", zap.Error(err))
	}
	defer store.Close()

	provisioner := intent.NewProvisioner(func() (embedding.Embedder, error) {
		emb, err := embedding.NewONNXEmbedder(
			cfg.Embedding.ModelPath,
			cfg.Embedding.Dimensions,
			cfg.Embedding.MaxTokens,
			cfg.Embedding.CacheSize,
		)
		if err != nil {
			return nil, err
		}
		return emb, nil
	}, logger)
	defer provisioner.Close()

	resolver := intent.NewResolver(provisioner, logger,
		intent.WithThreshold(cfg.Intent.Threshold),
		intent.WithPrototypes(prototypeOverrides(cfg.Intent.Prototypes)),
	)
	replies := reply.NewBuilder(cfg.Reply.AccountName, cfg.Reply.Balance)
	verifier := solana.NewClient(cfg.Solana.RPCURL, time.Duration(cfg.Solana.TimeoutSeconds)*time.Second)

	srv := server.NewServer(resolver, provisioner, replies, verifier, store, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Warn("shutdown failed", zap.Error(err))
	}
}

// prototypeOverrides converts the config's string-keyed map to intent labels.
func prototypeOverrides(overrides map[string]string) map[intent.Label]string {
	result := make(map[intent.Label]string, len(overrides))
	for label, text := range overrides {
		result[intent.Label(label)] = text
	}
	return result
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	jsonOut := fs.Bool("json", false, "output JSON")
	_ = fs.Parse(os.Args[2:])

	query := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(os.Stderr, "Usage: concierge ask [flags] <query>")
		os.Exit(1)
	}

	var response models.ChatResponse
	if err := postJSON(*serverURL+"/api/v1/chat", &models.ChatRequest{Query: query}, &response); err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}

	format := cli.OutputText
	if *jsonOut {
		format = cli.OutputJSON
	}
	if err := cli.WriteChatResponse(os.Stdout, &response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runVerifyTx() {
	fs := flag.NewFlagSet("verify-tx", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	jsonOut := fs.Bool("json", false, "output JSON")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: concierge verify-tx [flags] <tx-hash>")
		os.Exit(1)
	}

	var response models.VerifyResponse
	if err := postJSON(*serverURL+"/api/v1/verify-tx", &models.VerifyRequest{TxHash: fs.Arg(0)}, &response); err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}

	format := cli.OutputText
	if *jsonOut {
		format = cli.OutputJSON
	}
	if err := cli.WriteVerifyResponse(os.Stdout, &response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	jsonOut := fs.Bool("json", false, "output JSON")
	_ = fs.Parse(os.Args[2:])

	var status models.StatusResponse
	if err := getJSON(*serverURL+"/api/v1/status", &status); err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}

	format := cli.OutputText
	if *jsonOut {
		format = cli.OutputJSON
	}
	if err := cli.WriteStatus(os.Stdout, &status, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// postJSON posts body to url and decodes the JSON response into out.
// Non-2xx responses are returned as errors carrying the server's error message.
func postJSON(url string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %s: %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// getJSON fetches url and decodes the JSON response into out, with the same
// error handling as postJSON.
func getJSON(url string, out interface{}) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %s: %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func printUsage() {
	fmt.Println(`concierge - intent-routed account concierge

Usage:
  concierge server [-config path] [-debug]     start the HTTP server
  concierge ask [-server url] [-json] <query>  ask the concierge a question
  concierge verify-tx [-server url] [-json] <tx-hash>
                                                verify a Solana transaction
  concierge status [-server url] [-json]        show server status
  concierge version                             print version
  concierge help                                show this help`)
}
