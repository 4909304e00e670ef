package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ChatRatePerMinute == 0 {
		cfg.Server.ChatRatePerMinute = 10
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/concierge/data/db/interactions.db"
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/concierge/data/models/paraphrase-multilingual-MiniLM-L12-v2.onnx"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 256
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Intent.Threshold == 0 {
		cfg.Intent.Threshold = 0.62
	}
	if cfg.Reply.AccountName == "" {
		cfg.Reply.AccountName = "Tomás"
	}
	if cfg.Reply.Balance == 0 {
		cfg.Reply.Balance = 1250.75
	}
	if cfg.Solana.RPCURL == "" {
		cfg.Solana.RPCURL = "https://api.mainnet-beta.solana.com"
	}
	if cfg.Solana.TimeoutSeconds == 0 {
		cfg.Solana.TimeoutSeconds = 30
	}
}
