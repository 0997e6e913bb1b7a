package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Detection
	DetectorType     string        `envconfig:"DETECTOR_TYPE" default:"heuristic"`
	DetectionURL     string        `envconfig:"DETECTION_URL" default:"http://localhost:8600"`
	DetectionTimeout time.Duration `envconfig:"DETECTION_TIMEOUT" default:"15s"`
	ScoreSeed        int64         `envconfig:"SCORE_SEED" default:"0"`
	FlagThreshold    int           `envconfig:"FLAG_THRESHOLD" default:"60"`

	// AWS (rekognition detector)
	AWSRegion string `envconfig:"AWS_REGION" default:"us-east-1"`

	// Ledger
	LedgerRPCURL     string        `envconfig:"LEDGER_RPC_URL" default:"https://rpc-mumbai.maticvigil.com"`
	LedgerContract   string        `envconfig:"LEDGER_CONTRACT" default:"0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb1"`
	LedgerPrivateKey string        `envconfig:"LEDGER_PRIVATE_KEY"`
	LedgerChainID    int64         `envconfig:"LEDGER_CHAIN_ID" default:"80001"`
	LedgerGasLimit   uint64        `envconfig:"LEDGER_GAS_LIMIT" default:"300000"`
	LedgerTimeout    time.Duration `envconfig:"LEDGER_TIMEOUT" default:"45s"`

	// Sliding-window request limit per caller, zero disables it
	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"120"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
