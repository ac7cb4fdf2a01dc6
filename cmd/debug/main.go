package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/cruxstack/email-validator-view-go/internal/app"
	"github.com/cruxstack/email-validator-view-go/internal/config"
	"github.com/cruxstack/email-validator-view-go/internal/types"
)

var (
	dataPath   string
	policyPath string
)

func init() {
	flag.StringVar(&dataPath, "data", "", "path to JSON file with ui event scripts")
	flag.StringVar(&policyPath, "policy", "", "override path to Rego policy file")
	flag.Parse()
}

func NewDebugConfig() (*config.Config, error) {
	envpath := filepath.Join("..", "..", ".env")
	if _, err := os.Stat(envpath); err == nil {
		_ = godotenv.Load(envpath)
	}

	// debug runs work without credentials unless a provider is chosen
	if os.Getenv("APP_GATEWAY_PROVIDER") == "" {
		_ = os.Setenv("APP_GATEWAY_PROVIDER", config.ProviderOffline)
	}

	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	cfg.DebugMode = true

	if policyPath != "" {
		cfg.AppGatewayPolicyPath = policyPath
	}

	if cfg.DebugDataPath == "" {
		cfg.DebugDataPath = filepath.Join("..", "..", "fixtures", "debug-data.json")
	}
	if dataPath != "" {
		cfg.DebugDataPath = dataPath
	}

	return cfg, nil
}

func main() {
	cfg, err := NewDebugConfig()
	if err != nil {
		log.Fatal("failed to load debug config", "error", err)
	}

	handler := log.NewWithOptions(os.Stderr, log.Options{Level: log.Level(cfg.AppLogLevel)})
	slog.SetDefault(slog.New(handler))

	a, err := app.NewApp(context.Background(), cfg)
	if err != nil {
		log.Fatal("failed to init app", "error", err)
	}

	data, err := os.ReadFile(cfg.DebugDataPath)
	if err != nil {
		log.Fatal("failed to read data file", "path", cfg.DebugDataPath, "error", err)
	}

	requests := []types.ValidationRequest{}
	if err := json.Unmarshal(data, &requests); err != nil {
		log.Fatal("failed to parse data file", "error", err)
	}

	for i, req := range requests {
		resp := a.Handle(context.Background(), req)

		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			log.Fatal("failed to marshal response", "index", i, "error", err)
		}
		fmt.Println(string(out))

		log.Info("debug iteration done", "index", i, "phase", resp.Phase, "error_message", resp.ErrorMessage)
	}
}
