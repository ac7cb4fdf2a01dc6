package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

const (
	ProviderRemote   = "remote"
	ProviderSendGrid = "sendgrid"
	ProviderOffline  = "offline"
)

var validProviders = map[string]bool{
	ProviderRemote:   true,
	ProviderSendGrid: true,
	ProviderOffline:  true,
}

type Config struct {
	AWSConfig            *aws.Config
	AppLogLevel          slog.Level
	AppKmsKeyId          string
	AppGatewayProvider   string
	AppGatewayWhitelist  []string
	AppGatewayPolicyPath string
	DebugMode            bool
	DebugDataPath        string
	RemoteGatewayURL     string
	RemoteGatewayToken   string
	SendGridApiHost      string
	SendGridApiKey       string

	// Failover configuration
	AppGatewayFailoverEnabled   bool
	AppGatewayFailoverProviders []string
	AppGatewayHealthTTL         time.Duration
}

func New() (*Config, error) {
	cfg := Config{
		DebugMode:            os.Getenv("APP_DEBUG_MODE") == "true",
		DebugDataPath:        os.Getenv("APP_DEBUG_DATA_PATH"),
		AppLogLevel:          slog.LevelInfo,
		AppKmsKeyId:          os.Getenv("APP_KMS_KEY_ID"),
		AppGatewayProvider:   strings.ToLower(strings.TrimSpace(os.Getenv("APP_GATEWAY_PROVIDER"))),
		AppGatewayWhitelist:  splitList(os.Getenv("APP_GATEWAY_WHITELIST")),
		AppGatewayPolicyPath: os.Getenv("APP_GATEWAY_POLICY_PATH"),
		RemoteGatewayURL:     os.Getenv("APP_REMOTE_GATEWAY_URL"),
		RemoteGatewayToken:   os.Getenv("APP_REMOTE_GATEWAY_TOKEN"),
		SendGridApiHost:      os.Getenv("APP_SENDGRID_API_HOST"),
		SendGridApiKey:       os.Getenv("APP_SENDGRID_API_KEY"),

		// Failover defaults
		AppGatewayFailoverEnabled:   os.Getenv("APP_GATEWAY_FAILOVER_ENABLED") == "true",
		AppGatewayFailoverProviders: splitList(os.Getenv("APP_GATEWAY_FAILOVER_PROVIDERS")),
		AppGatewayHealthTTL:         30 * time.Second,
	}

	if levelStr := os.Getenv("APP_LOG_LEVEL"); levelStr != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(levelStr)); err == nil {
			cfg.AppLogLevel = level
		}
	}

	if !validProviders[cfg.AppGatewayProvider] {
		if cfg.AppGatewayProvider != "" {
			slog.Warn("unknown gateway provider, defaulting to sendgrid", "provider", cfg.AppGatewayProvider)
		}
		cfg.AppGatewayProvider = ProviderSendGrid
	}

	if cfg.SendGridApiHost == "" {
		cfg.SendGridApiHost = "https://api.sendgrid.com"
	}

	if ttlStr := os.Getenv("APP_GATEWAY_HEALTH_TTL"); ttlStr != "" {
		if ttl, err := time.ParseDuration(ttlStr); err == nil {
			cfg.AppGatewayHealthTTL = ttl
		} else {
			slog.Warn("invalid APP_GATEWAY_HEALTH_TTL, using default", "value", ttlStr, "default", "30s")
		}
	}

	// secrets are kms ciphertext when a key is configured
	if cfg.AppKmsKeyId != "" {
		awscfg, err := config.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, err
		}
		cfg.AWSConfig = &awscfg
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Providers returns the primary provider followed by any failover providers.
func (c *Config) Providers() []string {
	providers := []string{c.AppGatewayProvider}
	if c.AppGatewayFailoverEnabled {
		for _, p := range c.AppGatewayFailoverProviders {
			if p != c.AppGatewayProvider {
				providers = append(providers, p)
			}
		}
	}
	return providers
}

// Validate checks that required configuration fields are set and valid
func (c *Config) Validate() error {
	if c.AppGatewayFailoverEnabled {
		if len(c.AppGatewayFailoverProviders) == 0 {
			return errors.New("APP_GATEWAY_FAILOVER_PROVIDERS is required when failover is enabled")
		}
		for _, p := range c.AppGatewayFailoverProviders {
			if !validProviders[p] {
				return fmt.Errorf("invalid failover provider: %s (must be 'remote', 'sendgrid' or 'offline')", p)
			}
		}
	}

	for _, p := range c.Providers() {
		switch p {
		case ProviderRemote:
			if c.RemoteGatewayURL == "" {
				return errors.New("APP_REMOTE_GATEWAY_URL is required when using the remote gateway")
			}
		case ProviderSendGrid:
			if c.SendGridApiKey == "" {
				return errors.New("APP_SENDGRID_API_KEY is required when using the sendgrid gateway")
			}
		}
	}

	return nil
}

func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
