package gateway

import (
	"context"
	"fmt"

	"github.com/cruxstack/email-validator-view-go/internal/config"
	"github.com/cruxstack/email-validator-view-go/internal/policy"
)

// Decrypter resolves gateway secrets stored as ciphertext.
type Decrypter interface {
	Decrypt(ctx context.Context, keyId, ciphertext string) (string, error)
}

// New builds the configured gateway chain: provider (or failover chain),
// then whitelist, then policy. dec may be nil when no KMS key is configured.
func New(ctx context.Context, cfg *config.Config, dec Decrypter) (Gateway, error) {
	resolved, err := resolveSecrets(ctx, cfg, dec)
	if err != nil {
		return nil, err
	}

	var gateways []Gateway
	for _, name := range resolved.Providers() {
		g, err := newProvider(resolved, name)
		if err != nil {
			return nil, err
		}
		gateways = append(gateways, g)
	}

	var g Gateway = gateways[0]
	if len(gateways) > 1 {
		g = NewFailoverGateway(gateways, resolved.AppGatewayHealthTTL)
	}

	if len(resolved.AppGatewayWhitelist) > 0 {
		g = NewWhitelistGateway(g, resolved.AppGatewayWhitelist)
	}

	if resolved.AppGatewayPolicyPath != "" {
		p, err := policy.Load(ctx, resolved.AppGatewayPolicyPath)
		if err != nil {
			return nil, err
		}
		g = NewPolicyGateway(g, p)
	}

	return g, nil
}

func newProvider(cfg *config.Config, name string) (Gateway, error) {
	switch name {
	case config.ProviderRemote:
		return NewRemoteGateway(cfg), nil
	case config.ProviderSendGrid:
		return NewSendGridGateway(cfg), nil
	case config.ProviderOffline:
		return NewOfflineGateway(), nil
	default:
		return nil, fmt.Errorf("unknown gateway provider: %s", name)
	}
}

func resolveSecrets(ctx context.Context, cfg *config.Config, dec Decrypter) (*config.Config, error) {
	out := *cfg
	if cfg.AppKmsKeyId == "" {
		return &out, nil
	}
	if dec == nil {
		return nil, fmt.Errorf("APP_KMS_KEY_ID is set but no decrypter is available")
	}

	var err error
	if out.SendGridApiKey, err = dec.Decrypt(ctx, cfg.AppKmsKeyId, cfg.SendGridApiKey); err != nil {
		return nil, fmt.Errorf("failed to decrypt sendgrid api key: %w", err)
	}
	if out.RemoteGatewayToken, err = dec.Decrypt(ctx, cfg.AppKmsKeyId, cfg.RemoteGatewayToken); err != nil {
		return nil, fmt.Errorf("failed to decrypt remote gateway token: %w", err)
	}

	return &out, nil
}
