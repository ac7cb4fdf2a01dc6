package gateway

import (
	"context"
	"net/mail"
	"strings"

	"github.com/cruxstack/email-validator-view-go/internal/types"
)

// OfflineGateway performs a syntax-only check without network calls. DNS,
// MX and mailbox checks are reported as not confirmed.
type OfflineGateway struct{}

func NewOfflineGateway() *OfflineGateway {
	return &OfflineGateway{}
}

func (g *OfflineGateway) Name() string {
	return "offline"
}

func (g *OfflineGateway) Validate(ctx context.Context, email string) (*types.ValidationResult, error) {
	invalid := &types.ValidationResult{Status: types.StatusInvalid}

	_, domain, ok := splitAddress(email)
	if !ok || !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return invalid, nil
	}

	return &types.ValidationResult{
		Status:      types.StatusValid,
		IsValid:     true,
		SyntaxValid: true,
	}, nil
}

// splitAddress parses a bare address and returns its local part and domain.
// Display names, angle brackets and comments are rejected.
func splitAddress(email string) (local, domain string, ok bool) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != strings.TrimSpace(email) {
		return "", "", false
	}
	at := strings.LastIndex(addr.Address, "@")
	if at <= 0 || at == len(addr.Address)-1 {
		return "", "", false
	}
	return addr.Address[:at], addr.Address[at+1:], true
}
