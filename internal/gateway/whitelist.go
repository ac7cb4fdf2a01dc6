package gateway

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/net/idna"

	"github.com/cruxstack/email-validator-view-go/internal/types"
)

// WhitelistGateway answers for well-formed addresses on trusted domains
// locally and forwards everything else to Next.
type WhitelistGateway struct {
	Next    Gateway
	domains map[string]struct{}
}

func NewWhitelistGateway(next Gateway, domains []string) *WhitelistGateway {
	g := &WhitelistGateway{Next: next, domains: make(map[string]struct{}, len(domains))}
	for _, d := range domains {
		if n := normalizeDomain(d); n != "" {
			g.domains[n] = struct{}{}
		}
	}
	return g
}

func (g *WhitelistGateway) Name() string {
	return g.Next.Name()
}

func (g *WhitelistGateway) Validate(ctx context.Context, email string) (*types.ValidationResult, error) {
	if r := g.lookup(email); r != nil {
		slog.DebugContext(ctx, "whitelisted domain, skipping gateway", "gateway", g.Next.Name())
		return r, nil
	}
	return g.Next.Validate(ctx, email)
}

func (g *WhitelistGateway) lookup(email string) *types.ValidationResult {
	_, domain, ok := splitAddress(email)
	if !ok {
		return nil
	}
	if _, ok := g.domains[normalizeDomain(domain)]; !ok {
		return nil
	}
	return &types.ValidationResult{
		Status:        types.StatusValid,
		IsValid:       true,
		SyntaxValid:   true,
		DomainExists:  true,
		HasMxRecord:   true,
		MailboxExists: true,
	}
}

func normalizeDomain(d string) string {
	d = strings.TrimSuffix(strings.TrimSpace(d), ".")
	if d == "" {
		return ""
	}
	ascii, err := idna.Lookup.ToASCII(d)
	if err != nil {
		return strings.ToLower(d)
	}
	return strings.ToLower(ascii)
}
