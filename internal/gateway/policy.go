package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cruxstack/email-validator-view-go/internal/policy"
	"github.com/cruxstack/email-validator-view-go/internal/types"
)

// PolicyGateway evaluates a pre-submission policy before calling Next.
type PolicyGateway struct {
	Next   Gateway
	Policy *policy.Policy
}

func NewPolicyGateway(next Gateway, p *policy.Policy) *PolicyGateway {
	return &PolicyGateway{Next: next, Policy: p}
}

func (g *PolicyGateway) Name() string {
	return g.Next.Name()
}

func (g *PolicyGateway) Validate(ctx context.Context, email string) (*types.ValidationResult, error) {
	input := policy.Input{Email: email}
	if at := strings.LastIndex(email, "@"); at >= 0 {
		input.Local = email[:at]
		input.Domain = strings.ToLower(email[at+1:])
	}

	decision, err := g.Policy.Decide(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if decision.Denied() {
		return nil, &Error{
			Gateway:    "policy",
			StatusCode: http.StatusForbidden,
			Body:       &ErrorBody{Message: decision.DenyReason()},
		}
	}

	return g.Next.Validate(ctx, email)
}
