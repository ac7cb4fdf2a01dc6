// package policy evaluates the rego pre-submission policy with the opa v1 sdk
package policy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"
)

const DefaultQuery = "data.email_validator_policy.result"

// DefaultDenyReason is shown when a deny decision carries no reason.
const DefaultDenyReason = "validation denied by policy"

var ErrUnknownAction = errors.New("policy returned an unknown action")

// Action is what the policy decided to do with a submission.
type Action string

const (
	ActionAllow Action = "allow"
	ActionDeny  Action = "deny"
)

// Input is the document exposed to the policy as `input`.
type Input struct {
	Email  string `json:"email"`
	Local  string `json:"local"`
	Domain string `json:"domain"`
}

// Decision is the shape the policy's result rule must produce.
type Decision struct {
	Action Action `json:"action"`
	Reason string `json:"reason,omitempty"`
}

func (d *Decision) Denied() bool {
	return d.Action == ActionDeny
}

// DenyReason is the message shown to the user for a denied submission.
func (d *Decision) DenyReason() string {
	if d.Reason == "" {
		return DefaultDenyReason
	}
	return d.Reason
}

// Policy holds a compiled query ready for evaluation.
type Policy struct {
	query rego.PreparedEvalQuery
}

// Prepare compiles the policy source once; the result is reused per call.
func Prepare(ctx context.Context, src string, query string) (*Policy, error) {
	if query == "" {
		query = DefaultQuery
	}

	r := rego.New(
		rego.Query(query),
		rego.Module("policy.rego", src),
		rego.SetRegoVersion(ast.RegoV1),
	)

	pq, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare policy: %w", err)
	}

	return &Policy{query: pq}, nil
}

// Load reads and compiles a policy file.
func Load(ctx context.Context, path string) (*Policy, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return Prepare(ctx, string(src), DefaultQuery)
}

func (p *Policy) Decide(ctx context.Context, input Input) (*Decision, error) {
	rs, err := p.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return nil, fmt.Errorf("no results found during policy evaluation")
	}

	bs, err := json.Marshal(rs[0].Expressions[0].Value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal policy result: %w", err)
	}

	var d Decision
	if err := json.Unmarshal(bs, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal policy result: %w", err)
	}

	switch d.Action {
	case ActionAllow, ActionDeny:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, d.Action)
	}

	return &d, nil
}
