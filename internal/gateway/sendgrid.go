package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"

	"github.com/cruxstack/email-validator-view-go/internal/config"
	"github.com/cruxstack/email-validator-view-go/internal/types"
)

const sendGridValidationPath = "/v3/validations/email"

type SendGridDomainChecks struct {
	HasValidAddressSyntax        bool `json:"has_valid_address_syntax"`
	HasMXOrARecord               bool `json:"has_mx_or_a_record"`
	IsSuspectedDisposableAddress bool `json:"is_suspected_disposable_address"`
}

type SendGridLocalPartChecks struct {
	IsSuspectedRoleAddress bool `json:"is_suspected_role_address"`
}

type SendGridAdditionalChecks struct {
	HasKnownBounces     bool `json:"has_known_bounces"`
	HasSuspectedBounces bool `json:"has_suspected_bounces"`
}

type SendGridValidationChecks struct {
	Domain     SendGridDomainChecks     `json:"domain"`
	LocalPart  SendGridLocalPartChecks  `json:"local_part"`
	Additional SendGridAdditionalChecks `json:"additional"`
}

type SendGridValidationResult struct {
	Email      string                   `json:"email"`
	Verdict    string                   `json:"verdict"`
	Score      float32                  `json:"score"`
	Local      string                   `json:"local"`
	Host       string                   `json:"host"`
	Suggestion string                   `json:"suggestion,omitempty"`
	Checks     SendGridValidationChecks `json:"checks"`
}

type SendGridValidationResponse struct {
	Result SendGridValidationResult `json:"result"`
}

// SendGridGateway validates addresses with the SendGrid email validation API.
type SendGridGateway struct {
	APIHost string
	APIKey  string
}

func NewSendGridGateway(cfg *config.Config) *SendGridGateway {
	return &SendGridGateway{
		APIHost: cfg.SendGridApiHost,
		APIKey:  cfg.SendGridApiKey,
	}
}

func (g *SendGridGateway) Name() string {
	return "sendgrid"
}

func (g *SendGridGateway) Validate(ctx context.Context, email string) (*types.ValidationResult, error) {
	body, err := json.Marshal(map[string]string{"email": email, "source": "email-validator"})
	if err != nil {
		return nil, fmt.Errorf("sendgrid request marshal error: %w", err)
	}

	request := sendgrid.GetRequest(g.APIKey, sendGridValidationPath, g.APIHost)
	request.Method = "POST"
	request.Body = body

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("sendgrid api error: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &Error{
			Gateway:    g.Name(),
			StatusCode: response.StatusCode,
			Body:       ParseErrorBody(response.Body),
		}
	}

	var payload SendGridValidationResponse
	if err := json.Unmarshal([]byte(response.Body), &payload); err != nil {
		return nil, fmt.Errorf("sendgrid unmarshal error: %w", err)
	}

	return fromSendGrid(email, payload.Result), nil
}

func fromSendGrid(email string, r SendGridValidationResult) *types.ValidationResult {
	valid := r.Verdict != "" && r.Verdict != "Invalid"
	bounced := r.Checks.Additional.HasKnownBounces || r.Checks.Additional.HasSuspectedBounces

	result := &types.ValidationResult{
		Status:        types.StatusInvalid,
		IsValid:       valid,
		SyntaxValid:   r.Checks.Domain.HasValidAddressSyntax,
		DomainExists:  r.Checks.Domain.HasMXOrARecord,
		HasMxRecord:   r.Checks.Domain.HasMXOrARecord,
		MailboxExists: valid && !bounced,
		IsDisposable:  r.Checks.Domain.IsSuspectedDisposableAddress,
		IsRoleBased:   r.Checks.LocalPart.IsSuspectedRoleAddress,
	}
	if valid {
		result.Status = types.StatusValid
	}

	// sendgrid suggests a domain, the page expects a full address
	if r.Suggestion != "" {
		local := r.Local
		if local == "" {
			if at := strings.LastIndex(email, "@"); at > 0 {
				local = email[:at]
			}
		}
		if local != "" && !strings.Contains(r.Suggestion, "@") {
			result.Suggestion = local + "@" + r.Suggestion
		} else {
			result.Suggestion = r.Suggestion
		}
	}

	return result
}
