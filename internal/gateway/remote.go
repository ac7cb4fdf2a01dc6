package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sendgrid/rest"

	"github.com/cruxstack/email-validator-view-go/internal/config"
	"github.com/cruxstack/email-validator-view-go/internal/types"
)

// RemoteGateway calls a JSON validation service that answers with the
// ValidationResult shape directly.
type RemoteGateway struct {
	URL    string
	Token  string
	Client *rest.Client
}

func NewRemoteGateway(cfg *config.Config) *RemoteGateway {
	return &RemoteGateway{
		URL:    cfg.RemoteGatewayURL,
		Token:  cfg.RemoteGatewayToken,
		Client: rest.DefaultClient,
	}
}

func (g *RemoteGateway) Name() string {
	return "remote"
}

func (g *RemoteGateway) Validate(ctx context.Context, email string) (*types.ValidationResult, error) {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return nil, fmt.Errorf("remote request marshal error: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	if g.Token != "" {
		headers["Authorization"] = "Bearer " + g.Token
	}

	request := rest.Request{
		Method:  rest.Post,
		BaseURL: g.URL,
		Headers: headers,
		Body:    body,
	}

	client := g.Client
	if client == nil {
		client = rest.DefaultClient
	}

	response, err := client.SendWithContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("remote api error: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &Error{
			Gateway:    g.Name(),
			StatusCode: response.StatusCode,
			Body:       ParseErrorBody(response.Body),
		}
	}

	if strings.TrimSpace(response.Body) == "" || strings.TrimSpace(response.Body) == "null" {
		return nil, ErrEmptyResult
	}

	var result types.ValidationResult
	if err := json.Unmarshal([]byte(response.Body), &result); err != nil {
		return nil, fmt.Errorf("remote unmarshal error: %w", err)
	}

	return &result, nil
}
