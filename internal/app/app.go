package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cruxstack/email-validator-view-go/internal/aws"
	"github.com/cruxstack/email-validator-view-go/internal/config"
	"github.com/cruxstack/email-validator-view-go/internal/gateway"
	"github.com/cruxstack/email-validator-view-go/internal/session"
	"github.com/cruxstack/email-validator-view-go/internal/types"
	"github.com/cruxstack/email-validator-view-go/internal/view"
)

// App hosts validator sessions. Each request gets its own Session.
type App struct {
	Config  *config.Config
	Gateway gateway.Gateway
	Logger  *slog.Logger
}

// Response is what the page renders: the session state plus the display
// decisions derived from its result.
type Response struct {
	session.Snapshot
	View *view.View `json:"view,omitempty"`
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	var dec gateway.Decrypter
	if cfg.AppKmsKeyId != "" {
		client, err := aws.NewAWSClient(ctx, cfg.AWSConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create aws client: %w", err)
		}
		dec = client.KMS
	}

	gw, err := gateway.New(ctx, cfg, dec)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway: %w", err)
	}

	return &App{
		Config:  cfg,
		Gateway: gw,
		Logger:  slog.Default(),
	}, nil
}

// Handle replays the request's UI events against a fresh session.
func (a *App) Handle(ctx context.Context, req types.ValidationRequest) Response {
	s := session.New(a.Gateway, session.WithLogger(a.Logger))

	for _, e := range requestEvents(req) {
		switch e.Type {
		case types.EventInput:
			s.InputChanged(e.Value)
		case types.EventKey:
			s.KeyUp(ctx, e.Key)
		case types.EventSubmit:
			s.Submit(ctx)
		default:
			slog.WarnContext(ctx, "ignoring unknown ui event", "type", e.Type)
		}
	}

	return render(s)
}

func requestEvents(req types.ValidationRequest) []types.UIEvent {
	if len(req.Events) > 0 {
		return req.Events
	}
	if req.Email == "" {
		return nil
	}
	return []types.UIEvent{
		{Type: types.EventInput, Value: req.Email},
		{Type: types.EventSubmit},
	}
}

func render(s *session.Session) Response {
	resp := Response{Snapshot: s.Snapshot()}
	if s.HasResult() {
		if v, ok := view.Render(s.Result()); ok {
			resp.View = &v
		}
	}
	return resp
}
