// Package session holds the interaction state of one validator widget: the
// typed address, the phase of the single outstanding validation, and its
// terminal result or error message.
//
// A Session is owned by one caller and is not safe for concurrent use.
package session

import (
	"context"
	"log/slog"

	"github.com/cruxstack/email-validator-view-go/internal/gateway"
	"github.com/cruxstack/email-validator-view-go/internal/types"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

type Option func(*Session)

// WithLogger installs a logger that receives every completed validation.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

type Session struct {
	gateway gateway.Gateway
	logger  *slog.Logger

	input        string
	phase        Phase
	email        string
	result       *types.ValidationResult
	errorMessage string
}

func New(gw gateway.Gateway, opts ...Option) *Session {
	s := &Session{
		gateway: gw,
		logger:  slog.New(slog.DiscardHandler),
		phase:   PhaseIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Input() string { return s.input }
func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Result() *types.ValidationResult { return s.result }
func (s *Session) ErrorMessage() string { return s.errorMessage }

// ValidateDisabled reports whether the submit action must be disabled.
func (s *Session) ValidateDisabled() bool {
	return s.input == "" || s.phase == PhaseLoading
}

func (s *Session) HasResult() bool {
	return s.result != nil && s.phase != PhaseLoading
}

// InputChanged records an edit. Editing after a failure dismisses the stale
// error and returns the session to idle.
func (s *Session) InputChanged(value string) {
	s.input = value
	if s.phase == PhaseFailed {
		s.errorMessage = ""
		s.phase = PhaseIdle
	}
}

// KeyUp submits on Enter when there is input. It reports whether a
// validation ran.
func (s *Session) KeyUp(ctx context.Context, key string) bool {
	if key != "Enter" || s.input == "" {
		return false
	}
	return s.Submit(ctx)
}

// Submit validates the current input.
func (s *Session) Submit(ctx context.Context) bool {
	return s.Validate(ctx, s.input)
}

// Validate runs one validation of email through the gateway and blocks until
// it completes. Empty input and calls made while loading are ignored.
func (s *Session) Validate(ctx context.Context, email string) bool {
	if !s.Begin(email) {
		return false
	}

	result, err := s.gateway.Validate(ctx, email)
	switch {
	case err != nil:
		s.fail(ctx, err)
	case result == nil:
		s.fail(ctx, gateway.ErrEmptyResult)
	default:
		s.succeed(ctx, result)
	}
	return true
}

// Begin moves the session to loading and clears any previous outcome.
func (s *Session) Begin(email string) bool {
	if email == "" || s.phase == PhaseLoading {
		return false
	}
	s.phase = PhaseLoading
	s.email = email
	s.result = nil
	s.errorMessage = ""
	return true
}

// Succeed completes the outstanding validation with r. It is ignored unless
// the session is loading.
func (s *Session) Succeed(r *types.ValidationResult) {
	s.succeed(context.Background(), r)
}

// Fail completes the outstanding validation with err. It is ignored unless
// the session is loading.
func (s *Session) Fail(err error) {
	s.fail(context.Background(), err)
}

func (s *Session) succeed(ctx context.Context, r *types.ValidationResult) {
	if s.phase != PhaseLoading {
		return
	}
	if r == nil {
		s.fail(ctx, gateway.ErrEmptyResult)
		return
	}
	s.phase = PhaseSucceeded
	s.result = r
	s.errorMessage = ""

	s.logger.DebugContext(ctx, "validation result",
		"gateway", s.gateway.Name(),
		"email", s.email,
		"result", r,
	)
}

func (s *Session) fail(ctx context.Context, err error) {
	if s.phase != PhaseLoading {
		return
	}
	s.phase = PhaseFailed
	s.result = nil
	s.errorMessage = Message(err)

	s.logger.WarnContext(ctx, "validation error",
		"gateway", s.gateway.Name(),
		"email", s.email,
		"message", s.errorMessage,
		"error", err,
	)
}

// Snapshot is a copy of the session state for rendering.
type Snapshot struct {
	Phase            Phase                   `json:"phase"`
	Input            string                  `json:"input"`
	ValidateDisabled bool                    `json:"validateDisabled"`
	HasResult        bool                    `json:"hasResult"`
	Result           *types.ValidationResult `json:"result,omitempty"`
	ErrorMessage     string                  `json:"errorMessage,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:            s.phase,
		Input:            s.input,
		ValidateDisabled: s.ValidateDisabled(),
		HasResult:        s.HasResult(),
		ErrorMessage:     s.errorMessage,
	}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	return snap
}
