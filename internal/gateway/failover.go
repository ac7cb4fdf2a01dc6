package gateway

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cruxstack/email-validator-view-go/internal/types"
)

var ErrNoGatewayAvailable = errors.New("no validation gateway available")

// FailoverGateway wraps multiple gateways and validates through them in
// order, failing over to the next one when a gateway is unhealthy or fails
// for a reason unrelated to the submitted address.
type FailoverGateway struct {
	gateways []Gateway
	health   *healthCache
}

// NewFailoverGateway creates a failover chain. A gateway that fails is
// skipped for healthTTL.
func NewFailoverGateway(gateways []Gateway, healthTTL time.Duration) *FailoverGateway {
	return &FailoverGateway{
		gateways: gateways,
		health:   newHealthCache(healthTTL),
	}
}

func (f *FailoverGateway) Name() string {
	return "failover"
}

func (f *FailoverGateway) Validate(ctx context.Context, email string) (*types.ValidationResult, error) {
	var lastErr error

	for _, g := range f.gateways {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := g.Name()

		if !f.health.isHealthy(name) {
			slog.WarnContext(ctx, "gateway recently failed, skipping", "gateway", name)
			continue
		}

		if hc, ok := g.(HealthChecker); ok && !hc.IsHealthy(ctx) {
			slog.WarnContext(ctx, "gateway unhealthy, skipping", "gateway", name)
			continue
		}

		result, err := g.Validate(ctx, email)
		if err == nil {
			f.health.markHealthy(name)
			slog.DebugContext(ctx, "validation answered", "gateway", name)
			return result, nil
		}

		var gerr *Error
		if errors.As(err, &gerr) && !gerr.Retryable() {
			// the request itself was rejected, another provider would agree
			return nil, err
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// caller gave up, the gateway stays healthy
			return nil, err
		}

		slog.WarnContext(ctx, "gateway validation failed, trying next",
			"gateway", name,
			"error", err,
		)
		f.health.markFailed(name)
		lastErr = err
	}

	if lastErr != nil {
		slog.WarnContext(ctx, "all gateways failed", "last_error", lastErr)
		return nil, lastErr
	}

	slog.WarnContext(ctx, "no gateways available")
	return nil, ErrNoGatewayAvailable
}

// Gateways returns the gateways in this failover chain.
func (f *FailoverGateway) Gateways() []Gateway {
	return f.gateways
}
