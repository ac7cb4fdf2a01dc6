package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cruxstack/email-validator-view-go/internal/types"
)

// mockGateway is a test gateway that can be configured to fail or succeed
type mockGateway struct {
	name    string
	err     error
	healthy bool
	calls   int
	mu      sync.Mutex
}

func (m *mockGateway) Name() string {
	return m.name
}

func (m *mockGateway) Validate(ctx context.Context, email string) (*types.ValidationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &types.ValidationResult{Status: types.StatusValid, IsValid: true}, nil
}

func (m *mockGateway) IsHealthy(ctx context.Context) bool {
	return m.healthy
}

func (m *mockGateway) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestFailoverGateway_UsesFirstHealthyGateway(t *testing.T) {
	primary := &mockGateway{name: "remote", healthy: true}
	secondary := &mockGateway{name: "sendgrid", healthy: true}

	fg := NewFailoverGateway([]Gateway{primary, secondary}, time.Minute)

	result, err := fg.Validate(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Equal(t, 1, primary.Calls())
	assert.Equal(t, 0, secondary.Calls())
}

func TestFailoverGateway_SkipsUnhealthyGateway(t *testing.T) {
	primary := &mockGateway{name: "remote", healthy: false}
	secondary := &mockGateway{name: "sendgrid", healthy: true}

	fg := NewFailoverGateway([]Gateway{primary, secondary}, time.Minute)

	_, err := fg.Validate(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, primary.Calls())
	assert.Equal(t, 1, secondary.Calls())
}

func TestFailoverGateway_FailsOverOnTransportError(t *testing.T) {
	primary := &mockGateway{name: "remote", healthy: true, err: errors.New("connection refused")}
	secondary := &mockGateway{name: "sendgrid", healthy: true}

	fg := NewFailoverGateway([]Gateway{primary, secondary}, time.Minute)

	_, err := fg.Validate(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, primary.Calls())
	assert.Equal(t, 1, secondary.Calls())

	// the failed primary is skipped until its health entry expires
	_, err = fg.Validate(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, primary.Calls())
	assert.Equal(t, 2, secondary.Calls())
}

func TestFailoverGateway_RetriesAfterHealthTTL(t *testing.T) {
	primary := &mockGateway{name: "remote", healthy: true, err: &Error{StatusCode: 503}}
	secondary := &mockGateway{name: "sendgrid", healthy: true}

	fg := NewFailoverGateway([]Gateway{primary, secondary}, time.Minute)
	now := time.Now()
	fg.health.now = func() time.Time { return now }

	_, err := fg.Validate(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, primary.Calls())

	now = now.Add(2 * time.Minute)
	primary.err = nil

	_, err = fg.Validate(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, primary.Calls())
	assert.Equal(t, 1, secondary.Calls())
}

func TestFailoverGateway_ClientErrorIsNotFailedOver(t *testing.T) {
	rejected := &Error{StatusCode: 400, Body: &ErrorBody{Message: "bad domain"}}
	primary := &mockGateway{name: "remote", healthy: true, err: rejected}
	secondary := &mockGateway{name: "sendgrid", healthy: true}

	fg := NewFailoverGateway([]Gateway{primary, secondary}, time.Minute)

	_, err := fg.Validate(context.Background(), "test@example.com")
	assert.ErrorIs(t, err, rejected)
	assert.Equal(t, 0, secondary.Calls())
}

func TestFailoverGateway_ReturnsLastErrorWhenAllFail(t *testing.T) {
	primary := &mockGateway{name: "remote", healthy: true, err: errors.New("primary failed")}
	secondary := &mockGateway{name: "sendgrid", healthy: true, err: errors.New("secondary failed")}

	fg := NewFailoverGateway([]Gateway{primary, secondary}, time.Minute)

	_, err := fg.Validate(context.Background(), "test@example.com")
	assert.EqualError(t, err, "secondary failed")
	assert.Equal(t, 1, primary.Calls())
	assert.Equal(t, 1, secondary.Calls())
}

func TestFailoverGateway_NoGatewaysAvailable(t *testing.T) {
	primary := &mockGateway{name: "remote", healthy: false}
	secondary := &mockGateway{name: "sendgrid", healthy: false}

	fg := NewFailoverGateway([]Gateway{primary, secondary}, time.Minute)

	_, err := fg.Validate(context.Background(), "test@example.com")
	assert.ErrorIs(t, err, ErrNoGatewayAvailable)
	assert.Equal(t, 0, primary.Calls())
	assert.Equal(t, 0, secondary.Calls())
}

func TestFailoverGateway_CancelledContextKeepsGatewayHealthy(t *testing.T) {
	primary := &mockGateway{name: "remote", healthy: true}
	offline := &mockGateway{name: "offline", healthy: true}

	fg := NewFailoverGateway([]Gateway{primary, offline}, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fg.Validate(ctx, "test@example.com")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, primary.Calls())
	assert.Equal(t, 0, offline.Calls())

	result, err := fg.Validate(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Equal(t, 1, primary.Calls())
	assert.Equal(t, 0, offline.Calls())
}

func TestFailoverGateway_DeadlineFromGatewayIsNotFailedOver(t *testing.T) {
	primary := &mockGateway{name: "remote", healthy: true, err: fmt.Errorf("post: %w", context.DeadlineExceeded)}
	offline := &mockGateway{name: "offline", healthy: true}

	fg := NewFailoverGateway([]Gateway{primary, offline}, time.Minute)

	_, err := fg.Validate(context.Background(), "test@example.com")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, offline.Calls())

	primary.mu.Lock()
	primary.err = nil
	primary.mu.Unlock()

	_, err = fg.Validate(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, primary.Calls())
}

func TestFailoverGateway_Name(t *testing.T) {
	fg := NewFailoverGateway([]Gateway{}, 0)
	assert.Equal(t, "failover", fg.Name())
	assert.Empty(t, fg.Gateways())
}
