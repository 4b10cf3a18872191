package llm

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stalledProvider never answers until its context is done.
type stalledProvider struct{}

func (stalledProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (stalledProvider) ModelID() string { return "stalled" }

func TestTimeoutCancelsSlowGenerate(t *testing.T) {
	p := WithTimeout(stalledProvider{}, 10*time.Millisecond)

	start := time.Now()
	_, err := p.Generate(context.Background(), Request{})

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestTimeoutPassesThroughFastGenerate(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"ok":true}`)})
	p := WithTimeout(mock, time.Second)

	resp, err := p.Generate(context.Background(), Request{})

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
}

func TestTimeoutCoversRetries(t *testing.T) {
	// The deadline wraps the retry loop, so a stream of transient failures
	// cannot stretch one call past the configured bound.
	cfg := RetryConfig{
		MaxAttempts: 5,
		InitialWait: 50 * time.Millisecond,
		MaxWait:     time.Second,
		Multiplier:  2.0,
	}
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrProviderUnavailable{}},
	)
	p := WithTimeout(WithRetry(mock, cfg), 20*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, mock.CallCount(), 5)
}
