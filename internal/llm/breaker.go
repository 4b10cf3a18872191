package llm

import (
	"context"
	"errors"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerProvider is a decorator that stops hammering a failing backend.
// When the breaker is open, calls fail fast with *ErrProviderUnavailable so
// the orchestrator can surface a retryable collaborator failure without
// waiting out the provider's timeout.
type BreakerProvider struct {
	inner   Provider
	breaker *gobreaker.CircuitBreaker
}

// WithBreaker wraps a Provider with a circuit breaker.
func WithBreaker(p Provider, cfg BreakerConfig, log *zap.Logger) Provider {
	settings := gobreaker.Settings{
		Name:        "llm-" + p.ModelID(),
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			// Schema violations and truncation are model-output problems,
			// not backend health problems. Only transport-level failures
			// count against the breaker.
			if err == nil {
				return true
			}
			var invResp *ErrInvalidResponse
			if errors.As(err, &invResp) {
				return true
			}
			var maxTok *ErrMaxTokensExceeded
			return errors.As(err, &maxTok)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("llm circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &BreakerProvider{
		inner:   p,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *BreakerProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	result, err := b.breaker.Execute(func() (any, error) {
		return b.inner.Generate(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &ErrProviderUnavailable{Err: err}
		}
		return nil, err
	}
	return result.(*Response), nil
}

func (b *BreakerProvider) ModelID() string {
	return b.inner.ModelID()
}
