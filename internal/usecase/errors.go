package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	// ErrQuotaExhausted means the provider rejected the call because the
	// credential ran out of quota; the router blocks that tier and the next
	// call falls through to the next one.
	ErrQuotaExhausted = errors.New("provider quota exhausted")
	// ErrProviderUnavailable covers transient failures (network, non-2xx,
	// open breaker, no eligible credential). Callers skip the provider this
	// cycle and retry on a later one.
	ErrProviderUnavailable = errors.New("provider unavailable")
)
