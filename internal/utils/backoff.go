package utils

import (
	"context"
	"time"
)

type Backoff struct {
	base       time.Duration
	maxRetries int
}

func NewBackoff(base time.Duration, maxRetries int) Backoff {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return Backoff{base: base, maxRetries: maxRetries}
}

// Do corta al primer éxito, al agotar reintentos o si ctx se cancela.
// retryable == nil reintenta cualquier error.
func (b Backoff) Do(ctx context.Context, retryable func(error) bool, fn func(i int) error) error {
	var err error
	for i := 0; i <= b.maxRetries; i++ {
		err = fn(i)
		if err == nil {
			return nil
		}
		if i == b.maxRetries || (retryable != nil && !retryable(err)) {
			break
		}
		t := time.Duration(1<<i) * b.base
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(t):
		}
	}
	return err
}
