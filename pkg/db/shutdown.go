package db

import (
	"context"
	"errors"
)

// Shutdown returns a function that closes the provider's pool.
// Use with web.ShutdownHook().
func Shutdown(p *Provider) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		p.Close()
		return nil
	}
}

// Healthcheck returns a closure that pings the database.
// It is wired to the readiness probe only; the liveness probe never touches the database.
func Healthcheck(p *Provider) func(context.Context) error {
	return func(ctx context.Context) error {
		pool, err := p.Pool(ctx)
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if err := pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, classify(err))
		}
		return nil
	}
}
