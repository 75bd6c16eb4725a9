package client

import (
	"context"

	"github.com/rs/zerolog"
)

// Coordinator wraps create/update/delete operations. When an operation
// succeeds, every cache key of the mutated kind is invalidated so dependent
// views refetch; when it fails, the error propagates to the caller and the
// cache is left untouched. There is no optimistic patching and no retry.
type Coordinator struct {
	cache  *Cache
	logger zerolog.Logger
}

type CoordinatorOption func(*Coordinator)

func WithCoordinatorLogger(logger zerolog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

func NewCoordinator(cache *Cache, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		cache:  cache,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mutate runs op and, on success, invalidates the kind. Invalidation is
// sequenced strictly after the operation's success; two racing mutations of
// the same kind are not ordered relative to each other.
func (c *Coordinator) Mutate(ctx context.Context, kind string, op func(ctx context.Context) error) error {
	if err := op(ctx); err != nil {
		c.logger.Debug().Str("kind", kind).Err(err).Msg("mutation failed, cache untouched")
		return err
	}
	c.cache.InvalidateKind(kind)
	return nil
}

// Mutate runs an operation that returns a value, invalidating the kind on
// success. Free function because methods cannot take type parameters.
func Mutate[T any](ctx context.Context, c *Coordinator, kind string, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := c.Mutate(ctx, kind, func(ctx context.Context) error {
		var opErr error
		result, opErr = op(ctx)
		return opErr
	})
	return result, err
}
