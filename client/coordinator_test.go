package client

import (
	"context"
	"errors"
	"testing"
)

func TestCoordinator(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, c *Cache, key QueryKey, v any) {
		t.Helper()
		if _, err := c.Ensure(ctx, key, func(ctx context.Context) (any, error) {
			return v, nil
		}); err != nil {
			t.Fatalf("seeding %s: %v", key, err)
		}
	}

	t.Run("Successful Mutation Invalidates Kind", func(t *testing.T) {
		cache := NewCache()
		seed(t, cache, ProjectsKey(), "listing")
		seed(t, cache, ProjectsAdminKey(), "admin listing")
		seed(t, cache, SkillCategoriesKey(), "skills")

		coord := NewCoordinator(cache)
		err := coord.Mutate(ctx, KindProjects, func(ctx context.Context) error {
			return nil
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if snap := cache.Read(ProjectsKey()); !snap.Stale {
			t.Error("expected projects listing stale")
		}
		if snap := cache.Read(ProjectsAdminKey()); !snap.Stale {
			t.Error("expected admin listing stale")
		}
		if snap := cache.Read(SkillCategoriesKey()); snap.Stale {
			t.Error("expected unrelated kind untouched")
		}
	})

	t.Run("Failed Mutation Leaves Cache Untouched", func(t *testing.T) {
		cache := NewCache()
		seed(t, cache, ProjectsKey(), "listing")
		before := cache.Read(ProjectsKey())

		coord := NewCoordinator(cache)
		opErr := errors.New("validation failed")
		err := coord.Mutate(ctx, KindProjects, func(ctx context.Context) error {
			return opErr
		})
		if !errors.Is(err, opErr) {
			t.Fatalf("expected operation error to propagate, got %v", err)
		}

		after := cache.Read(ProjectsKey())
		if after.Stale || after.Generation != before.Generation {
			t.Errorf("expected cache untouched, got %+v", after)
		}
	})

	t.Run("Typed Mutate Returns Operation Result", func(t *testing.T) {
		cache := NewCache()
		seed(t, cache, ProjectsKey(), "listing")

		coord := NewCoordinator(cache)
		got, err := Mutate(ctx, coord, KindProjects, func(ctx context.Context) (string, error) {
			return "created", nil
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != "created" {
			t.Errorf("expected operation result, got %q", got)
		}
		if snap := cache.Read(ProjectsKey()); !snap.Stale {
			t.Error("expected invalidation after typed mutation")
		}
	})
}
