package api

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/jcortes-dev/portfolio-backend/client"
	"github.com/jcortes-dev/portfolio-backend/models"
)

// TestClientAgainstRealBackend drives the typed client, session store, cache
// and mutation coordinator against the full router instead of a fake.
func TestClientAgainstRealBackend(t *testing.T) {
	server, d := newTestServer(t)
	seedAdmin(t, d)
	ctx := context.Background()

	api := client.New(server.URL + "/api/v1")
	session := client.NewSessionStore(api, client.NewFileTokenStore(filepath.Join(t.TempDir(), "token")))

	t.Run("Session Login", func(t *testing.T) {
		if err := session.Login(ctx, "admin@example.com", "secret"); err != nil {
			t.Fatalf("login: %v", err)
		}
		if session.State() != client.StateAuthenticated {
			t.Fatalf("expected authenticated, got %s", session.State())
		}
		if user := session.CurrentUser(); user == nil || user.Email != "admin@example.com" {
			t.Fatalf("expected admin profile, got %+v", user)
		}
	})

	cache := client.NewCache()
	coordinator := client.NewCoordinator(cache)

	listAdminProjects := func(ctx context.Context) (any, error) {
		return api.Projects().ListAll(ctx)
	}

	t.Run("Mutation Invalidates And Refetches", func(t *testing.T) {
		value, err := cache.Ensure(ctx, client.ProjectsAdminKey(), listAdminProjects)
		if err != nil {
			t.Fatalf("initial fetch: %v", err)
		}
		if projects := value.([]models.Project); len(projects) != 0 {
			t.Fatalf("expected empty backend, got %d projects", len(projects))
		}

		created, err := client.Mutate(ctx, coordinator, client.KindProjects,
			func(ctx context.Context) (models.Project, error) {
				return api.Projects().Create(ctx, client.ProjectDraft{
					Title:        "Side Project",
					Slug:         "side-project",
					Description:  "Built on weekends",
					Technologies: []string{"Go"},
					IsPublished:  true,
				})
			})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.ID == 0 {
			t.Fatal("expected assigned ID")
		}

		if snap := cache.Read(client.ProjectsAdminKey()); !snap.Stale {
			t.Fatal("expected listing invalidated after mutation")
		}

		value, err = cache.Ensure(ctx, client.ProjectsAdminKey(), listAdminProjects)
		if err != nil {
			t.Fatalf("refetch: %v", err)
		}
		if projects := value.([]models.Project); len(projects) != 1 || projects[0].Slug != "side-project" {
			t.Fatalf("expected refetched listing with new project, got %v", projects)
		}
	})

	t.Run("Failed Mutation Surfaces Backend Detail", func(t *testing.T) {
		_, err := client.Mutate(ctx, coordinator, client.KindProjects,
			func(ctx context.Context) (models.Project, error) {
				return api.Projects().Create(ctx, client.ProjectDraft{
					Title: "Conflicting",
					Slug:  "side-project",
				})
			})

		var apiErr *client.ApiError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *client.ApiError, got %v", err)
		}
		if apiErr.Status != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", apiErr.Status)
		}
		if apiErr.Message != "a project with this slug already exists" {
			t.Errorf("unexpected message %q", apiErr.Message)
		}
	})

	t.Run("Contact Round Trip", func(t *testing.T) {
		ack, err := api.Contact().Submit(ctx, client.ContactDraft{
			FirstName: "Visitor",
			Email:     "visitor@example.com",
			Message:   "Nice work",
		})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if !ack.Success {
			t.Fatalf("expected success acknowledgement, got %+v", ack)
		}

		stats, err := api.Contact().Stats(ctx)
		if err != nil {
			t.Fatalf("stats: %v", err)
		}
		if stats.Total != 1 || stats.Unread != 1 {
			t.Errorf("expected one unread submission, got %+v", stats)
		}

		if err := api.Contact().MarkAllRead(ctx); err != nil {
			t.Fatalf("mark all read: %v", err)
		}
		stats, err = api.Contact().Stats(ctx)
		if err != nil {
			t.Fatalf("stats after mark: %v", err)
		}
		if stats.Unread != 0 {
			t.Errorf("expected no unread submissions, got %+v", stats)
		}
	})

	t.Run("Logout Drops Access", func(t *testing.T) {
		session.Logout()

		_, err := api.Projects().ListAll(ctx)
		var apiErr *client.ApiError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *client.ApiError, got %v", err)
		}
		if apiErr.Status != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", apiErr.Status)
		}
	})
}
