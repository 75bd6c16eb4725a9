package api

import (
	"net/http"
	"testing"

	"github.com/jcortes-dev/portfolio-backend/models"
)

func TestSkillEndpoints(t *testing.T) {
	server, d := newTestServer(t)
	seedAdmin(t, d)
	token := loginAs(t, server, "admin@example.com", "secret")
	base := server.URL + "/api/v1"

	createCategory := func(t *testing.T, payload SkillCategoryCreate) models.SkillCategory {
		t.Helper()
		resp := doJSON(t, http.MethodPost, base+"/skills/categories", token, payload)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("creating category: expected status 201, got %d", resp.StatusCode)
		}
		return decodeBody[models.SkillCategory](t, resp)
	}

	createSkill := func(t *testing.T, payload SkillCreate) models.Skill {
		t.Helper()
		resp := doJSON(t, http.MethodPost, base+"/skills", token, payload)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("creating skill: expected status 201, got %d", resp.StatusCode)
		}
		return decodeBody[models.Skill](t, resp)
	}

	t.Run("Categories", func(t *testing.T) {
		t.Run("Create Defaults To Published", func(t *testing.T) {
			category := createCategory(t, SkillCategoryCreate{
				Name: "Backend",
				Slug: "backend",
				Icon: "server",
			})
			if !category.IsPublished {
				t.Error("expected category published by default")
			}
			if category.Skills == nil {
				t.Error("expected empty skills list, not null")
			}
		})

		t.Run("Rejects Duplicate Slug", func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, base+"/skills/categories", token, SkillCategoryCreate{
				Name: "Backend Again",
				Slug: "backend",
			})
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", resp.StatusCode)
			}
			if detail := errorDetail(t, resp); detail != "a category with this slug already exists" {
				t.Errorf("unexpected detail %q", detail)
			}
		})

		t.Run("Public Listing Hides Unpublished", func(t *testing.T) {
			unpublished := false
			createCategory(t, SkillCategoryCreate{
				Name:        "Hidden",
				Slug:        "hidden",
				IsPublished: &unpublished,
			})

			resp := doJSON(t, http.MethodGet, base+"/skills/categories", "", nil)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected status 200, got %d", resp.StatusCode)
			}
			categories := decodeBody[[]models.SkillCategory](t, resp)
			for _, c := range categories {
				if c.Slug == "hidden" {
					t.Error("unpublished category leaked into public listing")
				}
			}

			resp = doJSON(t, http.MethodGet, base+"/skills/admin/categories", token, nil)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected status 200, got %d", resp.StatusCode)
			}
			all := decodeBody[[]models.SkillCategory](t, resp)
			if len(all) <= len(categories) {
				t.Errorf("expected admin listing to include unpublished, got %d vs %d", len(all), len(categories))
			}
		})

		t.Run("Patch Updates Only Set Fields", func(t *testing.T) {
			category := createCategory(t, SkillCategoryCreate{
				Name: "Frontend",
				Slug: "frontend",
				Icon: "layout",
			})

			name := "Frontend Engineering"
			resp := doJSON(t, http.MethodPatch, base+"/skills/categories/"+itoa(category.ID), token,
				SkillCategoryPatch{Name: &name})
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected status 200, got %d", resp.StatusCode)
			}
			updated := decodeBody[models.SkillCategory](t, resp)
			if updated.Name != "Frontend Engineering" || updated.Icon != "layout" {
				t.Errorf("unexpected patch result %+v", updated)
			}
		})
	})

	t.Run("Skills", func(t *testing.T) {
		category := createCategory(t, SkillCategoryCreate{
			Name: "Databases",
			Slug: "databases",
		})

		t.Run("Create Applies Defaults", func(t *testing.T) {
			skill := createSkill(t, SkillCreate{
				Name:       "PostgreSQL",
				CategoryID: category.ID,
			})
			if skill.Proficiency != 80 {
				t.Errorf("expected default proficiency 80, got %d", skill.Proficiency)
			}
			if !skill.IsPublished {
				t.Error("expected skill published by default")
			}
		})

		t.Run("Rejects Proficiency Out Of Range", func(t *testing.T) {
			bad := 120
			resp := doJSON(t, http.MethodPost, base+"/skills", token, SkillCreate{
				Name:        "Overconfident",
				CategoryID:  category.ID,
				Proficiency: &bad,
			})
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", resp.StatusCode)
			}
		})

		t.Run("Rejects Unknown Category", func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, base+"/skills", token, SkillCreate{
				Name:       "Orphan",
				CategoryID: 99999,
			})
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusNotFound {
				t.Fatalf("expected status 404, got %d", resp.StatusCode)
			}
		})

		t.Run("Patch Moves Skill Between Categories", func(t *testing.T) {
			other := createCategory(t, SkillCategoryCreate{
				Name: "Caches",
				Slug: "caches",
			})
			skill := createSkill(t, SkillCreate{
				Name:       "Redis",
				CategoryID: category.ID,
			})

			resp := doJSON(t, http.MethodPatch, base+"/skills/"+itoa(skill.ID), token,
				SkillPatch{CategoryID: &other.ID})
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected status 200, got %d", resp.StatusCode)
			}
			moved := decodeBody[models.Skill](t, resp)
			if moved.CategoryID != other.ID {
				t.Errorf("expected skill moved to %d, got %d", other.ID, moved.CategoryID)
			}
		})

		t.Run("Delete Skill", func(t *testing.T) {
			skill := createSkill(t, SkillCreate{
				Name:       "Ephemeral",
				CategoryID: category.ID,
			})
			resp := doJSON(t, http.MethodDelete, base+"/skills/"+itoa(skill.ID), token, nil)
			resp.Body.Close()
			if resp.StatusCode != http.StatusNoContent {
				t.Fatalf("expected status 204, got %d", resp.StatusCode)
			}
		})
	})

	t.Run("Deleting Category Cascades To Skills", func(t *testing.T) {
		category := createCategory(t, SkillCategoryCreate{
			Name: "Doomed",
			Slug: "doomed-category",
		})
		skill := createSkill(t, SkillCreate{
			Name:       "Orphan To Be",
			CategoryID: category.ID,
		})

		resp := doJSON(t, http.MethodDelete, base+"/skills/categories/"+itoa(category.ID), token, nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", resp.StatusCode)
		}

		if _, err := d.SkillRepo().FindByID(skill.ID); err == nil {
			t.Error("expected owned skill deleted with its category")
		}

		resp = doJSON(t, http.MethodGet, base+"/skills/categories/doomed-category", "", nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected status 404 after delete, got %d", resp.StatusCode)
		}
	})
}
