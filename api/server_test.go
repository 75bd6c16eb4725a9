package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/jcortes-dev/portfolio-backend/database"
	"github.com/jcortes-dev/portfolio-backend/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestServer spins up the full router over an in-memory sqlite database.
// The database is scoped to the test by name so parallel packages don't
// collide.
func newTestServer(t *testing.T) (*httptest.Server, database.Database) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Project{},
		&models.SkillCategory{},
		&models.Skill{},
		&models.ContactSubmission{},
		&models.User{},
	)
	if err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	d := database.New(db)
	router := newRouter(d, withConfig(map[string]string{
		"JWT_SECRET": "test-secret",
	}))

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, d
}

// seedAdmin creates the admin account used by the authenticated tests.
func seedAdmin(t *testing.T, d database.Database) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	user := models.User{
		Email:          "admin@example.com",
		HashedPassword: string(hashed),
		FullName:       "Site Admin",
		IsActive:       true,
		IsAdmin:        true,
	}
	if err := d.UserRepo().Add(&user); err != nil {
		t.Fatalf("seeding admin: %v", err)
	}
	return user
}

// loginAs exchanges the seeded admin credentials for a bearer token.
func loginAs(t *testing.T, server *httptest.Server, email, password string) string {
	t.Helper()

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	resp, err := http.Post(server.URL+"/api/v1/auth/login",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("login failed with status %d: %s", resp.StatusCode, body)
	}

	var token Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	return token.AccessToken
}

// doJSON issues a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, method, rawURL, token string, body any) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, rawURL, reqBody)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

// decodeBody decodes a JSON response body and closes it.
func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return out
}

// errorDetail extracts the detail field from an error response.
func errorDetail(t *testing.T, resp *http.Response) string {
	t.Helper()
	return decodeBody[ErrorResponse](t, resp).Detail
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
