package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"userdirectory/internal/domain"
	"userdirectory/internal/dto"
	"userdirectory/internal/repository"
	"userdirectory/internal/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testAPIKey = "test-shared-secret"

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.UserProfile{},
		&domain.Role{},
		&domain.Permission{},
		&domain.UserRoleMapping{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	roleRepo := repository.NewRoleRepository(db)
	role := domain.Role{Code: "R1", Name: "Role One", Permissions: []domain.Permission{
		{Name: "read"}, {Name: "write"},
	}}
	if err := roleRepo.SeedRole(&role); err != nil {
		t.Fatalf("seed role: %v", err)
	}

	svc := services.NewUserService(repository.NewUserRepository(db), roleRepo, nil)

	app := fiber.New()
	NewUserHandler(svc).SetupRoutes(app, testAPIKey)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("x-api-key", testAPIKey)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(raw)
}

const createU1Body = `{
	"user_code": "U1",
	"username": "ann.lee",
	"profile": {"first_name": "Ann", "last_name": "Lee", "age": 30},
	"role_mappings": [{"role_code": "R1"}]
}`

func TestCreateUserLiteralBodies(t *testing.T) {
	app := setupApp(t)

	status, body := doRequest(t, app, fiber.MethodPost, "/api/user/CreateUser", createU1Body)
	if status != fiber.StatusOK || body != "Add new user success" {
		t.Fatalf("first create: status=%d body=%q", status, body)
	}

	status, body = doRequest(t, app, fiber.MethodPost, "/api/user/CreateUser", createU1Body)
	if status != fiber.StatusOK || body != "Duplicate user" {
		t.Fatalf("second create: status=%d body=%q", status, body)
	}
}

func TestCreateUserRejectsInvalidBody(t *testing.T) {
	app := setupApp(t)

	status, _ := doRequest(t, app, fiber.MethodPost, "/api/user/CreateUser", `{"user_code": "U1"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", status)
	}

	status, _ = doRequest(t, app, fiber.MethodPost, "/api/user/CreateUser", `not-json`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", status)
	}
}

func TestGetUsersReturnsHydratedGraph(t *testing.T) {
	app := setupApp(t)

	if status, _ := doRequest(t, app, fiber.MethodPost, "/api/user/CreateUser", createU1Body); status != fiber.StatusOK {
		t.Fatalf("create failed: %d", status)
	}

	status, body := doRequest(t, app, fiber.MethodGet, "/api/user/GetUsers", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var users []dto.UserResponse
	if err := json.Unmarshal([]byte(body), &users); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	u := users[0]
	if u.UserCode != "U1" || u.Profile == nil || u.Profile.FirstName != "Ann" {
		t.Fatalf("unexpected user payload: %s", body)
	}
	if len(u.RoleMappings) != 1 || u.RoleMappings[0].Role == nil || len(u.RoleMappings[0].Role.Permissions) != 2 {
		t.Fatalf("role graph not hydrated: %s", body)
	}
}

func TestGetUserByIDRoundTrip(t *testing.T) {
	app := setupApp(t)

	if status, _ := doRequest(t, app, fiber.MethodPost, "/api/user/CreateUser", createU1Body); status != fiber.StatusOK {
		t.Fatal("create failed")
	}

	// fetch the generated id through the list endpoint
	_, listBody := doRequest(t, app, fiber.MethodGet, "/api/user/GetUsers", "")
	var users []dto.UserResponse
	if err := json.Unmarshal([]byte(listBody), &users); err != nil || len(users) != 1 {
		t.Fatalf("list decode: %v %s", err, listBody)
	}

	status, body := doRequest(t, app, fiber.MethodGet, "/api/user/GetUserById/"+users[0].ID, "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	// The serialized form must not loop back: the profile object
	// carries no nested user, and mappings stop at role→permissions.
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	profile, ok := raw["profile"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing profile: %s", body)
	}
	if _, hasBackRef := profile["user"]; hasBackRef {
		t.Fatalf("profile must not embed its user: %s", body)
	}
	if profile["first_name"] != "Ann" || profile["last_name"] != "Lee" {
		t.Fatalf("profile fields mismatch: %s", body)
	}
}

func TestGetUserByIDNotFound(t *testing.T) {
	app := setupApp(t)

	status, body := doRequest(t, app, fiber.MethodGet, "/api/user/GetUserById/00000000-0000-0000-0000-000000000009", "")
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", status, body)
	}
	if !strings.Contains(body, "user not found") {
		t.Fatalf("expected error payload, got %s", body)
	}
}

func TestRoutesRequireAPIKey(t *testing.T) {
	app := setupApp(t)

	targets := []struct {
		method string
		path   string
	}{
		{fiber.MethodGet, "/api/user/GetUsers"},
		{fiber.MethodGet, "/api/user/GetUserById/abc"},
		{fiber.MethodPost, "/api/user/CreateUser"},
	}
	for _, target := range targets {
		req := httptest.NewRequest(target.method, target.path, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s %s: %v", target.method, target.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without key, got %d", target.method, target.path, resp.StatusCode)
		}
	}
}
