package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/staffly-be/internal/auth"
	"github.com/hongminglow/staffly-be/internal/middleware"
	"github.com/hongminglow/staffly-be/internal/models"
	"github.com/hongminglow/staffly-be/internal/service"
	"github.com/hongminglow/staffly-be/internal/storage/backend"
)

// TestAuthIntegration registers a user, exchanges credentials for a token,
// and reads the account back against the database named by DATABASE_URL.
func TestAuthIntegration(t *testing.T) {
	if os.Getenv("RUN_AUTH_INTEGRATION") != "true" {
		t.Skip("set RUN_AUTH_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := mustGetEnv(t, "DATABASE_URL")

	ctx := context.Background()
	store, _, err := backend.Open(ctx, dbURL, envOr("MONGO_DATABASE", "empDB"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer store.Close(ctx)
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	tokens := auth.NewTokenManager(mustGetEnv(t, "ACCESS_TOKEN"), envOr("JWT_ISSUER", "staffly"), time.Hour)
	guard := middleware.NewGuard(tokens, store.Users(), nil)

	mux := http.NewServeMux()
	NewAuthHandler(service.NewTokens(store.Users(), tokens, nil, false), false).Register(mux)
	NewUsersHandler(service.NewUsers(store.Users())).Register(mux, guard)

	ts := httptest.NewServer(mux)
	defer ts.Close()

	email := fmt.Sprintf("apitest_%d@example.com", time.Now().UnixNano())
	password := fmt.Sprintf("Pass!%d", time.Now().UnixNano())

	inserted := requestRegister(t, ts.URL, map[string]string{
		"email":    email,
		"name":     "API Test",
		"role":     "employee",
		"password": password,
	})
	if inserted.InsertedID == nil || *inserted.InsertedID == "" {
		t.Fatalf("register returned no id: %+v", inserted)
	}

	token := requestToken(t, ts.URL, email, password)
	if strings.TrimSpace(token) == "" {
		t.Fatal("token response missing token")
	}

	user := requestUser(t, ts.URL, email, token)
	if user.ID != *inserted.InsertedID || user.Role != models.RoleEmployee {
		t.Fatalf("fetched user mismatch: got %+v", user)
	}

	t.Logf("created user %s (id=%s) and fetched it with a bearer token", email, user.ID)
}

func requestRegister(t *testing.T, baseURL string, payload map[string]string) models.InsertResult {
	t.Helper()
	var out models.InsertResult
	doJSON(t, http.MethodPost, baseURL+"/users", "", payload, &out)
	return out
}

func requestToken(t *testing.T, baseURL, email, password string) string {
	t.Helper()
	var out struct {
		Token string `json:"token"`
	}
	doJSON(t, http.MethodPost, baseURL+"/jwt", "", map[string]string{"email": email, "password": password}, &out)
	return out.Token
}

func requestUser(t *testing.T, baseURL, email, token string) models.User {
	t.Helper()
	var out models.User
	doJSON(t, http.MethodGet, baseURL+"/users/"+email, token, nil, &out)
	return out
}

func doJSON(t *testing.T, method, url, token string, payload, out any) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("%s %s status = %d", method, url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func mustGetEnv(t *testing.T, key string) string {
	t.Helper()
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		t.Fatalf("%s is required", key)
	}
	return val
}

func envOr(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
