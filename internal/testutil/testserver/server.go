// Package testserver runs the whole application behind httptest.
package testserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"hechonl_backend/internal/app"
	"hechonl_backend/internal/config"
	"hechonl_backend/internal/testutil"
)

type TestServer struct {
	Server *httptest.Server
	App    *app.Application
}

// TestConfig is config.Default tuned for tests: plain passwords, no
// latency, no seeding.
func TestConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Auth.PasswordMode = "plain"
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.SimulatedLatency = 0
	cfg.Seed.OnStartup = false
	return cfg
}

// NewTestServer starts the full application over a fresh in-memory
// database. configure may adjust the config before wiring.
func NewTestServer(t *testing.T, configure func(cfg *config.Config)) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := TestConfig()
	if configure != nil {
		configure(cfg)
	}

	db := testutil.NewTestDB(t)
	application, err := app.New(context.Background(), cfg, db)
	if err != nil {
		t.Fatalf("failed to start application: %v", err)
	}
	server := httptest.NewServer(application.Router)

	t.Cleanup(func() {
		server.Close()
		application.Close()
	})
	return &TestServer{Server: server, App: application}
}

// SendRequest sends body as JSON with an optional bearer token and returns
// the response with its body read.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}, headers ...string) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return res, string(raw)
}

// Register creates an account through the API and returns its token.
func (ts *TestServer) Register(t *testing.T, email, password, name string) string {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("register failed with %d: %s", res.StatusCode, body)
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}
	return out.AccessToken
}
