package webui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"scout/pkg/config"
	"scout/pkg/draft"
	"scout/pkg/logger"
	"scout/pkg/state"
	"scout/pkg/websearch"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	log, err := logger.New(&logger.Config{Level: logger.LevelError, Development: true})
	if err != nil {
		t.Fatalf("creating test logger: %v", err)
	}

	hash, err := config.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Server.JWTSecret = "test-secret"
	cfg.Server.PasswordHash = hash

	kv, err := state.NewFileStore(log, &state.FileStoreConfig{
		FilePath: filepath.Join(t.TempDir(), "state.json"),
	})
	if err != nil {
		t.Fatalf("creating kv store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	return NewServer(cfg, log, draft.New(kv, websearch.DefaultSettings()))
}

func login(t *testing.T, s *Server) string {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	s.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	if body.Token == "" {
		t.Fatalf("expected a token")
	}
	return body.Token
}

func doJSON(t *testing.T, s *Server, method, path, token, payload string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if payload != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/auth/login", "", `{"password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginWithoutPasswordHash(t *testing.T) {
	s := newTestServer(t)
	s.config.Server.PasswordHash = ""

	rec := doJSON(t, s, http.MethodPost, "/api/auth/login", "", `{"password":"hunter2"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestSettingsRequireAuth(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/settings", "", "")
	if rec.Code == http.StatusOK {
		t.Fatalf("settings must not be readable without a token")
	}
}

func TestGetSettingsDefaults(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)

	rec := doJSON(t, s, http.MethodGet, "/api/settings", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Settings    websearch.Settings `json:"settings"`
		Initialized bool               `json:"initialized"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Initialized {
		t.Fatalf("expected uninitialized draft")
	}
	if body.Settings.Provider != "tavily" || body.Settings.MaxResults != "5" {
		t.Fatalf("unexpected defaults: %+v", body.Settings)
	}
}

func TestSaveSettingsNormalizes(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)

	rec := doJSON(t, s, http.MethodPut, "/api/settings", token, `{
		"settings": {
			"provider": "tavily",
			"tavily_api_key": "tvly-123",
			"max_results": "25"
		}
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Settings websearch.Settings `json:"settings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Settings.MaxResults != "20" {
		t.Fatalf("expected max_results clamped to 20, got %q", body.Settings.MaxResults)
	}

	// Switching provider keeps the previously entered credential.
	next := body.Settings
	next.Provider = "jina"
	payload, _ := json.Marshal(map[string]interface{}{"settings": next})
	rec = doJSON(t, s, http.MethodPut, "/api/settings", token, string(payload))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Settings.Provider != "jina" || body.Settings.TavilyAPIKey != "tvly-123" {
		t.Fatalf("provider switch lost state: %+v", body.Settings)
	}
}

func TestSaveSettingsRejectsMissingSection(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)

	rec := doJSON(t, s, http.MethodPut, "/api/settings", token, `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExportSettingsYAML(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)

	rec := doJSON(t, s, http.MethodGet, "/api/settings/export?format=yaml", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "provider: tavily") {
		t.Fatalf("expected yaml export, got:\n%s", rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodGet, "/api/settings/export?format=xml", token, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported format, got %d", rec.Code)
	}
}

func TestGetProvidersCatalog(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)

	rec := doJSON(t, s, http.MethodGet, "/api/settings/providers", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Providers []struct {
			Name         string `json:"name"`
			DepthOptions []struct {
				Value string `json:"value"`
				Label string `json:"label"`
			} `json:"depth_options"`
		} `json:"providers"`
		Categories []struct {
			Value string `json:"value"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.Providers) != 4 {
		t.Fatalf("expected 4 providers, got %d", len(body.Providers))
	}
	for _, p := range body.Providers {
		if p.Name == "searxng" && len(p.DepthOptions) != 0 {
			t.Fatalf("searxng must not advertise depth options")
		}
		if p.Name == "linkup" {
			if len(p.DepthOptions) != 2 || p.DepthOptions[1].Label != "Deep" {
				t.Fatalf("unexpected linkup depth options: %+v", p.DepthOptions)
			}
		}
	}
	if len(body.Categories) == 0 || body.Categories[0].Value != "general" {
		t.Fatalf("unexpected categories: %+v", body.Categories)
	}
}

func TestResetSettings(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s)

	doJSON(t, s, http.MethodPut, "/api/settings", token,
		`{"settings": {"provider": "linkup"}}`)

	rec := doJSON(t, s, http.MethodPost, "/api/settings/reset", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodGet, "/api/settings", token, "")
	var body struct {
		Initialized bool `json:"initialized"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Initialized {
		t.Fatalf("expected draft cleared after reset")
	}
}
