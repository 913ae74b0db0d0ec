package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"onboard/internal/config"
	"onboard/internal/onboarding"
	"onboard/internal/portal"
	"onboard/internal/testsupport"
)

// fakePortal is an in-memory portal backend for command tests. Handlers
// mirror the real API's wire shapes, including the {"detail": ...} error
// body.
type fakePortal struct {
	mu   sync.Mutex
	user portal.UserRecord

	token string

	failUpload       bool
	failStatusUpdate bool
	failCurrentUser  bool

	uploads       int
	statusUpdates int
}

func newFakePortal() *fakePortal {
	return &fakePortal{
		user: portal.UserRecord{
			ID:     "user-1",
			Name:   "Ada Lovelace",
			Email:  "ada@example.com",
			Role:   "candidate",
			Status: onboarding.StatusRegistered,
		},
		token: "test-token",
	}
}

func (f *fakePortal) server(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var creds portal.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" {
			writeDetail(w, http.StatusUnprocessableEntity, "invalid credentials payload")
			return
		}
		if creds.Password == "wrong" {
			writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		writeJSON(w, map[string]any{
			"token":      f.token,
			"token_type": "bearer",
			"user":       f.user,
		})
	})
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var creds portal.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "invalid registration payload")
			return
		}
		f.user.Name = creds.Name
		f.user.Email = creds.Email
		f.user.Status = onboarding.StatusRegistered
		writeJSON(w, map[string]any{
			"token":      f.token,
			"token_type": "bearer",
			"user":       f.user,
		})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		writeJSON(w, map[string]any{"success": true})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.authorized(r) {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		if f.failCurrentUser {
			writeDetail(w, http.StatusInternalServerError, "profile lookup failed")
			return
		}
		writeJSON(w, f.user)
	})
	mux.HandleFunc("POST /auth/me/status", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.authorized(r) {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		if f.failStatusUpdate {
			writeDetail(w, http.StatusInternalServerError, "status update failed")
			return
		}
		var payload struct {
			Status onboarding.Status `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || !onboarding.IsKnown(payload.Status) {
			writeDetail(w, http.StatusUnprocessableEntity, "unknown status")
			return
		}
		f.statusUpdates++
		if onboarding.StepIndex(payload.Status) > onboarding.StepIndex(f.user.Status) {
			f.user.Status = payload.Status
		}
		writeJSON(w, map[string]any{"success": true, "user": f.user})
	})
	mux.HandleFunc("POST /resume/upload", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.authorized(r) {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		if f.failUpload {
			writeDetail(w, http.StatusBadRequest, "Could not parse the resume")
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "missing file field")
			return
		}
		defer file.Close()
		f.uploads++
		writeJSON(w, map[string]any{
			"success": true,
			"message": fmt.Sprintf("processed %s", header.Filename),
			"candidate": portal.UploadResult{
				Name:          f.user.Name,
				Email:         f.user.Email,
				Location:      "London",
				Skills:        []string{"Go", "SQL"},
				HasEmbeddings: true,
			},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func (f *fakePortal) authorized(r *http.Request) bool {
	return r.Header.Get("Authorization") == "Bearer "+f.token
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

type cliTestEnv struct {
	portal     *fakePortal
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	fake := newFakePortal()
	server := fake.server(t)
	cfg := testsupport.NewConfig(t, testsupport.WithPortalURL(server.URL))

	configPath := filepath.Join(t.TempDir(), "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{portal: fake, cfg: cfg, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[portal]\nbase_url = %q\n\n[paths]\nstate_dir = %q\nlog_dir = %q\n\n[logging]\nlevel = \"debug\"\nformat = \"json\"\n",
		cfg.Portal.BaseURL,
		cfg.Paths.StateDir,
		cfg.Paths.LogDir,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustLogin(t *testing.T, env *cliTestEnv) {
	t.Helper()
	out, _, err := runCLI(t, env, "login", "--email", "ada@example.com", "--password", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	requireContains(t, out, "Logged in as")
}

func writeResumeFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("resume body"), 0o644); err != nil {
		t.Fatalf("write resume file: %v", err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
