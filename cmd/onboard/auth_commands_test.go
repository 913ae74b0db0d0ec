package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoginPersistsSession(t *testing.T) {
	env := setupCLITestEnv(t)

	mustLogin(t, env)

	sessionPath := filepath.Join(env.cfg.Paths.StateDir, "session.json")
	if _, err := os.Stat(sessionPath); err != nil {
		t.Fatalf("expected session file at %s: %v", sessionPath, err)
	}

	out, _, err := runCLI(t, env, "whoami")
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	requireContains(t, out, "Ada Lovelace <ada@example.com>")
	requireContains(t, out, "Registered")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env, "login", "--email", "ada@example.com", "--password", "wrong")
	if err == nil {
		t.Fatal("expected login to fail")
	}
	requireContains(t, err.Error(), "Incorrect email or password")
}

func TestLoginRequiresFlags(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env, "login", "--email", "ada@example.com")
	if err == nil {
		t.Fatal("expected login to fail without password")
	}
}

func TestRegisterEstablishesSession(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "register",
		"--name", "Grace Hopper",
		"--email", "grace@example.com",
		"--password", "secret",
	)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	requireContains(t, out, "Logged in as Grace Hopper (grace@example.com)")
}

func TestLogoutClearsSession(t *testing.T) {
	env := setupCLITestEnv(t)
	mustLogin(t, env)

	out, _, err := runCLI(t, env, "logout")
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	requireContains(t, out, "Logged out.")

	if _, err := os.Stat(filepath.Join(env.cfg.Paths.StateDir, "session.json")); !os.IsNotExist(err) {
		t.Fatalf("expected session file removed, stat err = %v", err)
	}

	_, _, err = runCLI(t, env, "whoami")
	if err == nil {
		t.Fatal("expected whoami to fail after logout")
	}
}

func TestLogoutWithoutSession(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "logout")
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	requireContains(t, out, "No active session.")
}
