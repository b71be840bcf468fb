package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("PORT", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port: got %q, want %q", cfg.Port, "8080")
	}
	if cfg.ServersFile != "servers.json" {
		t.Errorf("ServersFile: got %q", cfg.ServersFile)
	}
	if cfg.MojangBaseURL != "https://api.mojang.com" {
		t.Errorf("MojangBaseURL: got %q", cfg.MojangBaseURL)
	}
	if cfg.QueryTimeout != 5*time.Second {
		t.Errorf("QueryTimeout: got %v", cfg.QueryTimeout)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development mode")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("TOKEN", "verify-token")
	t.Setenv("TEAM_ID", "T123")
	t.Setenv("QUERY_TIMEOUT", "2s")

	cfg := Load()
	if cfg.SlackVerifyToken != "verify-token" {
		t.Errorf("SlackVerifyToken: got %q", cfg.SlackVerifyToken)
	}
	if cfg.SlackTeamID != "T123" {
		t.Errorf("SlackTeamID: got %q", cfg.SlackTeamID)
	}
	if cfg.QueryTimeout != 2*time.Second {
		t.Errorf("QueryTimeout: got %v", cfg.QueryTimeout)
	}
}

func TestLoadProductionRequiresSecrets(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("TOKEN", "")
	t.Setenv("TEAM_ID", "T123")
	t.Setenv("BOT_OAUTH_TOKEN", "xoxb-123")

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on missing TOKEN in production")
		}
	}()
	Load()
}
