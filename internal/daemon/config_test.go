package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "0.0.0.0" || cfg.API.Port != 3005 {
		t.Errorf("api defaults = %+v", cfg.API)
	}
	if cfg.Chaster.ExtensionSlug != "shared-links-modifier" {
		t.Errorf("extension slug = %q", cfg.Chaster.ExtensionSlug)
	}
	if cfg.Reset.Hour != "0" {
		t.Errorf("reset hour = %q", cfg.Reset.Hour)
	}
	if !cfg.Journal.Enabled {
		t.Error("journal should default on")
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics should default off")
	}
}

func TestLoadConfig_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("LINKVOTE_HOME", t.TempDir())
	t.Setenv("CHASTER_API_KEY", "")
	t.Setenv("PORT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.Port != 3005 {
		t.Errorf("port = %d, want default 3005", cfg.API.Port)
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("LINKVOTE_HOME", home)
	t.Setenv("PORT", "")

	content := `
[api]
host = "127.0.0.1"
port = 8080
cors_origins = ["https://ui.example.com"]

[reset]
hour = "4"

[metrics]
enabled = true
`
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.Host != "127.0.0.1" || cfg.API.Port != 8080 {
		t.Errorf("api = %+v", cfg.API)
	}
	if len(cfg.API.CORSOrigins) != 1 {
		t.Errorf("cors origins = %v", cfg.API.CORSOrigins)
	}
	if cfg.ResetHour() != 4 {
		t.Errorf("reset hour = %d", cfg.ResetHour())
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should be enabled by file")
	}
	if cfg.Chaster.ExtensionSlug != "shared-links-modifier" {
		t.Errorf("unset sections should keep defaults, slug = %q", cfg.Chaster.ExtensionSlug)
	}
}

func TestLoadConfig_EnvSecrets(t *testing.T) {
	t.Setenv("LINKVOTE_HOME", t.TempDir())
	t.Setenv("CHASTER_API_KEY", "key-1")
	t.Setenv("CHASTER_CLIENT_ID", "client-1")
	t.Setenv("BASIC_AUTH_USERNAME", "op")
	t.Setenv("BASIC_AUTH_PASSWORD", "pw")
	t.Setenv("PORT", "9000")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Secrets.APIKey != "key-1" || cfg.Secrets.ClientID != "client-1" {
		t.Errorf("secrets = %+v", cfg.Secrets)
	}
	if cfg.Secrets.BasicAuthUser != "op" || cfg.Secrets.BasicAuthPass != "pw" {
		t.Errorf("basic auth secrets = %+v", cfg.Secrets)
	}
	if cfg.API.Port != 9000 {
		t.Errorf("port = %d, PORT env should override", cfg.API.Port)
	}
}

func TestLoadConfig_BadFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("LINKVOTE_HOME", home)

	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte("not [valid"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() expected error on malformed file")
	}
}

func TestResetHour(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"23", 23},
		{"7", 7},
		{"24", 0},
		{"-1", 0},
		{"noon", 0},
		{"", 0},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Reset.Hour = tt.in
		if got := cfg.ResetHour(); got != tt.want {
			t.Errorf("ResetHour(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHomeHonorsEnv(t *testing.T) {
	t.Setenv("LINKVOTE_HOME", "/tmp/linkvote-test-home")
	if got := Home(); got != "/tmp/linkvote-test-home" {
		t.Errorf("Home() = %q", got)
	}
}
