package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" || !cfg.Database.Migrate {
		t.Fatalf("server/database = %+v %+v", cfg.Server, cfg.Database)
	}
	if cfg.Assistant.Model != "gemini-2.5-flash" || cfg.Assistant.Timeout != 60*time.Second {
		t.Fatalf("assistant = %+v", cfg.Assistant)
	}
	if cfg.Site.Giscus.Enabled() {
		t.Fatalf("giscus enabled without settings")
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("API_KEY", "from-env")
	t.Setenv("ATESTADO_LOG_LEVEL", "debug")

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9999" {
		t.Fatalf("port = %q, want 9999", cfg.Server.Port)
	}
	if cfg.Assistant.APIKey != "from-env" {
		t.Fatalf("api key = %q", cfg.Assistant.APIKey)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level = %q", cfg.Log.Level)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("GEMINI_KEY", "secret")
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
assistant:
  api_key: ${GEMINI_KEY}
site:
  name: Teste
  ad_slots: ["111", "222"]
  giscus:
    repo: dono/repo
    repo_id: R_1
    category_id: C_1
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Assistant.APIKey != "secret" {
		t.Fatalf("api key = %q, want expanded", cfg.Assistant.APIKey)
	}
	if cfg.Site.Name != "Teste" || len(cfg.Site.AdSlots) != 2 || !cfg.Site.Giscus.Enabled() {
		t.Fatalf("site = %+v", cfg.Site)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
