// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("AUTHOR_KEY_SALT", "test-salt")
	os.Setenv("SLUG_SALT", "test-slug")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-author-salt", "s1", "-slug-salt", "s2"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_InvalidDatabaseType(t *testing.T) {
	defer os.Clearenv()

	_, err := ParseFlags([]string{"-d", "file:test.db", "-t", "mysql", "-author-salt", "s1", "-slug-salt", "s2"})
	if err == nil {
		t.Error("expected error for unsupported database type")
	}
}

func TestParseFlags_MissingSalts(t *testing.T) {
	defer os.Clearenv()

	_, err := ParseFlags([]string{"-d", "file:test.db"})
	if err == nil {
		t.Error("expected error when salts are missing")
	}
}

func TestParseFlags_DefaultBaseURL(t *testing.T) {
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-author-salt", "s1", "-slug-salt", "s2"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("expected default base URL from port, got %s", cfg.BaseURL)
	}
}
