package config

import (
	"path/filepath"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("DBDriver = %q, want sqlite", cfg.DBDriver)
	}
	if cfg.FixtureCount != 6 {
		t.Fatalf("FixtureCount = %d, want 6", cfg.FixtureCount)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("FIXTURE_COUNT", "2")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := FromEnv()
	if cfg.HTTPAddr != ":9090" || cfg.DBDriver != "postgres" || cfg.FixtureCount != 2 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example.com" {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestFromEnvBadIntFallsBack(t *testing.T) {
	t.Setenv("FIXTURE_COUNT", "not-a-number")
	if got := FromEnv().FixtureCount; got != 6 {
		t.Fatalf("FixtureCount = %d, want default 6", got)
	}
}

func TestFixturePaths(t *testing.T) {
	cfg := Config{FixtureDir: "./data", FixtureCount: 3}
	paths := cfg.FixturePaths()
	if len(paths) != 3 {
		t.Fatalf("got %d paths, want 3", len(paths))
	}
	if paths[0] != filepath.Join("data", "quiz_1.json") || paths[2] != filepath.Join("data", "quiz_3.json") {
		t.Fatalf("unexpected paths: %v", paths)
	}
}
