package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// Fixtures live at FixtureDir/quiz_1.json .. quiz_N.json.
	FixtureDir   string
	FixtureCount int

	BcryptCost int

	CORSOrigins []string
}

// Load reads a .env file if present, then builds the config from the
// environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() Config {
	return Config{
		HTTPAddr:     envOr("HTTP_ADDR", ":8080"),
		DBDriver:     envOr("DB_DRIVER", "sqlite"),
		DBDSN:        envOr("DB_DSN", ""),
		FixtureDir:   envOr("FIXTURE_DIR", "./data"),
		FixtureCount: envInt("FIXTURE_COUNT", 6),
		BcryptCost:   envInt("BCRYPT_COST", bcrypt.DefaultCost),
		CORSOrigins:  csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

// FixturePaths returns the ordered fixture paths the ingester should read.
func (c Config) FixturePaths() []string {
	paths := make([]string, 0, c.FixtureCount)
	for i := 1; i <= c.FixtureCount; i++ {
		paths = append(paths, filepath.Join(c.FixtureDir, "quiz_"+strconv.Itoa(i)+".json"))
	}
	return paths
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
