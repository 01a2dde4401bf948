package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	want := Config{
		Port:    "3000",
		GinMode: "release",
		Store: StoreConfig{
			Driver:        "mongo",
			Timeout:       10 * time.Second,
			MongoURI:      "mongodb://127.0.0.1:27017",
			MongoDatabase: "ToDoApp",
		},
		Log:            LogConfig{Level: "info", Format: "text"},
		BcryptCost:     10,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://todo@localhost/todo")
	t.Setenv("STORE_TIMEOUT", "3s")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("CLIENT_URL", "https://todo.example.com")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")

	cfg, err := Load(New())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
	if cfg.Store.Driver != "postgres" {
		t.Errorf("driver = %q, want postgres", cfg.Store.Driver)
	}
	if cfg.Store.DSN != "postgres://todo@localhost/todo" {
		t.Errorf("dsn = %q", cfg.Store.DSN)
	}
	if cfg.Store.Timeout != 3*time.Second {
		t.Errorf("timeout = %s, want 3s", cfg.Store.Timeout)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("bcrypt cost = %d, want 12", cfg.BcryptCost)
	}

	wantOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"https://todo.example.com",
		"https://a.example.com",
		"https://b.example.com",
	}
	if diff := cmp.Diff(wantOrigins, cfg.AllowedOrigins); diff != "" {
		t.Errorf("origins mismatch (-want +got):\n%s", diff)
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")

	v := New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(v, flags); err != nil {
		t.Fatalf("failed to bind flags: %v", err)
	}
	if err := flags.Parse([]string{"--port", "9090", "--store", "sqlite"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Port)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.DSN != "todo.db" {
		t.Errorf("store = %+v, want sqlite on todo.db", cfg.Store)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "redis"}, "unknown store driver"},
		{"mysql without dsn", map[string]string{"STORE_DRIVER": "mysql"}, "requires DATABASE_URL"},
		{"bcrypt cost too low", map[string]string{"BCRYPT_COST": "2"}, "bcrypt cost"},
		{"zero timeout", map[string]string{"STORE_TIMEOUT": "0s"}, "timeout must be positive"},
		{"unknown gin mode", map[string]string{"GIN_MODE": "production"}, "unknown gin mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(New())
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing env file should be ignored: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TODO_TEST_ENV_FILE=loaded\n"), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("TODO_TEST_ENV_FILE") })

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("failed to load env file: %v", err)
	}
	if got := os.Getenv("TODO_TEST_ENV_FILE"); got != "loaded" {
		t.Errorf("TODO_TEST_ENV_FILE = %q, want loaded", got)
	}
}
