// Package config resolves the service configuration from defaults, an
// optional .env file, the environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port           string
	GinMode        string
	Store          StoreConfig
	Log            LogConfig
	BcryptCost     int
	AllowedOrigins []string
}

type StoreConfig struct {
	Driver        string
	Timeout       time.Duration
	MongoURI      string
	MongoDatabase string
	DSN           string
}

type LogConfig struct {
	Level  string
	Format string
}

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	drivers = []string{"mongo", "postgres", "mysql", "sqlite"}
)

// envBindings maps configuration keys to the environment variables they are read from.
var envBindings = map[string]string{
	"port":                 "PORT",
	"gin.mode":             "GIN_MODE",
	"store.driver":         "STORE_DRIVER",
	"store.timeout":        "STORE_TIMEOUT",
	"mongo.uri":            "MONGODB_URI",
	"mongo.database":       "MONGODB_DATABASE",
	"database.dsn":         "DATABASE_URL",
	"log.level":            "LOG_LEVEL",
	"log.format":           "LOG_FORMAT",
	"auth.bcrypt_cost":     "BCRYPT_COST",
	"cors.client_url":      "CLIENT_URL",
	"cors.allowed_origins": "ALLOWED_ORIGINS",
}

// New returns a viper instance with defaults and environment bindings applied.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("port", "3000")
	v.SetDefault("gin.mode", "release")
	v.SetDefault("store.driver", "mongo")
	v.SetDefault("store.timeout", 10*time.Second)
	v.SetDefault("mongo.uri", "mongodb://127.0.0.1:27017")
	v.SetDefault("mongo.database", "ToDoApp")
	v.SetDefault("database.dsn", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("auth.bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("cors.client_url", "")
	v.SetDefault("cors.allowed_origins", "")

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	return v
}

// BindFlags registers the command-line flags that override configuration keys.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	flags.String("port", "", "HTTP listen port")
	flags.String("store", "", "store driver: "+strings.Join(drivers, ", "))
	flags.String("mongo-uri", "", "MongoDB connection string")
	flags.String("dsn", "", "SQL data source name for postgres, mysql or sqlite")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text, json, logfmt")

	bindings := map[string]string{
		"port":         "port",
		"store.driver": "store",
		"mongo.uri":    "mongo-uri",
		"database.dsn": "dsn",
		"log.level":    "log-level",
		"log.format":   "log-format",
	}

	for key, flag := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	return nil
}

// LoadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:    v.GetString("port"),
		GinMode: v.GetString("gin.mode"),
		Store: StoreConfig{
			Driver:        strings.ToLower(strings.TrimSpace(v.GetString("store.driver"))),
			Timeout:       v.GetDuration("store.timeout"),
			MongoURI:      v.GetString("mongo.uri"),
			MongoDatabase: v.GetString("mongo.database"),
			DSN:           v.GetString("database.dsn"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		BcryptCost:     v.GetInt("auth.bcrypt_cost"),
		AllowedOrigins: allowedOrigins(v.GetString("cors.client_url"), v.GetString("cors.allowed_origins")),
	}

	if cfg.Store.Driver == "sqlite" && cfg.Store.DSN == "" {
		cfg.Store.DSN = "todo.db"
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must not be empty")
	}

	known := false
	for _, d := range drivers {
		if c.Store.Driver == d {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown store driver %q (want one of %s)", c.Store.Driver, strings.Join(drivers, ", "))
	}

	switch c.Store.Driver {
	case "mongo":
		if c.Store.MongoURI == "" || c.Store.MongoDatabase == "" {
			return errors.New("mongo store requires MONGODB_URI and MONGODB_DATABASE")
		}
	case "postgres", "mysql":
		if c.Store.DSN == "" {
			return fmt.Errorf("%s store requires DATABASE_URL", c.Store.Driver)
		}
	}

	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("unknown gin mode %q (want %s, %s or %s)", c.GinMode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}

	if c.Store.Timeout <= 0 {
		return fmt.Errorf("store timeout must be positive, got %s", c.Store.Timeout)
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return nil
}

func allowedOrigins(clientURL, extra string) []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL = strings.TrimSpace(clientURL); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if extra != "" {
		for _, origin := range strings.Split(extra, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
