package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yukikurage/tracker-api/internal/constants"
)

type Config struct {
	Port         string        `yaml:"port"`
	GinMode      string        `yaml:"gin_mode"`
	DBDriver     string        `yaml:"db_driver"`
	DBHost       string        `yaml:"db_host"`
	DBPort       string        `yaml:"db_port"`
	DBUser       string        `yaml:"db_user"`
	DBPassword   string        `yaml:"db_password"`
	DBName       string        `yaml:"db_name"`
	DBPath       string        `yaml:"db_path"`
	JWTSecret    string        `yaml:"jwt_secret"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
	LogLevel     string        `yaml:"log_level"`
	LogFormat    string        `yaml:"log_format"`
	OpenAIAPIKey string        `yaml:"openai_api_key"`
	SiteName     string        `yaml:"site_name"`
}

// DefaultJWTSecret signs tokens when no secret is configured. Only fit for
// local development.
const DefaultJWTSecret = "default-secret-key-change-me"

// LoadDefaults returns the configuration used when nothing else is set.
func LoadDefaults() *Config {
	return &Config{
		Port:       "8080",
		GinMode:    "debug",
		DBDriver:   "postgres",
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "tracker",
		DBPassword: "tracker",
		DBName:     "tracker",
		DBPath:     "tracker.db",
		JWTSecret:  DefaultJWTSecret,
		TokenTTL:   constants.DefaultTokenTTL,
		LogLevel:   "info",
		LogFormat:  "text",
		SiteName:   "Tracker",
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// environment variables and finally command-line flags. Later sources win.
func Load(args []string) (*Config, error) {
	cfg := LoadDefaults()

	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	path, _ := fs.GetString("config")
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := applyFlags(fs, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UsesDefaultSecret reports whether tokens are signed with DefaultJWTSecret.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported db driver %q", c.DBDriver)
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("jwt secret must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.OpenAIAPIKey = getEnv("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	cfg.SiteName = getEnv("SITE_NAME", cfg.SiteName)

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		cfg.TokenTTL = ttl
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
