package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix of environment overrides, e.g. HECHONL_SERVER_PORT=9000.
const EnvPrefix = "HECHONL"

const defaultConfigPath = "config/config.yaml"

type ServerConfig struct {
	Host string `yaml:"host" envconfig:"host"`
	Port int    `yaml:"port" envconfig:"port"`
	Env  string `yaml:"env" envconfig:"env"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver" envconfig:"driver"` // sqlite, postgres
	DSN      string `yaml:"dsn" envconfig:"dsn"`
	LogLevel string `yaml:"log_level" envconfig:"log_level"`
}

type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret" envconfig:"jwt_secret"`
	TokenTTL         time.Duration `yaml:"token_ttl" envconfig:"token_ttl"`
	PasswordMode     string        `yaml:"password_mode" envconfig:"password_mode"` // bcrypt, plain
	SimulatedLatency time.Duration `yaml:"simulated_latency" envconfig:"simulated_latency"`
}

type DirectoryConfig struct {
	DefaultFilter string `yaml:"default_filter" envconfig:"default_filter"`
	SyncOnChange  bool   `yaml:"sync_on_change" envconfig:"sync_on_change"`
}

type SeedConfig struct {
	OnStartup bool `yaml:"on_startup" envconfig:"on_startup"`
	Force     bool `yaml:"force" envconfig:"force"`
}

type I18nConfig struct {
	DefaultLanguage string `yaml:"default_language" envconfig:"default_language"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"server"`
	Database  DatabaseConfig  `yaml:"database" envconfig:"database"`
	Auth      AuthConfig      `yaml:"auth" envconfig:"auth"`
	Directory DirectoryConfig `yaml:"directory" envconfig:"directory"`
	Seed      SeedConfig      `yaml:"seed" envconfig:"seed"`
	I18n      I18nConfig      `yaml:"i18n" envconfig:"i18n"`
}

var AppConfig *Config

// Default returns the configuration used when nothing else is provided:
// a local SQLite file, bcrypt passwords and no simulated latency.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 4000,
			Env:  "development",
		},
		Database: DatabaseConfig{
			Driver:   "sqlite",
			DSN:      "hechonl.db",
			LogLevel: "warn",
		},
		Auth: AuthConfig{
			JWTSecret:    "change-me",
			TokenTTL:     24 * time.Hour,
			PasswordMode: "bcrypt",
		},
		Directory: DirectoryConfig{
			DefaultFilter: "nearest",
			SyncOnChange:  true,
		},
		I18n: I18nConfig{
			DefaultLanguage: "es",
		},
	}
}

// Load builds the configuration in layers: defaults, .env, YAML file, environment.
// The YAML file comes from CONFIG_PATH; when CONFIG_PATH is unset a missing
// config/config.yaml is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	configPath := os.Getenv("CONFIG_PATH")
	explicit := configPath != ""
	if !explicit {
		configPath = defaultConfigPath
	}
	if err := loadFile(cfg, configPath, explicit); err != nil {
		return nil, err
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string, required bool) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

// LoadConfig loads into AppConfig.
func LoadConfig() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// GetConfig returns AppConfig, falling back to defaults when loading fails.
func GetConfig() *Config {
	if AppConfig == nil {
		if err := LoadConfig(); err != nil {
			AppConfig = Default()
		}
	}
	return AppConfig
}

func (c *Config) Validate() error {
	var problems []string

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		problems = append(problems, fmt.Sprintf("database.driver must be sqlite or postgres, got %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		problems = append(problems, "database.dsn is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port out of range: %d", c.Server.Port))
	}
	switch c.Auth.PasswordMode {
	case "bcrypt", "plain":
	default:
		problems = append(problems, fmt.Sprintf("auth.password_mode must be bcrypt or plain, got %q", c.Auth.PasswordMode))
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		problems = append(problems, "auth.token_ttl must be positive")
	}
	if c.Auth.SimulatedLatency < 0 {
		problems = append(problems, "auth.simulated_latency must not be negative")
	}
	switch c.Directory.DefaultFilter {
	case "nearest", "top_rated", "newest":
	default:
		problems = append(problems, fmt.Sprintf("directory.default_filter must be nearest, top_rated or newest, got %q", c.Directory.DefaultFilter))
	}
	switch c.I18n.DefaultLanguage {
	case "es", "en":
	default:
		problems = append(problems, fmt.Sprintf("i18n.default_language must be es or en, got %q", c.I18n.DefaultLanguage))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Address returns host:port for the HTTP listener.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
