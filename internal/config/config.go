// Package config loads portfolio server settings from defaults, an optional
// YAML file, the environment (.env included) and command-line flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/theme"
)

type Config struct {
	Port         string `yaml:"port"`
	DatabasePath string `yaml:"database_path"`
	ContentPath  string `yaml:"content_path"`

	Theme   ThemeConfig   `yaml:"theme"`
	SMTP    SMTPConfig    `yaml:"smtp"`
	Admin   AdminConfig   `yaml:"admin"`
	Session SessionConfig `yaml:"session"`
}

type ThemeConfig struct {
	StorageKey string           `yaml:"storage_key"`
	Default    theme.Preference `yaml:"default"`
}

type SMTPConfig struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	User    string `yaml:"user"`
	Pass    string `yaml:"pass"`
	ToEmail string `yaml:"to_email"`
}

type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type SessionConfig struct {
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxSessions int           `yaml:"max_sessions"`
}

func Default() *Config {
	return &Config{
		Port:         "8080",
		DatabasePath: "portfolio.db",
		Theme: ThemeConfig{
			StorageKey: theme.DefaultStorageKey,
			Default:    theme.PreferenceSystem,
		},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: "587",
		},
		Session: SessionConfig{
			IdleTimeout: 30 * time.Minute,
			MaxSessions: 1024,
		},
	}
}

// Load layers defaults, the YAML file at path (if non-empty and present) and
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err == nil {
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromArgs parses command-line flags, loads the config file they name and
// lets explicitly set flags win over everything else.
func FromArgs(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("portfolio", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", os.Getenv("CONFIG_PATH"), "path to a YAML config file")
	port := fs.StringP("port", "p", "", "HTTP listen port")
	dbPath := fs.String("db", "", "SQLite database path")
	contentPath := fs.String("content", "", "YAML resume content file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := Load(*configPath)
	if err != nil {
		return nil, err
	}
	if fs.Changed("port") {
		cfg.Port = *port
	}
	if fs.Changed("db") {
		cfg.DatabasePath = *dbPath
	}
	if fs.Changed("content") {
		cfg.ContentPath = *contentPath
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if c.Theme.StorageKey == "" {
		return fmt.Errorf("theme storage key must not be empty")
	}
	if !c.Theme.Default.Valid() {
		return fmt.Errorf("invalid default theme %q (want light, dark or system)", c.Theme.Default)
	}
	if c.Session.IdleTimeout <= 0 {
		return fmt.Errorf("session idle timeout must be positive")
	}
	if c.Session.MaxSessions <= 0 {
		return fmt.Errorf("session max sessions must be positive")
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.DatabasePath, "DATABASE_PATH")
	setString(&c.ContentPath, "CONTENT_PATH")
	setString(&c.Theme.StorageKey, "THEME_STORAGE_KEY")
	if v := os.Getenv("THEME_DEFAULT"); v != "" {
		c.Theme.Default = theme.Preference(v)
	}
	setString(&c.SMTP.Host, "SMTP_HOST")
	setString(&c.SMTP.Port, "SMTP_PORT")
	setString(&c.SMTP.User, "SMTP_USER")
	setString(&c.SMTP.Pass, "SMTP_PASS")
	setString(&c.SMTP.ToEmail, "TO_EMAIL")
	setString(&c.Admin.Username, "ADMIN_USERNAME")
	setString(&c.Admin.Password, "ADMIN_PASSWORD")
	if v := os.Getenv("SESSION_IDLE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_IDLE_TIMEOUT %q: %w", v, err)
		}
		c.Session.IdleTimeout = d
	}
	if v := os.Getenv("SESSION_MAX_SESSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_MAX_SESSIONS %q: %w", v, err)
		}
		c.Session.MaxSessions = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
