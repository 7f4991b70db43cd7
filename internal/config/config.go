// Package config loads the portfolio service configuration from an optional
// YAML file, .env files and environment variables.
//
// Environment variables always win over the YAML file. Files are loaded in
// this order before the environment is read:
//
//  1. ENV_FILE (when set, only this file is loaded)
//  2. .env.local
//  3. .env
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/logger"
)

const (
	defaultPort            = 8080
	defaultNotionBaseURL   = "https://api.notion.com/v1"
	defaultNotionVersion   = "2022-06-28"
	defaultNotionTimeout   = 30 * time.Second
	defaultSMTPHost        = "smtp.gmail.com"
	defaultSMTPPort        = 587
	defaultAnalyticsDBPath = "portfolio.db"
	defaultRetention       = 365 * 24 * time.Hour
)

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Notion    NotionConfig    `yaml:"notion"`
	Mail      MailConfig      `yaml:"mail"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Logging   logger.Config   `yaml:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port       int    `env:"PORT"        yaml:"port"`
	Debug      bool   `env:"APP_DEBUG"   yaml:"debug"`
	AdminToken string `env:"ADMIN_TOKEN" yaml:"admin_token"`
}

// NotionConfig holds the content service credential and the collection ids.
type NotionConfig struct {
	APIKey               string        `env:"NOTION_API_KEY"               yaml:"api_key"`
	BaseURL              string        `env:"NOTION_BASE_URL"              yaml:"base_url"`
	Version              string        `env:"NOTION_VERSION"               yaml:"version"`
	Timeout              time.Duration `env:"NOTION_TIMEOUT"               yaml:"timeout"`
	ProjectsDatabase     string        `env:"NOTION_DATABASE_PROJECTS"     yaml:"projects_database"`
	BlogsDatabase        string        `env:"NOTION_DATABASE_BLOGS"        yaml:"blogs_database"`
	CertificatesDatabase string        `env:"NOTION_DATABASE_CERTIFICATES" yaml:"certificates_database"`
	AboutPage            string        `env:"NOTION_PAGE_ABOUT"            yaml:"about_page"`
}

// MailConfig holds the SMTP relay account and the owner's notification address.
type MailConfig struct {
	Host         string `env:"SMTP_HOST"   yaml:"host"`
	Port         int    `env:"SMTP_PORT"   yaml:"port"`
	Username     string `env:"EMAIL_USER"  yaml:"username"`
	Password     string `env:"EMAIL_PASS"  yaml:"password"`
	OwnerAddress string `env:"OWNER_EMAIL" yaml:"owner_address"`
}

// AnalyticsConfig controls visitor tracking.
type AnalyticsConfig struct {
	Disabled  bool          `env:"ANALYTICS_DISABLED"  yaml:"disabled"`
	DBPath    string        `env:"ANALYTICS_DB_PATH"   yaml:"db_path"`
	Retention time.Duration `env:"ANALYTICS_RETENTION" yaml:"retention"`
	// Salt for visitor IP hashes. A random per-process salt is used when empty.
	Salt string `env:"ANALYTICS_SALT" yaml:"salt"`
}

// Load reads path (skipped when empty or missing), applies environment
// overrides and fills defaults.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)
	return &cfg, nil
}

func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	if err := godotenv.Load(".env.local"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env.local: %w", err)
	}
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}

	n := &cfg.Notion
	if n.BaseURL == "" {
		n.BaseURL = defaultNotionBaseURL
	}
	if n.Version == "" {
		n.Version = defaultNotionVersion
	}
	if n.Timeout == 0 {
		n.Timeout = defaultNotionTimeout
	}

	if cfg.Mail.Host == "" {
		cfg.Mail.Host = defaultSMTPHost
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = defaultSMTPPort
	}

	if cfg.Analytics.DBPath == "" {
		cfg.Analytics.DBPath = defaultAnalyticsDBPath
	}
	if cfg.Analytics.Retention == 0 {
		cfg.Analytics.Retention = defaultRetention
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// ValidationError names the offending setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func required(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// Validate checks the Notion credential and collection ids.
func (n NotionConfig) Validate() error {
	return errors.Join(
		required("notion.api_key", n.APIKey),
		required("notion.projects_database", n.ProjectsDatabase),
		required("notion.blogs_database", n.BlogsDatabase),
		required("notion.certificates_database", n.CertificatesDatabase),
		required("notion.about_page", n.AboutPage),
	)
}

// Validate checks the relay account and owner address.
func (m MailConfig) Validate() error {
	var portErr error
	if m.Port < 1 || m.Port > 65535 {
		portErr = &ValidationError{Field: "mail.port", Message: "must be between 1 and 65535"}
	}
	return errors.Join(
		required("mail.host", m.Host),
		portErr,
		required("mail.username", m.Username),
		required("mail.password", m.Password),
		required("mail.owner_address", m.OwnerAddress),
	)
}

// Validate checks everything the HTTP server needs.
func (c *Config) Validate() error {
	var portErr error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		portErr = &ValidationError{Field: "server.port", Message: "must be between 1 and 65535"}
	}
	return errors.Join(portErr, c.Notion.Validate(), c.Mail.Validate())
}
