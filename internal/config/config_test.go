package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Server.Port)
	assert.Equal(t, "https://api.notion.com/v1", cfg.Notion.BaseURL)
	assert.Equal(t, "2022-06-28", cfg.Notion.Version)
	assert.Equal(t, 30*time.Second, cfg.Notion.Timeout)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.Host)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, "portfolio.db", cfg.Analytics.DBPath)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_YAMLThenEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := []byte(`
server:
  port: 9000
notion:
  api_key: from-file
  projects_database: projects-db
mail:
  owner_address: owner@example.com
`)
	require.NoError(t, os.WriteFile(path, yml, 0o600))

	t.Setenv("NOTION_API_KEY", "from-env")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("NOTION_TIMEOUT", "5s")
	t.Setenv("ANALYTICS_DISABLED", "yes")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Notion.APIKey)
	assert.Equal(t, "projects-db", cfg.Notion.ProjectsDatabase)
	assert.Equal(t, 2525, cfg.Mail.Port)
	assert.Equal(t, 5*time.Second, cfg.Notion.Timeout)
	assert.Equal(t, "owner@example.com", cfg.Mail.OwnerAddress)
	assert.True(t, cfg.Analytics.Disabled)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notion.api_key: is required")
	assert.Contains(t, err.Error(), "mail.password: is required")

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	cfg.Notion = NotionConfig{
		APIKey:               "secret",
		ProjectsDatabase:     "p",
		BlogsDatabase:        "b",
		CertificatesDatabase: "c",
		AboutPage:            "a",
	}
	cfg.Mail.Username = "me@example.com"
	cfg.Mail.Password = "app-password"
	cfg.Mail.OwnerAddress = "owner@example.com"
	assert.NoError(t, cfg.Validate())

	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())
}
