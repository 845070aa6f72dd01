package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signtide/signtide/pkg/retry"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "signtide.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoadDefaults tests that absent keys keep their defaults
func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
accounts: "alice pw1"
gateway: "http://localhost:8800"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.CohortSize)
	assert.Equal(t, 5, cfg.PersonalConcurrency)
	assert.Equal(t, 5, cfg.FamilyConcurrency)
	assert.True(t, cfg.FatalAuthTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.GatewayRequestTimeout())
}

// TestLoadFileValues tests YAML parsing of the full option set
func TestLoadFileValues(t *testing.T) {
	path := writeConfig(t, `
accounts: "alice pw1 bob pw2"
family_ids: "fam-a fam-b"
gateway: "http://gw:9000"
cohort_size: 10
personal_concurrency: 8
family_concurrency: 3
personal_first_only: true
family_single_first: true
fatal_auth_timeout: false
business_attempts: 7
business_delay: 10s
wxpusher_app_token: tok
wxpusher_uid: uid
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.CohortSize)
	assert.Equal(t, 8, cfg.PersonalConcurrency)
	assert.Equal(t, 3, cfg.FamilyConcurrency)
	assert.True(t, cfg.PersonalFirstOnly)
	assert.True(t, cfg.FamilySingleFirst)
	assert.False(t, cfg.FatalAuthTimeout)
	assert.Equal(t, "tok", cfg.WxPusherAppToken)

	business := cfg.BusinessPolicy()
	assert.Equal(t, 7, business.Attempts)
	assert.Equal(t, 10*time.Second, business.Delay)

	// untouched policy keeps canonical values
	assert.Equal(t, retry.Notify, cfg.NotifyPolicy())
}

// TestEnvOverridesFile tests that environment values beat YAML values
func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
accounts: "file-account pw"
gateway: "http://file-gw"
cohort_size: 10
`)

	t.Setenv("SIGNTIDE_ACCOUNTS", "env-account pw2")
	t.Setenv("SIGNTIDE_COHORT_SIZE", "15")
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-bot")
	t.Setenv("TELEGRAM_CHAT_ID", "env-chat")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-account pw2", cfg.Accounts)
	assert.Equal(t, 15, cfg.CohortSize)
	assert.Equal(t, "http://file-gw", cfg.Gateway)
	assert.Equal(t, "env-bot", cfg.TelegramBotToken)
	assert.Equal(t, "env-chat", cfg.TelegramChatID)
}

// TestLoadWithoutFile tests the env-only path
func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("SIGNTIDE_ACCOUNTS", "alice pw1")
	t.Setenv("SIGNTIDE_GATEWAY", "http://gw")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "alice pw1", cfg.Accounts)
}

// TestValidate tests rejection of unusable configurations
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing accounts",
			mutate:  func(c *Config) { c.Accounts = "" },
			wantErr: "no accounts",
		},
		{
			name:    "missing gateway",
			mutate:  func(c *Config) { c.Gateway = "" },
			wantErr: "no gateway",
		},
		{
			name:    "non-positive cohort size",
			mutate:  func(c *Config) { c.CohortSize = 0 },
			wantErr: "cohort_size",
		},
		{
			name:    "non-positive personal concurrency",
			mutate:  func(c *Config) { c.PersonalConcurrency = -1 },
			wantErr: "personal_concurrency",
		},
		{
			name:    "bad delay string",
			mutate:  func(c *Config) { c.BusinessDelay = "soon" },
			wantErr: "business_delay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Accounts = "a b"
			cfg.Gateway = "http://gw"
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
