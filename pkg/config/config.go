package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/signtide/signtide/pkg/cohort"
	"github.com/signtide/signtide/pkg/retry"
)

// Config holds everything a run needs. Values come from a YAML file with
// environment variables layered on top; the environment wins, matching how
// the operators inject secrets in CI schedulers.
type Config struct {
	// Accounts is the flat whitespace/newline separated list of alternating
	// username/password tokens
	Accounts string `yaml:"accounts"`

	// FamilyIDs is the ordered family-ID list, one entry per cohort
	FamilyIDs string `yaml:"family_ids"`

	// CohortSize is the number of consecutive accounts per cohort
	CohortSize int `yaml:"cohort_size"`

	// PersonalConcurrency is the fan-out width for personal sign-ins
	PersonalConcurrency int `yaml:"personal_concurrency"`

	// FamilyConcurrency is the fan-out width for family sign-ins
	FamilyConcurrency int `yaml:"family_concurrency"`

	// PersonalFirstOnly restricts personal sign-ins to each cohort's first account
	PersonalFirstOnly bool `yaml:"personal_first_only"`

	// FamilySingleFirst restricts family sign-ins to a single sequential
	// attempt by each cohort's first account
	FamilySingleFirst bool `yaml:"family_single_first"`

	// FatalAuthTimeout aborts the whole run when a login fails with a
	// timeout-class error (the gateway is likely down for everyone)
	FatalAuthTimeout bool `yaml:"fatal_auth_timeout"`

	// Gateway is the check-in gateway base URL
	Gateway string `yaml:"gateway"`

	// GatewayTimeout bounds one gateway request, e.g. "30s"
	GatewayTimeout string `yaml:"gateway_timeout"`

	// Retry overrides; zero values keep the canonical policies
	BusinessAttempts int    `yaml:"business_attempts"`
	BusinessDelay    string `yaml:"business_delay"`
	NotifyAttempts   int    `yaml:"notify_attempts"`
	NotifyDelay      string `yaml:"notify_delay"`

	// Notification channel credential pairs; a channel is enabled iff both
	// members of its pair are present
	WxPusherAppToken string `yaml:"wxpusher_app_token"`
	WxPusherUID      string `yaml:"wxpusher_uid"`
	TelegramBotToken string `yaml:"telegram_bot_token"`
	TelegramChatID   string `yaml:"telegram_chat_id"`

	// MetricsAddr enables the Prometheus endpoint when non-empty, e.g. ":9105"
	MetricsAddr string `yaml:"metrics_addr"`

	// Logging
	LogLevel string `yaml:"log_level"`
	JSONLog  bool   `yaml:"json_log"`
}

// Default returns a Config with the defaults applied
func Default() Config {
	return Config{
		CohortSize:          cohort.DefaultSize,
		PersonalConcurrency: 5,
		FamilyConcurrency:   5,
		FatalAuthTimeout:    true,
		GatewayTimeout:      "30s",
		LogLevel:            "info",
	}
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv layers environment variables over the file values. The push
// credential names match the original operator setup; everything else is
// prefixed SIGNTIDE_.
func (c *Config) applyEnv() {
	envString(&c.Accounts, "SIGNTIDE_ACCOUNTS")
	envString(&c.FamilyIDs, "SIGNTIDE_FAMILY_IDS")
	envString(&c.Gateway, "SIGNTIDE_GATEWAY")
	envString(&c.MetricsAddr, "SIGNTIDE_METRICS_ADDR")
	envString(&c.LogLevel, "SIGNTIDE_LOG_LEVEL")

	envString(&c.WxPusherAppToken, "WX_PUSHER_APP_TOKEN")
	envString(&c.WxPusherUID, "WX_PUSHER_UID")
	envString(&c.TelegramBotToken, "TELEGRAM_BOT_TOKEN")
	envString(&c.TelegramChatID, "TELEGRAM_CHAT_ID")

	envInt(&c.CohortSize, "SIGNTIDE_COHORT_SIZE")
	envInt(&c.PersonalConcurrency, "SIGNTIDE_PERSONAL_CONCURRENCY")
	envInt(&c.FamilyConcurrency, "SIGNTIDE_FAMILY_CONCURRENCY")

	envBool(&c.PersonalFirstOnly, "SIGNTIDE_PERSONAL_FIRST_ONLY")
	envBool(&c.FamilySingleFirst, "SIGNTIDE_FAMILY_SINGLE_FIRST")
	envBool(&c.FatalAuthTimeout, "SIGNTIDE_FATAL_AUTH_TIMEOUT")
}

// Validate rejects configurations a run cannot start with
func (c *Config) Validate() error {
	if c.Accounts == "" {
		return fmt.Errorf("no accounts configured")
	}
	if c.Gateway == "" {
		return fmt.Errorf("no gateway configured")
	}
	if c.CohortSize <= 0 {
		return fmt.Errorf("cohort_size must be positive, got %d", c.CohortSize)
	}
	if c.PersonalConcurrency <= 0 {
		return fmt.Errorf("personal_concurrency must be positive, got %d", c.PersonalConcurrency)
	}
	if c.FamilyConcurrency <= 0 {
		return fmt.Errorf("family_concurrency must be positive, got %d", c.FamilyConcurrency)
	}
	for _, d := range []struct{ name, value string }{
		{"gateway_timeout", c.GatewayTimeout},
		{"business_delay", c.BusinessDelay},
		{"notify_delay", c.NotifyDelay},
	} {
		if d.value == "" {
			continue
		}
		if _, err := time.ParseDuration(d.value); err != nil {
			return fmt.Errorf("invalid %s: %w", d.name, err)
		}
	}
	return nil
}

// BusinessPolicy returns the business retry policy with overrides applied
func (c *Config) BusinessPolicy() retry.Policy {
	return overridePolicy(retry.Business, c.BusinessAttempts, c.BusinessDelay)
}

// NotifyPolicy returns the notification retry policy with overrides applied
func (c *Config) NotifyPolicy() retry.Policy {
	return overridePolicy(retry.Notify, c.NotifyAttempts, c.NotifyDelay)
}

// GatewayRequestTimeout returns the parsed per-request timeout
func (c *Config) GatewayRequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.GatewayTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

func overridePolicy(base retry.Policy, attempts int, delay string) retry.Policy {
	p := base
	if attempts > 0 {
		p.Attempts = attempts
	}
	if delay != "" {
		if d, err := time.ParseDuration(delay); err == nil {
			p.Delay = d
		}
	}
	return p
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
