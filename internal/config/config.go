// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/vinted-search/pkg/logger"
	"github.com/donaldgifford/vinted-search/pkg/query"
)

// Config is the top-level application configuration.
type Config struct {
	Vinted        VintedConfig        `yaml:"vinted"`
	Server        ServerConfig        `yaml:"server"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Watches       []WatchConfig       `yaml:"watches"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
	Tracing       TracingConfig       `yaml:"tracing"`
}

// VintedConfig defines how the Vinted site and API are reached.
type VintedConfig struct {
	Host             string            `yaml:"host"`
	BaseURL          string            `yaml:"base_url"` // replaces https://<host>.<variant> for every variant
	DefaultVariant   string            `yaml:"default_variant"`
	UserAgent        string            `yaml:"user_agent"`
	CookieEnvPrefix  string            `yaml:"cookie_env_prefix"`
	Cookies          map[string]string `yaml:"cookies"` // variant -> "access_token_web=..."
	CloudflareBypass bool              `yaml:"cloudflare_bypass"`
	RequestTimeout   time.Duration     `yaml:"request_timeout"`
	RateLimit        RateLimitConfig   `yaml:"rate_limit"`
}

// RateLimitConfig defines outbound API throttling. A daily_limit of 0
// disables the daily budget.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// ScheduleConfig defines how often watches are polled.
type ScheduleConfig struct {
	PollInterval  time.Duration `yaml:"poll_interval"`
	StaggerOffset time.Duration `yaml:"stagger_offset"` // pause between two watches of a cycle
	MaxSeen       int           `yaml:"max_seen"`       // listing IDs remembered per watch
}

// WatchConfig is a saved catalog search that is polled for new listings.
type WatchConfig struct {
	Name   string            `yaml:"name"`
	URL    string            `yaml:"url"`
	Params map[string]string `yaml:"params"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, pretty
}

// TracingConfig defines OTLP trace export. An unset sample_ratio keeps
// every trace.
type TracingConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Endpoint    string            `yaml:"endpoint"` // e.g. http://otel-collector:4317
	Insecure    bool              `yaml:"insecure"`
	Headers     map[string]string `yaml:"headers"`
	ServiceName string            `yaml:"service_name"`
	SampleRatio float64           `yaml:"sample_ratio"`
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with every default applied, used when
// no config file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyVintedDefaults(&cfg.Vinted)
	applyServerDefaults(&cfg.Server)
	applyScheduleDefaults(&cfg.Schedule)
	applyLoggingDefaults(&cfg.Logging)
	applyTracingDefaults(&cfg.Tracing)
}

func applyVintedDefaults(v *VintedConfig) {
	if v.Host == "" {
		v.Host = query.DefaultHost
	}
	if v.DefaultVariant == "" {
		v.DefaultVariant = "fr"
	}
	if v.CookieEnvPrefix == "" {
		v.CookieEnvPrefix = "VINTED_API"
	}
	if v.RequestTimeout == 0 {
		v.RequestTimeout = 30 * time.Second
	}
	applyRateLimitDefaults(&v.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 2.0
	}
	if r.Burst == 0 {
		r.Burst = 5
	}
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 60 * time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.PollInterval == 0 {
		s.PollInterval = 5 * time.Minute
	}
	if s.StaggerOffset == 0 {
		s.StaggerOffset = 2 * time.Second
	}
	if s.MaxSeen == 0 {
		s.MaxSeen = 5000
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = logger.FormatText
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "vinted-search"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1
	}
}

func validate(cfg *Config) error {
	var errs []error

	if !isVariant(cfg.Vinted.DefaultVariant) {
		errs = append(errs, fmt.Errorf(
			"vinted.default_variant must be lowercase letters (got %q)", cfg.Vinted.DefaultVariant,
		))
	}
	if cfg.Vinted.BaseURL != "" {
		if u, err := url.Parse(cfg.Vinted.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("vinted.base_url must be an absolute http(s) URL (got %q)", cfg.Vinted.BaseURL))
		}
	}
	for variant := range cfg.Vinted.Cookies {
		if !isVariant(variant) {
			errs = append(errs, fmt.Errorf("vinted.cookies: invalid variant %q", variant))
		}
	}
	if cfg.Vinted.RateLimit.PerSecond < 0 {
		errs = append(errs, errors.New("vinted.rate_limit.per_second must not be negative"))
	}
	if cfg.Vinted.RateLimit.DailyLimit < 0 {
		errs = append(errs, errors.New("vinted.rate_limit.daily_limit must not be negative"))
	}

	if cfg.Schedule.PollInterval < 30*time.Second {
		errs = append(errs, fmt.Errorf(
			"schedule.poll_interval must be at least 30s (got %s)", cfg.Schedule.PollInterval,
		))
	}
	if cfg.Schedule.StaggerOffset < 0 {
		errs = append(errs, errors.New("schedule.stagger_offset must not be negative"))
	}
	if cfg.Schedule.MaxSeen < 0 {
		errs = append(errs, errors.New("schedule.max_seen must not be negative"))
	}

	errs = append(errs, validateWatches(cfg.Watches, cfg.Vinted.Host)...)

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(
			errs,
			errors.New("notifications.discord.webhook_url is required when discord is enabled"),
		)
	}

	if !logger.ValidFormat(cfg.Logging.Format) {
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json, pretty (got %q)", cfg.Logging.Format,
		))
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		errs = append(errs, errors.New("tracing.endpoint is required when tracing is enabled"))
	}
	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf(
			"tracing.sample_ratio must be between 0 and 1 (got %g)", cfg.Tracing.SampleRatio,
		))
	}

	return errors.Join(errs...)
}

func validateWatches(watches []WatchConfig, host string) []error {
	var errs []error
	seen := make(map[string]struct{}, len(watches))
	tr := query.Translator{Host: host}

	for i, w := range watches {
		if w.Name == "" {
			errs = append(errs, fmt.Errorf("watches[%d].name is required", i))
		} else if _, dup := seen[w.Name]; dup {
			errs = append(errs, fmt.Errorf("watches[%d].name %q is duplicated", i, w.Name))
		} else {
			seen[w.Name] = struct{}{}
		}

		if w.URL == "" {
			errs = append(errs, fmt.Errorf("watches[%d].url is required", i))
			continue
		}
		if !tr.Translate(w.URL, nil).Valid {
			errs = append(errs, fmt.Errorf("watches[%d].url %q is not a catalog URL", i, w.URL))
		}
	}
	return errs
}

func isVariant(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
