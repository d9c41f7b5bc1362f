// Package config loads and validates the service configuration from a yaml
// file, environment variables, and defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Sources    SourcesConfig    `mapstructure:"sources"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Collector  CollectorConfig  `mapstructure:"collector"`
	Suggestion SuggestionConfig `mapstructure:"suggestion"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Server     ServerConfig     `mapstructure:"server"`
}

type SourcesConfig struct {
	CaixaHosts       []string `mapstructure:"caixa_hosts"`
	MirrorLatestURL  string   `mapstructure:"mirror_latest_url"`
	MirrorContestURL string   `mapstructure:"mirror_contest_url"`
	ScrapeLatestURL  string   `mapstructure:"scrape_latest_url"`
	ScrapeContestURL string   `mapstructure:"scrape_contest_url"`
	HTTPTimeoutSec   int      `mapstructure:"http_timeout_sec" validate:"min=1"`
	BackoffMs        int      `mapstructure:"backoff_ms" validate:"min=1"`
	PreferMirror     bool     `mapstructure:"prefer_mirror"`
}

type CacheConfig struct {
	DrawTTLSec      int `mapstructure:"draw_ttl_sec" validate:"min=1"`
	AggregateTTLSec int `mapstructure:"aggregate_ttl_sec" validate:"min=1"`
}

type CollectorConfig struct {
	MaxFetch int `mapstructure:"max_fetch" validate:"min=1"`
}

type SuggestionConfig struct {
	TrendWindow     int     `mapstructure:"trend_window" validate:"min=1"`
	HotFraction     float64 `mapstructure:"hot_fraction" validate:"gt=0,lte=1"`
	ColdFraction    float64 `mapstructure:"cold_fraction" validate:"gt=0,lte=1"`
	SumMin          int     `mapstructure:"sum_min" validate:"min=1"`
	SumMax          int     `mapstructure:"sum_max" validate:"min=1"`
	RepeatThreshold int     `mapstructure:"repeat_threshold" validate:"min=1,max=15"`
}

// DatabaseConfig configures the optional draw archive. The archive is
// disabled unless a host is set; the resolver core never needs it.
type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	Database        string            `mapstructure:"database"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_sec"`
}

// Enabled reports whether an archive database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// ConfigLoader reads one config file location.
type ConfigLoader struct {
	configFile string
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	return &ConfigLoader{configFile: configFile}, nil
}

// Load reads the configuration, applying defaults and env bindings, and
// validates the result.
func (l *ConfigLoader) Load() (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lotofacil")
	}

	v.SetDefault("sources.caixa_hosts", []string{
		"https://servicebus2.caixa.gov.br/portaldeloterias/api/lotofacil",
		"https://loterias.caixa.gov.br/portaldeloterias/api/lotofacil",
	})
	v.SetDefault("sources.mirror_latest_url", "https://loteriascaixa-api.herokuapp.com/api/lotofacil/latest")
	v.SetDefault("sources.mirror_contest_url", "https://loteriascaixa-api.herokuapp.com/api/lotofacil/%d")
	v.SetDefault("sources.http_timeout_sec", 12)
	v.SetDefault("sources.backoff_ms", 60)
	v.SetDefault("cache.draw_ttl_sec", 120)
	v.SetDefault("cache.aggregate_ttl_sec", 120)
	v.SetDefault("collector.max_fetch", 400)
	v.SetDefault("suggestion.trend_window", 20)
	v.SetDefault("suggestion.hot_fraction", 0.7)
	v.SetDefault("suggestion.cold_fraction", 0.3)
	v.SetDefault("suggestion.sum_min", 190)
	v.SetDefault("suggestion.sum_max", 210)
	v.SetDefault("suggestion.repeat_threshold", 9)
	v.SetDefault("database.port", 3306)
	v.SetDefault("server.addr", ":8080")

	// Credentials come from the environment only, never the config file.
	if err := v.BindEnv("database.username", "LOTOFACIL_DB_USERNAME"); err != nil {
		return nil, fmt.Errorf("failed to bind LOTOFACIL_DB_USERNAME environment variable: %w", err)
	}
	if err := v.BindEnv("database.password", "LOTOFACIL_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind LOTOFACIL_DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if cfg.Suggestion.SumMin > cfg.Suggestion.SumMax {
		return nil, fmt.Errorf("suggestion.sum_min must not exceed suggestion.sum_max")
	}
	if cfg.Suggestion.ColdFraction > cfg.Suggestion.HotFraction {
		return nil, fmt.Errorf("suggestion.cold_fraction must not exceed suggestion.hot_fraction")
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	validate, trans, err := newValidator()
	if err != nil {
		return fmt.Errorf("newValidator > %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		var messages []string
		for _, fieldError := range extractFieldErrors(err) {
			messages = append(messages, fieldError.Translate(trans))
		}
		if len(messages) > 0 {
			return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
		}
		return fmt.Errorf("validate.Struct > %w", err)
	}
	return nil
}
