// Package config loads application settings from config.yaml, a .env file
// and AUDIT_* environment variables.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Source   SourceConfig   `yaml:"source" mapstructure:"source"`
	Fetch    FetchConfig    `yaml:"fetch" mapstructure:"fetch"`
	Resolver ResolverConfig `yaml:"resolver" mapstructure:"resolver"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// SourceConfig locates the company spreadsheet. URL and File name a single
// source; URLs and Files add more, loaded in that order.
type SourceConfig struct {
	URL       string   `yaml:"url" mapstructure:"url"`
	URLs      []string `yaml:"urls" mapstructure:"urls"`
	File      string   `yaml:"file" mapstructure:"file"`
	Files     []string `yaml:"files" mapstructure:"files"`
	Format    string   `yaml:"format" mapstructure:"format"`
	Sheet     string   `yaml:"sheet" mapstructure:"sheet"`
	CacheBust bool     `yaml:"cache_bust" mapstructure:"cache_bust"`
}

// Locations returns every configured URL and file, singular entries first.
func (s SourceConfig) Locations() (urls, files []string) {
	if s.URL != "" {
		urls = append(urls, s.URL)
	}
	for _, u := range s.URLs {
		if u != "" {
			urls = append(urls, u)
		}
	}
	if s.File != "" {
		files = append(files, s.File)
	}
	for _, f := range s.Files {
		if f != "" {
			files = append(files, f)
		}
	}
	return urls, files
}

// FetchConfig tunes the HTTP and FTP fetchers.
type FetchConfig struct {
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// ResolverConfig tunes header matching.
type ResolverConfig struct {
	SynonymsFile string `yaml:"synonyms_file" mapstructure:"synonyms_file"`
	FoldAccents  bool   `yaml:"fold_accents" mapstructure:"fold_accents"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port                int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins      []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RefreshIntervalSecs int      `yaml:"refresh_interval_secs" mapstructure:"refresh_interval_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, config.yaml and the environment.
// Environment variables win over the file, which wins over defaults.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, eris.Wrap(err, "config: load .env")
		}
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("AUDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key gets a default so AutomaticEnv can see it during Unmarshal.
	v.SetDefault("source.url", "")
	v.SetDefault("source.urls", []string{})
	v.SetDefault("source.file", "")
	v.SetDefault("source.files", []string{})
	v.SetDefault("source.format", "auto")
	v.SetDefault("source.sheet", "")
	v.SetDefault("source.cache_bust", true)
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.user_agent", "presence-audit/1.0")
	v.SetDefault("fetch.rate_per_sec", 5)
	v.SetDefault("resolver.synonyms_file", "")
	v.SetDefault("resolver.fold_accents", false)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.refresh_interval_secs", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on. Modes are
// "source" (any command that loads the spreadsheet) and "serve".
func (c *Config) Validate(mode string) error {
	var errs []error

	checkSource := func() {
		urls, files := c.Source.Locations()
		if len(urls)+len(files) == 0 {
			errs = append(errs, eris.New("source.url or source.file is required"))
		}
		switch strings.ToLower(c.Source.Format) {
		case "", "auto", "csv", "xlsx":
		default:
			errs = append(errs, eris.Errorf("source.format %q must be auto, csv or xlsx", c.Source.Format))
		}
		if c.Fetch.MaxRetries < 1 {
			errs = append(errs, eris.New("fetch.max_retries must be >= 1"))
		}
		if c.Fetch.RatePerSec <= 0 {
			errs = append(errs, eris.New("fetch.rate_per_sec must be > 0"))
		}
	}

	switch mode {
	case "source":
		checkSource()
	case "serve":
		checkSource()
		if c.Server.Port <= 0 {
			errs = append(errs, eris.New("server.port must be > 0"))
		}
		if c.Server.RefreshIntervalSecs < 0 {
			errs = append(errs, eris.New("server.refresh_interval_secs must be >= 0"))
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Wrap(errors.Join(errs...), "config: invalid")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
