package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path. A missing file yields the defaults.
// SHEETSITE_SHEET_URL, when set, overrides sheets.default_url.
func Load(path string) (*AppConfig, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultConfigPath
	}

	var raw rawAppConfig
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg := applyRawAppConfig(raw)
	if v := strings.TrimSpace(os.Getenv(EnvSheetURL)); v != "" {
		cfg.Sheets.DefaultURL = v
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultAppConfig() *AppConfig {
	return applyRawAppConfig(rawAppConfig{})
}

func applyRawAppConfig(raw rawAppConfig) *AppConfig {
	cfg := &AppConfig{
		Port:           raw.Port,
		Env:            normalizeEnv(raw.Env),
		DSN:            strings.TrimSpace(raw.DSN),
		RedisURL:       normalizeRedisRawURL(raw.RedisURL),
		Database:       normalizeDatabaseConfig(raw.Database),
		Redis:          normalizeRedisConfig(raw.Redis),
		Paths:          normalizeRuntimePaths(raw.Paths),
		AllowedOrigins: normalizeList(raw.AllowedOrigins),
		Timezone:       strings.TrimSpace(raw.Timezone),
		Sheets:         normalizeSheetsConfig(raw.Sheets),
		Cache:          normalizeCacheConfig(raw.Cache),
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Paths.Logs == "" {
		cfg.Paths.Logs = strings.TrimSpace(raw.LogDir)
	}
	if cfg.DSN == "" {
		cfg.DSN = cfg.Database.DSNValue()
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = cfg.Redis.URLValue()
	}
	return cfg
}

func (c *AppConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	switch c.Sheets.Source {
	case SourceGViz, SourceSheetsAPI:
	case SourceWorkbook:
		if c.Sheets.WorkbookPath == "" {
			return errors.New("sheets.workbook_path is required for the workbook source")
		}
	case SourceProxy:
		if c.Sheets.ProxyURL == "" {
			return errors.New("sheets.proxy_url is required for the proxy source")
		}
	default:
		return fmt.Errorf("unknown sheets.source %q", c.Sheets.Source)
	}
	if c.Sheets.RatePerSecond < 0 {
		return fmt.Errorf("invalid sheets.rate_per_second: %v", c.Sheets.RatePerSecond)
	}
	if c.Sheets.RefreshInterval < 0 {
		return fmt.Errorf("invalid sheets.refresh_interval: %s", c.Sheets.RefreshInterval)
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// DatabaseEnabled reports whether a MySQL DSN was configured.
func (c *AppConfig) DatabaseEnabled() bool { return c.DSN != "" }

// RedisEnabled reports whether a redis URL was configured.
func (c *AppConfig) RedisEnabled() bool { return c.RedisURL != "" }

// LogDir resolves the log directory against the executable directory.
func (c *AppConfig) LogDir() string {
	return ResolveRuntimePath(c.Paths.Logs, "logs")
}
