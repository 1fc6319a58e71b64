package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"` // "development" | "production"
	DSN            string                `yaml:"dsn"` // MySQL DSN; empty disables the database
	RedisURL       string                `yaml:"redis_url"`
	Database       DatabaseRuntimeConfig `yaml:"database"`
	Redis          RedisRuntimeConfig    `yaml:"redis"`
	Paths          RuntimePathsConfig    `yaml:"paths"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	Timezone       string                `yaml:"timezone"`
	Sheets         SheetsConfig          `yaml:"sheets"`
	Cache          CacheConfig           `yaml:"cache"`
}

type DatabaseRuntimeConfig struct {
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	User     string            `yaml:"user"`
	Password string            `yaml:"password"`
	Name     string            `yaml:"name"`
	Charset  string            `yaml:"charset"`
	Loc      string            `yaml:"loc"`
	Params   map[string]string `yaml:"params"`
}

type RedisRuntimeConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
}

// SheetsConfig selects and tunes the upstream spreadsheet source.
type SheetsConfig struct {
	DefaultURL      string        `yaml:"default_url"`
	Source          string        `yaml:"source"` // gviz | sheetsapi | workbook | proxy
	APIKey          string        `yaml:"api_key"`
	WorkbookPath    string        `yaml:"workbook_path"`
	ProxyURL        string        `yaml:"proxy_url"`
	Timeout         time.Duration `yaml:"timeout"`
	RatePerSecond   float64       `yaml:"rate_per_second"`
	Burst           int           `yaml:"burst"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	UserAgent       string        `yaml:"user_agent"`
	// PlaceholderPages lists page ids that get placeholder content when
	// their sheet rows are missing.
	PlaceholderPages []string `yaml:"placeholder_pages"`
}

// CacheConfig tunes the redis HTTP response cache.
type CacheConfig struct {
	TTL     time.Duration `yaml:"ttl"`
	Disable bool          `yaml:"disable"`
}

// rawAppConfig mirrors AppConfig with pointers where zero is a meaningful
// value that must not be mistaken for "unset".
type rawAppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"`
	DSN            string                `yaml:"dsn"`
	RedisURL       string                `yaml:"redis_url"`
	Database       DatabaseRuntimeConfig `yaml:"database"`
	Redis          RedisRuntimeConfig    `yaml:"redis"`
	Paths          RuntimePathsConfig    `yaml:"paths"`
	LogDir         string                `yaml:"log_dir"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	Timezone       string                `yaml:"timezone"`
	Sheets         rawSheetsConfig       `yaml:"sheets"`
	Cache          rawCacheConfig        `yaml:"cache"`
}

type rawSheetsConfig struct {
	DefaultURL       string         `yaml:"default_url"`
	Source           string         `yaml:"source"`
	APIKey           string         `yaml:"api_key"`
	WorkbookPath     string         `yaml:"workbook_path"`
	ProxyURL         string         `yaml:"proxy_url"`
	Timeout          *time.Duration `yaml:"timeout"`
	RatePerSecond    *float64       `yaml:"rate_per_second"`
	Burst            *int           `yaml:"burst"`
	RefreshInterval  *time.Duration `yaml:"refresh_interval"`
	UserAgent        string         `yaml:"user_agent"`
	PlaceholderPages []string       `yaml:"placeholder_pages"`
}

type rawCacheConfig struct {
	TTL     *time.Duration `yaml:"ttl"`
	Disable bool           `yaml:"disable"`
}
