package config

import (
	"strings"
	"time"
)

func normalizeDatabaseConfig(cfg DatabaseRuntimeConfig) DatabaseRuntimeConfig {
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.User = strings.TrimSpace(cfg.User)
	cfg.Password = strings.TrimSpace(cfg.Password)
	cfg.Name = strings.TrimSpace(cfg.Name)
	cfg.Charset = strings.TrimSpace(cfg.Charset)
	cfg.Loc = strings.TrimSpace(cfg.Loc)

	if cfg.Host == "" {
		return cfg
	}
	if cfg.Port == 0 {
		cfg.Port = defaultDBPort
	}
	if cfg.Charset == "" {
		cfg.Charset = defaultDBCharset
	}
	if cfg.Loc == "" {
		cfg.Loc = defaultDBLoc
	}
	cfg.Params = copyStringMap(cfg.Params)
	return cfg
}

func normalizeRedisConfig(cfg RedisRuntimeConfig) RedisRuntimeConfig {
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.Username = strings.TrimSpace(cfg.Username)
	cfg.Password = strings.TrimSpace(cfg.Password)
	if cfg.Host != "" && cfg.Port == 0 {
		cfg.Port = defaultRedisPort
	}
	if cfg.DB < 0 {
		cfg.DB = 0
	}
	return cfg
}

func normalizeRedisRawURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "redis://") || strings.HasPrefix(trimmed, "rediss://") {
		return trimmed
	}
	return "redis://" + trimmed
}

func normalizeSheetsConfig(raw rawSheetsConfig) SheetsConfig {
	out := SheetsConfig{
		DefaultURL:      strings.TrimSpace(raw.DefaultURL),
		Source:          strings.ToLower(strings.TrimSpace(raw.Source)),
		APIKey:          strings.TrimSpace(raw.APIKey),
		WorkbookPath:    strings.TrimSpace(raw.WorkbookPath),
		ProxyURL:        strings.TrimRight(strings.TrimSpace(raw.ProxyURL), "/"),
		Timeout:         durationOr(raw.Timeout, defaultSheetsTimeout),
		RatePerSecond:   defaultRatePerSecond,
		Burst:           defaultBurst,
		RefreshInterval: durationOr(raw.RefreshInterval, defaultRefreshInterval),
		UserAgent:       strings.TrimSpace(raw.UserAgent),
	}
	if out.DefaultURL == "" {
		out.DefaultURL = DefaultSheetURL
	}
	if out.Source == "" {
		out.Source = defaultSource
	}
	if raw.RatePerSecond != nil {
		out.RatePerSecond = *raw.RatePerSecond
	}
	if raw.Burst != nil {
		out.Burst = *raw.Burst
	}
	if out.Timeout <= 0 {
		out.Timeout = defaultSheetsTimeout
	}
	if raw.PlaceholderPages != nil {
		out.PlaceholderPages = normalizeList(raw.PlaceholderPages)
	} else {
		out.PlaceholderPages = []string{"1"}
	}
	return out
}

func normalizeCacheConfig(raw rawCacheConfig) CacheConfig {
	return CacheConfig{
		TTL:     durationOr(raw.TTL, defaultCacheTTL),
		Disable: raw.Disable,
	}
}

func durationOr(v *time.Duration, fallback time.Duration) time.Duration {
	if v == nil {
		return fallback
	}
	return *v
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}

func normalizeRuntimePaths(paths RuntimePathsConfig) RuntimePathsConfig {
	paths.Logs = strings.TrimSpace(paths.Logs)
	return paths
}

func copyStringMap(input map[string]string) map[string]string {
	if input == nil {
		return nil
	}
	out := make(map[string]string, len(input))
	for key, value := range input {
		k := strings.TrimSpace(key)
		v := strings.TrimSpace(value)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	return out
}
