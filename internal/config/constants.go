package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	// DefaultSheetURL is the spreadsheet served when none is configured.
	DefaultSheetURL = "https://docs.google.com/spreadsheets/d/1IvAFeW8EUKR_kdzX9mpU9PW9BrTDAjS7pC35Gzn2_dI/edit"

	// EnvSheetURL overrides sheets.default_url.
	EnvSheetURL = "SHEETSITE_SHEET_URL"

	SourceGViz      = "gviz"
	SourceSheetsAPI = "sheetsapi"
	SourceWorkbook  = "workbook"
	SourceProxy     = "proxy"

	defaultPort            = 2333
	defaultEnv             = "development"
	defaultSource          = SourceGViz
	defaultSheetsTimeout   = 10 * time.Second
	defaultRatePerSecond   = 5.0
	defaultBurst           = 10
	defaultRefreshInterval = 5 * time.Minute
	defaultCacheTTL        = 15 * time.Second
	defaultDBPort          = 3306
	defaultDBCharset       = "utf8mb4"
	defaultDBLoc           = "Local"
	defaultRedisPort       = 6379
)
