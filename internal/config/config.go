package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"weeknab/internal/core"
)

// OutputFormat selects how the finished report is emitted.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatCSV     OutputFormat = "csv"
	FormatHTML    OutputFormat = "html"
	FormatSheets  OutputFormat = "sheets"
)

// Config is the full run configuration: the report settings from the JSON
// config file plus the infrastructure settings from the environment.
type Config struct {
	// Report
	BudgetName     string         `json:"budget_name"`
	AccessToken    string         `json:"access_token"`
	WatchList      core.WatchList `json:"watch_list"`
	ResolutionDate core.Date      `json:"resolution_date"` // zero = today
	ShowAllRows    bool           `json:"show_all_rows"`
	OutputFormat   OutputFormat   `json:"output_format"`
	UngroupedLabel string         `json:"ungrouped_label"` // empty drops group-less categories from totals

	// History database (optional)
	SQLiteDBPath string `json:"-"`

	// AMQP report events (optional)
	AMQPURL      string `json:"-"`
	AMQPExchange string `json:"-"`
	AMQPQueue    string `json:"-"`

	// Google Sheets export (required only for the sheets format)
	GoogleSpreadsheetID string `json:"-"`
	GoogleSheetName     string `json:"-"`

	// Server
	Port string `json:"-"`
}

// Load reads the JSON config file and applies environment overrides.
// Environment always wins so tokens can stay out of the file.
func Load(path string) (*Config, error) {
	cfg := &Config{
		OutputFormat: FormatConsole,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadFromEnv builds a config without a file, for deployments that
// configure everything through the environment.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		OutputFormat: FormatConsole,
	}
	if rawWatchList := os.Getenv("WEEKNAB_WATCH_LIST"); rawWatchList != "" {
		if err := json.Unmarshal([]byte(rawWatchList), &cfg.WatchList); err != nil {
			return nil, fmt.Errorf("parse WEEKNAB_WATCH_LIST: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.BudgetName = getEnv("WEEKNAB_BUDGET_NAME", c.BudgetName)
	c.AccessToken = getEnv("YNAB_ACCESS_TOKEN", c.AccessToken)
	c.OutputFormat = OutputFormat(getEnv("WEEKNAB_OUTPUT_FORMAT", string(c.OutputFormat)))
	c.UngroupedLabel = getEnv("WEEKNAB_UNGROUPED_LABEL", c.UngroupedLabel)
	c.ShowAllRows = getEnvBool("WEEKNAB_SHOW_ALL_ROWS", c.ShowAllRows)

	c.SQLiteDBPath = getEnv("WEEKNAB_DB_PATH", c.SQLiteDBPath)

	c.AMQPURL = getEnv("AMQP_URL", c.AMQPURL)
	c.AMQPExchange = getEnv("AMQP_EXCHANGE", "weeknab")
	c.AMQPQueue = getEnv("AMQP_QUEUE", "report_events")

	c.GoogleSpreadsheetID = getEnv("GOOGLE_SPREADSHEET_ID", c.GoogleSpreadsheetID)
	c.GoogleSheetName = getEnv("GOOGLE_SHEET_NAME", "Weekly Report")

	c.Port = getEnv("PORT", "8082")
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.BudgetName) == "" {
		errs = append(errs, "budget name cannot be empty")
	}
	if strings.TrimSpace(c.AccessToken) == "" {
		errs = append(errs, "access token cannot be empty (set YNAB_ACCESS_TOKEN)")
	}
	if len(c.WatchList) == 0 {
		errs = append(errs, "watch list cannot be empty: at least one category group is required")
	}

	switch c.OutputFormat {
	case FormatConsole, FormatCSV, FormatHTML, FormatSheets:
	default:
		errs = append(errs, fmt.Sprintf("invalid output format '%s': must be one of [console csv html sheets]", c.OutputFormat))
	}

	if c.OutputFormat == FormatSheets && c.GoogleSpreadsheetID == "" {
		errs = append(errs, "Google Spreadsheet ID is required for the sheets output format")
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
