package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yaml"

// Config is built once at startup and passed to the monitor explicitly.
// There is no cached module state; call Load again to re-read the file.
type Config struct {
	Pages      []string
	Monitoring MonitoringConfig
	Alerts     AlertsConfig
	Graphs     GraphConfig
	Storage    StorageConfig
}

type MonitoringConfig struct {
	Interval      time.Duration
	Cron          string
	Headless      bool
	MaxAlertPrice float64
	MinCondition  string
}

type AlertsConfig struct {
	DiscordWebhookURL string
	AlertAllNewSales  bool
}

type GraphConfig struct {
	Enabled   bool
	Cron      string
	OutputDir string
}

type StorageConfig struct {
	DataFile string
	LogFile  string
	RunsDB   string
}

// fileConfig mirrors the YAML layout of config.yaml.
type fileConfig struct {
	Pages      []string `yaml:"tcgplayer_pages_to_monitor"`
	Monitoring struct {
		IntervalSeconds int      `yaml:"interval_seconds"`
		Cron            string   `yaml:"cron"`
		HeadlessMode    *bool    `yaml:"headless_mode"`
		MaxPriceAlert   *float64 `yaml:"max_price_alert"`
		MinCondition    string   `yaml:"min_condition"`
	} `yaml:"monitoring"`
	Alerts struct {
		DiscordWebhookURL string `yaml:"discord_webhook_url"`
		AlertAllNewSales  *bool  `yaml:"alert_all_new_sales"`
	} `yaml:"alerts"`
	GraphCapture struct {
		Enabled   bool   `yaml:"enabled"`
		Cron      string `yaml:"cron"`
		OutputDir string `yaml:"output_dir"`
	} `yaml:"graph_capture"`
	Storage struct {
		DataFile string `yaml:"data_file"`
		LogFile  string `yaml:"log_file"`
		RunsDB   string `yaml:"runs_db"`
	} `yaml:"storage"`
}

// Load reads the YAML config file and applies environment overrides.
// An unreadable or malformed file is an error; the caller treats that as
// fatal, since polling with unresolved configuration is worse than not
// starting. An empty page list is legal and just yields no-op cycles.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	cfg := &Config{
		Pages: fc.Pages,
		Monitoring: MonitoringConfig{
			Interval:      60 * time.Second,
			Cron:          fc.Monitoring.Cron,
			Headless:      true,
			MaxAlertPrice: 100.0,
			MinCondition:  getOr(fc.Monitoring.MinCondition, "Lightly Played"),
		},
		Alerts: AlertsConfig{
			DiscordWebhookURL: fc.Alerts.DiscordWebhookURL,
			AlertAllNewSales:  true,
		},
		Graphs: GraphConfig{
			Enabled:   fc.GraphCapture.Enabled,
			Cron:      getOr(fc.GraphCapture.Cron, "0 * * * *"),
			OutputDir: getOr(fc.GraphCapture.OutputDir, "captured_graphs"),
		},
		Storage: StorageConfig{
			DataFile: getOr(fc.Storage.DataFile, "card_data.json"),
			LogFile:  getOr(fc.Storage.LogFile, "monitor.log"),
			RunsDB:   getOr(fc.Storage.RunsDB, "monitor.db"),
		},
	}

	if fc.Monitoring.IntervalSeconds > 0 {
		cfg.Monitoring.Interval = time.Duration(fc.Monitoring.IntervalSeconds) * time.Second
	}
	if fc.Monitoring.HeadlessMode != nil {
		cfg.Monitoring.Headless = *fc.Monitoring.HeadlessMode
	}
	if fc.Monitoring.MaxPriceAlert != nil {
		cfg.Monitoring.MaxAlertPrice = *fc.Monitoring.MaxPriceAlert
	}
	if fc.Alerts.AlertAllNewSales != nil {
		cfg.Alerts.AlertAllNewSales = *fc.Alerts.AlertAllNewSales
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if url := os.Getenv("DISCORD_WEBHOOK_URL"); url != "" {
		c.Alerts.DiscordWebhookURL = url
	}
	if interval := os.Getenv("MONITOR_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Monitoring.Interval = d
		}
	}
	if cron := os.Getenv("MONITOR_CRON"); cron != "" {
		c.Monitoring.Cron = cron
	}
	if headless := os.Getenv("HEADLESS_MODE"); headless != "" {
		if b, err := strconv.ParseBool(headless); err == nil {
			c.Monitoring.Headless = b
		}
	}
	if dataFile := os.Getenv("DATA_FILE"); dataFile != "" {
		c.Storage.DataFile = dataFile
	}
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		c.Storage.LogFile = logFile
	}
	if runsDB := os.Getenv("RUNS_DB"); runsDB != "" {
		c.Storage.RunsDB = runsDB
	}
}

func getOr(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}
