package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
tcgplayer_pages_to_monitor:
  - "https://www.tcgplayer.com/product/649586/pokemon-pikachu"
  - "https://www.tcgplayer.com/product/593355/pokemon-etb"

monitoring:
  interval_seconds: 120
  headless_mode: false
  max_price_alert: 50.0
  min_condition: "Near Mint"

alerts:
  discord_webhook_url: "https://discord.com/api/webhooks/123/abc"
  alert_all_new_sales: false

graph_capture:
  enabled: true
  cron: "30 * * * *"
  output_dir: graphs

storage:
  data_file: data.json
  log_file: test.log
  runs_db: runs.db
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Full(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(cfg.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(cfg.Pages))
	}
	if cfg.Monitoring.Interval != 120*time.Second {
		t.Fatalf("unexpected interval %s", cfg.Monitoring.Interval)
	}
	if cfg.Monitoring.Headless {
		t.Fatal("expected headless disabled")
	}
	if cfg.Monitoring.MaxAlertPrice != 50.0 {
		t.Fatalf("unexpected max alert price %v", cfg.Monitoring.MaxAlertPrice)
	}
	if cfg.Monitoring.MinCondition != "Near Mint" {
		t.Fatalf("unexpected min condition %q", cfg.Monitoring.MinCondition)
	}
	if cfg.Alerts.DiscordWebhookURL != "https://discord.com/api/webhooks/123/abc" {
		t.Fatalf("unexpected webhook %q", cfg.Alerts.DiscordWebhookURL)
	}
	if cfg.Alerts.AlertAllNewSales {
		t.Fatal("expected alert_all_new_sales false")
	}
	if !cfg.Graphs.Enabled || cfg.Graphs.Cron != "30 * * * *" || cfg.Graphs.OutputDir != "graphs" {
		t.Fatalf("unexpected graph config %+v", cfg.Graphs)
	}
	if cfg.Storage.DataFile != "data.json" || cfg.Storage.LogFile != "test.log" || cfg.Storage.RunsDB != "runs.db" {
		t.Fatalf("unexpected storage config %+v", cfg.Storage)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "tcgplayer_pages_to_monitor: []\n"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(cfg.Pages) != 0 {
		t.Fatal("empty page list must be legal")
	}
	if cfg.Monitoring.Interval != 60*time.Second {
		t.Fatalf("unexpected default interval %s", cfg.Monitoring.Interval)
	}
	if !cfg.Monitoring.Headless {
		t.Fatal("expected headless by default")
	}
	if cfg.Monitoring.MaxAlertPrice != 100.0 {
		t.Fatalf("unexpected default max alert price %v", cfg.Monitoring.MaxAlertPrice)
	}
	if cfg.Monitoring.MinCondition != "Lightly Played" {
		t.Fatalf("unexpected default min condition %q", cfg.Monitoring.MinCondition)
	}
	if !cfg.Alerts.AlertAllNewSales {
		t.Fatal("expected alert_all_new_sales true by default")
	}
	if cfg.Storage.DataFile != "card_data.json" {
		t.Fatalf("unexpected default data file %q", cfg.Storage.DataFile)
	}
	if cfg.Storage.LogFile != "monitor.log" {
		t.Fatalf("unexpected default log file %q", cfg.Storage.LogFile)
	}
	if cfg.Graphs.Enabled {
		t.Fatal("graph capture must be off by default")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "monitoring: [not: a: mapping")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/999/zzz")
	t.Setenv("MONITOR_INTERVAL", "5m")
	t.Setenv("DATA_FILE", "/tmp/override.json")

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Alerts.DiscordWebhookURL != "https://discord.com/api/webhooks/999/zzz" {
		t.Fatalf("env webhook override not applied: %q", cfg.Alerts.DiscordWebhookURL)
	}
	if cfg.Monitoring.Interval != 5*time.Minute {
		t.Fatalf("env interval override not applied: %s", cfg.Monitoring.Interval)
	}
	if cfg.Storage.DataFile != "/tmp/override.json" {
		t.Fatalf("env data file override not applied: %q", cfg.Storage.DataFile)
	}
}
