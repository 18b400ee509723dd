// Package monitor orchestrates one polling cycle: fetch each configured
// page, extract records, diff against last-known state, persist, alert.
package monitor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"tcg_monitor/config"
	"tcg_monitor/detector"
	"tcg_monitor/models"
	"tcg_monitor/storage"
)

// Fetcher is the browser collaborator. It is called once per URL per cycle
// and owns its own navigation timeout.
type Fetcher interface {
	ScrapeLastSold(ctx context.Context, pageURL string) ([]models.LastSoldRecord, error)
	Close()
}

// Notifier delivers alerts best-effort; implementations must never panic or
// block the loop on delivery failure.
type Notifier interface {
	SendAlert(message string)
	SendStartup(pages []string, interval string)
}

type Monitor struct {
	cfg      *config.Config
	fetcher  Fetcher
	store    *storage.JSONStore
	runs     *storage.RunStore
	notifier Notifier

	records storage.RecordMap
}

func New(cfg *config.Config, fetcher Fetcher, store *storage.JSONStore, runs *storage.RunStore, notifier Notifier) *Monitor {
	return &Monitor{
		cfg:      cfg,
		fetcher:  fetcher,
		store:    store,
		runs:     runs,
		notifier: notifier,
		records:  storage.RecordMap{},
	}
}

// LoadState reads the last-known records from the data file. Called once at
// startup; a missing or corrupt file yields empty state, never an error.
func (m *Monitor) LoadState() error {
	records, err := m.store.Load()
	if err != nil {
		return err
	}
	m.records = records
	log.Printf("Loaded previous records for %d pages", len(records))
	return nil
}

// Announce sends the startup notification listing the monitored pages.
// The interval is worded in whole minutes the way the webhook audience
// reads it, not as a Go duration.
func (m *Monitor) Announce() {
	minutes := int(m.cfg.Monitoring.Interval / time.Minute)
	m.notifier.SendStartup(m.cfg.Pages, fmt.Sprintf("%d minutes", minutes))
}

// RunCycle performs one full pass over all configured pages followed by a
// single batch persist. A fetch or extraction failure for one URL is logged
// and skipped, leaving that URL's stored records untouched. Only a failed
// persist makes the cycle itself fail: an operator must be able to notice
// that state is no longer durable.
func (m *Monitor) RunCycle(ctx context.Context) error {
	run := &models.MonitorRun{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Status:    models.RunStatusRunning,
	}
	m.recordRun(run, true)
	log.Printf("Cycle %s: checking %d pages", run.ID[:8], len(m.cfg.Pages))

	for _, pageURL := range m.cfg.Pages {
		select {
		case <-ctx.Done():
			log.Printf("Cycle %s: cancelled", run.ID[:8])
			run.Status = models.RunStatusCompleted
			m.finishRun(run)
			return ctx.Err()
		default:
		}

		if err := m.checkPage(ctx, run, pageURL); err != nil {
			m.log(run, models.LogLevelError, fmt.Sprintf("Check failed: %v", err), pageURL)
			run.ErrorsCount++
			continue
		}
		run.PagesChecked++
	}

	if err := m.store.Save(m.records); err != nil {
		run.Status = models.RunStatusFailed
		run.ErrorsCount++
		m.finishRun(run)
		return fmt.Errorf("failed to persist records: %w", err)
	}

	run.Status = models.RunStatusCompleted
	m.finishRun(run)
	log.Printf("Cycle %s: %d pages, %d records, %d new sales, %d errors",
		run.ID[:8], run.PagesChecked, run.RecordsFound, run.NewSales, run.ErrorsCount)
	return nil
}

// checkPage fetches one page and stages its scraped sequence as the new
// state for that URL. An empty scrape is treated like a fetch failure so a
// rendering hiccup cannot wipe known records.
func (m *Monitor) checkPage(ctx context.Context, run *models.MonitorRun, pageURL string) error {
	current, err := m.fetcher.ScrapeLastSold(ctx, pageURL)
	if err != nil {
		return err
	}
	if len(current) == 0 {
		return fmt.Errorf("no records extracted")
	}

	run.RecordsFound += len(current)

	changes := detector.Compare(m.records[pageURL], current)
	for _, change := range changes {
		run.NewSales++
		m.log(run, models.LogLevelInfo, change.Message, pageURL)
		if m.shouldAlert(change) {
			m.notifier.SendAlert(change.Message)
		}
	}

	// Replace wholesale, never merge; the data file holds last-known
	// state, not history.
	m.records[pageURL] = current
	return nil
}

// Condition quality, best first. Labels outside this table (foil tags,
// "Most Recent Sale", unknown) cannot be ranked and are never filtered out.
var conditionRank = map[string]int{
	"Mint": 5,
	"Near Mint": 4, "NM": 4,
	"Lightly Played": 3, "LP": 3,
	"Moderately Played": 2, "MP": 2,
	"Heavily Played": 1, "HP": 1,
	"Damaged": 0, "DMG": 0,
}

func (m *Monitor) shouldAlert(change models.Change) bool {
	if m.cfg.Alerts.AlertAllNewSales {
		return true
	}
	if change.Record.Price > m.cfg.Monitoring.MaxAlertPrice {
		return false
	}
	return meetsCondition(change.Record.Condition, m.cfg.Monitoring.MinCondition)
}

func meetsCondition(condition, minimum string) bool {
	rank, ok := conditionRank[condition]
	if !ok {
		return true
	}
	minRank, ok := conditionRank[minimum]
	if !ok {
		return true
	}
	return rank >= minRank
}

// Close releases the browser session.
func (m *Monitor) Close() {
	m.fetcher.Close()
}

func (m *Monitor) recordRun(run *models.MonitorRun, create bool) {
	if m.runs == nil {
		return
	}
	var err error
	if create {
		err = m.runs.CreateRun(run)
	} else {
		err = m.runs.UpdateRun(run)
	}
	if err != nil {
		log.Printf("Failed to record run %s: %v", run.ID[:8], err)
	}
}

func (m *Monitor) finishRun(run *models.MonitorRun) {
	now := time.Now()
	run.FinishedAt = &now
	m.recordRun(run, false)
}

func (m *Monitor) log(run *models.MonitorRun, level models.LogLevel, message, pageURL string) {
	log.Printf("[%s] %s: %s", level, pageURL, message)
	if m.runs != nil {
		if err := m.runs.Log(run.ID, level, message, pageURL); err != nil {
			log.Printf("Failed to record log line: %v", err)
		}
	}
}
