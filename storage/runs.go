package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"tcg_monitor/models"
)

// RunStore keeps operational history of monitoring cycles in SQLite. This is
// observability data only; the record state itself lives in the JSONStore.
type RunStore struct {
	db *sql.DB
}

func NewRunStore(dbPath string) (*RunStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	store := &RunStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *RunStore) Close() error {
	return s.db.Close()
}

func (s *RunStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS monitor_runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		status TEXT NOT NULL,
		pages_checked INTEGER DEFAULT 0,
		records_found INTEGER DEFAULT 0,
		new_sales INTEGER DEFAULT 0,
		errors_count INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS monitor_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		timestamp DATETIME NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		page_url TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_monitor_logs_run ON monitor_logs(run_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *RunStore) CreateRun(run *models.MonitorRun) error {
	_, err := s.db.Exec(`
		INSERT INTO monitor_runs (id, started_at, status)
		VALUES (?, ?, ?)`,
		run.ID, run.StartedAt, run.Status)
	return err
}

func (s *RunStore) UpdateRun(run *models.MonitorRun) error {
	_, err := s.db.Exec(`
		UPDATE monitor_runs
		SET finished_at = ?, status = ?, pages_checked = ?,
		    records_found = ?, new_sales = ?, errors_count = ?
		WHERE id = ?`,
		run.FinishedAt, run.Status, run.PagesChecked,
		run.RecordsFound, run.NewSales, run.ErrorsCount, run.ID)
	return err
}

func (s *RunStore) Log(runID string, level models.LogLevel, message, pageURL string) error {
	_, err := s.db.Exec(`
		INSERT INTO monitor_logs (run_id, timestamp, level, message, page_url)
		VALUES (?, ?, ?, ?, ?)`,
		runID, time.Now(), level, message, pageURL)
	return err
}

func (s *RunStore) RecentRuns(limit int) ([]models.MonitorRun, error) {
	rows, err := s.db.Query(`
		SELECT id, started_at, finished_at, status, pages_checked,
		       records_found, new_sales, errors_count
		FROM monitor_runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.MonitorRun
	for rows.Next() {
		var run models.MonitorRun
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.Status,
			&run.PagesChecked, &run.RecordsFound, &run.NewSales, &run.ErrorsCount); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *RunStore) RunLogs(runID string) ([]models.MonitorLog, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, timestamp, level, message, page_url
		FROM monitor_logs
		WHERE run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.MonitorLog
	for rows.Next() {
		var entry models.MonitorLog
		if err := rows.Scan(&entry.ID, &entry.RunID, &entry.Timestamp,
			&entry.Level, &entry.Message, &entry.PageURL); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
