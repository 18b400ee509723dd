package models

import "time"

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// MonitorRun is the operational record of one monitoring cycle.
type MonitorRun struct {
	ID           string     `json:"id" db:"id"`
	StartedAt    time.Time  `json:"started_at" db:"started_at"`
	FinishedAt   *time.Time `json:"finished_at" db:"finished_at"`
	Status       RunStatus  `json:"status" db:"status"`
	PagesChecked int        `json:"pages_checked" db:"pages_checked"`
	RecordsFound int        `json:"records_found" db:"records_found"`
	NewSales     int        `json:"new_sales" db:"new_sales"`
	ErrorsCount  int        `json:"errors_count" db:"errors_count"`
}
