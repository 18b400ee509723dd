package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"tcg_monitor/models"
)

// RecordMap is the last-known state: monitored page URL -> records in
// source page order.
type RecordMap map[string][]models.LastSoldRecord

// JSONStore persists the record map to a single flat JSON file. Saves are
// whole-file replacements, never merges.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the data file. A missing, unreadable or corrupt file is a
// fresh start: monitoring must not die because the state file went bad, so
// all three yield an empty map without error.
func (s *JSONStore) Load() (RecordMap, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Unreadable data file %s, starting fresh: %v", s.path, err)
		}
		return RecordMap{}, nil
	}

	var raw map[string][]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("Corrupt data file %s, starting fresh: %v", s.path, err)
		return RecordMap{}, nil
	}

	records := make(RecordMap, len(raw))
	for url, entries := range raw {
		seq := make([]models.LastSoldRecord, 0, len(entries))
		for _, entry := range entries {
			rec, err := models.RecordFromMap(entry)
			if err != nil {
				log.Printf("Corrupt record in %s, starting fresh: %v", s.path, err)
				return RecordMap{}, nil
			}
			seq = append(seq, rec)
		}
		records[url] = seq
	}

	return records, nil
}

// Save writes the whole map atomically: a temp file in the same directory
// is renamed over the old one, so a crash mid-write leaves the previous
// save intact.
func (s *JSONStore) Save(records RecordMap) error {
	raw := make(map[string][]map[string]any, len(records))
	for url, seq := range records {
		entries := make([]map[string]any, 0, len(seq))
		for _, rec := range seq {
			entries = append(entries, rec.ToMap())
		}
		raw[url] = entries
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	return nil
}
