package models

import (
	"fmt"
	"time"
)

// Sentinels used when text extraction cannot resolve a field.
const (
	UnknownCondition = "Unknown Condition"
	UnknownDate      = "Unknown Date"
)

// LastSoldRecord is one observed sale captured from a monitored product page.
// Timestamp is the capture instant, not the sale instant, and is excluded
// from identity.
type LastSoldRecord struct {
	Title     string
	Price     float64
	Condition string
	SoldDate  string
	URL       string
	Timestamp time.Time
}

func NewLastSoldRecord(title string, price float64, condition, soldDate, url string) LastSoldRecord {
	return LastSoldRecord{
		Title:     title,
		Price:     price,
		Condition: condition,
		SoldDate:  soldDate,
		URL:       url,
		Timestamp: time.Now(),
	}
}

// Equal reports whether two records describe the same observed sale.
func (r LastSoldRecord) Equal(other LastSoldRecord) bool {
	return r.Title == other.Title &&
		r.Price == other.Price &&
		r.Condition == other.Condition &&
		r.SoldDate == other.SoldDate &&
		r.URL == other.URL
}

// ToMap renders the record as the flat mapping stored in the data file.
func (r LastSoldRecord) ToMap() map[string]any {
	return map[string]any{
		"title":     r.Title,
		"price":     r.Price,
		"condition": r.Condition,
		"sold_date": r.SoldDate,
		"url":       r.URL,
		"timestamp": r.Timestamp.Format(time.RFC3339Nano),
	}
}

// RecordFromMap rebuilds a record from its stored mapping. Missing or
// mistyped fields are an error; callers decide whether that poisons the
// whole file.
func RecordFromMap(data map[string]any) (LastSoldRecord, error) {
	var rec LastSoldRecord
	var err error

	if rec.Title, err = stringField(data, "title"); err != nil {
		return LastSoldRecord{}, err
	}
	if rec.Price, err = numberField(data, "price"); err != nil {
		return LastSoldRecord{}, err
	}
	if rec.Condition, err = stringField(data, "condition"); err != nil {
		return LastSoldRecord{}, err
	}
	if rec.SoldDate, err = stringField(data, "sold_date"); err != nil {
		return LastSoldRecord{}, err
	}
	if rec.URL, err = stringField(data, "url"); err != nil {
		return LastSoldRecord{}, err
	}

	ts, err := stringField(data, "timestamp")
	if err != nil {
		return LastSoldRecord{}, err
	}
	rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return LastSoldRecord{}, fmt.Errorf("invalid timestamp %q: %w", ts, err)
	}

	return rec, nil
}

func stringField(data map[string]any, key string) (string, error) {
	v, ok := data[key]
	if !ok {
		return "", fmt.Errorf("missing field %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q is not a string", key)
	}
	return s, nil
}

func numberField(data map[string]any, key string) (float64, error) {
	v, ok := data[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("field %q is not a number", key)
	}
}
