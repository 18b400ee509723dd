package identity

import (
	"testing"
	"time"

	"tcg_monitor/models"
)

func TestFingerprint_IgnoresTimestamp(t *testing.T) {
	a := models.NewLastSoldRecord("Card", 10.0, "NM", "01/01/2024", "https://example.com/c")
	b := a
	b.Timestamp = a.Timestamp.Add(48 * time.Hour)

	if Fingerprint(a) != Fingerprint(b) {
		t.Fatal("fingerprints of the same sale must collide regardless of capture time")
	}
}

func TestFingerprint_SensitiveToIdentityFields(t *testing.T) {
	base := models.NewLastSoldRecord("Card", 10.0, "NM", "01/01/2024", "https://example.com/c")

	mutate := []func(r *models.LastSoldRecord){
		func(r *models.LastSoldRecord) { r.Title = "Other" },
		func(r *models.LastSoldRecord) { r.Price = 12.0 },
		func(r *models.LastSoldRecord) { r.Condition = "LP" },
		func(r *models.LastSoldRecord) { r.SoldDate = "01/02/2024" },
		func(r *models.LastSoldRecord) { r.URL = "https://example.com/d" },
	}

	for i, fn := range mutate {
		rec := base
		fn(&rec)
		if Fingerprint(rec) == Fingerprint(base) {
			t.Fatalf("mutation %d did not change fingerprint", i)
		}
	}
}
