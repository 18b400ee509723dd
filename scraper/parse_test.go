package scraper

import (
	"os"
	"path/filepath"
	"testing"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return string(data)
}

func TestParseLastSold_SalesTable(t *testing.T) {
	const pageURL = "https://www.tcgplayer.com/product/649586/pokemon-pikachu"
	html := loadFixture(t, "product_basic.html")

	records, err := parseLastSold(html, pageURL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	first := records[0]
	if first.Title != "Pikachu - 020/M-P (Promotional Cards)" {
		t.Fatalf("unexpected title %q", first.Title)
	}
	if first.Price != 25.99 {
		t.Fatalf("unexpected price %v", first.Price)
	}
	if first.Condition != "Near Mint" {
		t.Fatalf("unexpected condition %q", first.Condition)
	}
	if first.SoldDate != "01/15/2024" {
		t.Fatalf("unexpected sold date %q", first.SoldDate)
	}
	if first.URL != pageURL {
		t.Fatalf("unexpected URL %q", first.URL)
	}
	if first.Timestamp.IsZero() {
		t.Fatal("expected capture timestamp")
	}

	if records[1].Price != 1500.00 || records[1].Condition != "Lightly Played" {
		t.Fatalf("unexpected second record %+v", records[1])
	}
	if records[2].Price != 18.00 || records[2].Condition != "Japanese" {
		t.Fatalf("unexpected third record %+v", records[2])
	}
}

// Rows preserve the order the page renders them in.
func TestParseLastSold_SourceOrder(t *testing.T) {
	records, err := parseLastSold(loadFixture(t, "product_basic.html"), "u")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	dates := []string{"01/15/2024", "01/14/2024", "01/12/2024"}
	for i, want := range dates {
		if records[i].SoldDate != want {
			t.Fatalf("record %d out of source order: %q", i, records[i].SoldDate)
		}
	}
}

// Without a sales table the spotlight price still yields one record.
func TestParseLastSold_SpotlightFallback(t *testing.T) {
	records, err := parseLastSold(loadFixture(t, "product_spotlight.html"), "u")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Title != "Prismatic Evolutions Elite Trainer Box" {
		t.Fatalf("unexpected title %q", rec.Title)
	}
	if rec.Price != 89.95 {
		t.Fatalf("unexpected price %v", rec.Price)
	}
	if rec.Condition != "Most Recent Sale" {
		t.Fatalf("unexpected condition %q", rec.Condition)
	}
	if rec.SoldDate != "Unknown Date" {
		t.Fatalf("unexpected sold date %q", rec.SoldDate)
	}
}

func TestParseLastSold_NoSalesData(t *testing.T) {
	records, err := parseLastSold(loadFixture(t, "product_empty.html"), "u")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestSlugFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.tcgplayer.com/product/649586/pokemon-japan-pikachu", "pokemon_japan_pikachu"},
		{"https://www.tcgplayer.com/product/593355/pokemon-etb?page=1", "pokemon_etb"},
		{"https://www.tcgplayer.com/search", "unknown_card"},
		{"https://www.tcgplayer.com/product/123", "unknown_card"},
	}

	for _, tc := range cases {
		if got := slugFromURL(tc.url); got != tc.want {
			t.Fatalf("slugFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
