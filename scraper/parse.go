package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"tcg_monitor/models"
	"tcg_monitor/textparse"
)

// Condition stamped on records scraped from the spotlight price when the
// page renders no sales table.
const conditionMostRecentSale = "Most Recent Sale"

var titleSelectors = []string{
	`h1[data-testid="lblProductDetailsProductName"]`,
	`h1.product-details__name`,
	`h1`,
}

var salesRowSelectors = []string{
	`table.latest-sales-table tbody tr`,
	`.latest-sales__table tr`,
	`.modal__activator-sales tr`,
}

var spotlightSelectors = []string{
	`.spotlight__price`,
	`.price-points__upper__header`,
	`section.latest-sales .sales-data`,
}

// parseLastSold turns rendered product-page HTML into last-sold records.
// Each sales-table row yields one record; its text fragments go through the
// textparse heuristics rather than any per-cell assumptions, because the
// markup shifts between page variants.
func parseLastSold(html, pageURL string) ([]models.LastSoldRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	title := extractTitle(doc)

	var records []models.LastSoldRecord
	for _, selector := range salesRowSelectors {
		doc.Find(selector).Each(func(_ int, row *goquery.Selection) {
			text := normalizeSpace(row.Text())
			price := textparse.ExtractPrice(text)
			if price <= 0 {
				return
			}
			records = append(records, models.NewLastSoldRecord(
				title,
				price,
				textparse.ExtractCondition(text),
				textparse.ExtractDate(text),
				pageURL,
			))
		})
		if len(records) > 0 {
			return records, nil
		}
	}

	// No sales table rendered; fall back to the spotlight price so a page
	// with only a "most recent sale" figure still produces a record.
	for _, selector := range spotlightSelectors {
		var found bool
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := normalizeSpace(sel.Text())
			price := textparse.ExtractPrice(text)
			if price <= 0 {
				return true
			}
			records = append(records, models.NewLastSoldRecord(
				title,
				price,
				conditionMostRecentSale,
				textparse.ExtractDate(text),
				pageURL,
			))
			found = true
			return false
		})
		if found {
			break
		}
	}

	return records, nil
}

func extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			if title := normalizeSpace(sel.Text()); title != "" {
				return title
			}
		}
	}
	return ""
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
