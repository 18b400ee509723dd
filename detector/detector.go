// Package detector decides which freshly scraped records are new sales.
package detector

import (
	"tcg_monitor/identity"
	"tcg_monitor/models"
)

// Compare treats previous as the set of known sales and reports every
// current record not in it, in current order. An empty previous set means a
// first-ever scrape: every record on the page is reported so the operator
// learns about all current state. Duplicates in current that are novel each
// produce their own change.
func Compare(previous, current []models.LastSoldRecord) []models.Change {
	known := make(map[string]struct{}, len(previous))
	for _, rec := range previous {
		known[identity.Fingerprint(rec)] = struct{}{}
	}

	var changes []models.Change
	for _, rec := range current {
		if _, ok := known[identity.Fingerprint(rec)]; ok {
			continue
		}
		changes = append(changes, models.NewSaleChange(rec))
	}

	return changes
}
