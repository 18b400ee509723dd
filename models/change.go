package models

import "fmt"

type ChangeKind string

const (
	ChangeNewSale ChangeKind = "new_sale"
)

// Change is a detected difference between a fresh scrape and stored state.
// Only new sales are detected; disappeared or mutated records are invisible.
type Change struct {
	Kind    ChangeKind
	Record  LastSoldRecord
	Message string
}

func NewSaleChange(rec LastSoldRecord) Change {
	return Change{
		Kind:   ChangeNewSale,
		Record: rec,
		Message: fmt.Sprintf("💰 New Sale: %s - $%.2f (%s) - %s",
			rec.Title, rec.Price, rec.Condition, rec.SoldDate),
	}
}
