package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"tcg_monitor/models"
)

// Fingerprint derives a stable identity key for an observed sale from the
// five fields that define it. Timestamp is deliberately left out: two
// scrapes of the same sale must collide.
func Fingerprint(rec models.LastSoldRecord) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%s",
		rec.Title,
		strconv.FormatFloat(rec.Price, 'f', -1, 64),
		rec.Condition,
		rec.SoldDate,
		rec.URL,
	)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:16])
}
