package pipeline

import (
	"sort"

	"seoulmarket/server/internal/models"
)

// TopN returns the first n records ordered by amount, descending unless
// ascending is set. Equal amounts keep their source order. The input slice
// is left untouched.
func TopN(records []models.SaleRecord, n int, ascending bool) []models.SaleRecord {
	if n <= 0 {
		return []models.SaleRecord{}
	}

	sorted := make([]models.SaleRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return sorted[i].Amount < sorted[j].Amount
		}
		return sorted[i].Amount > sorted[j].Amount
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
