package pipeline

import "seoulmarket/server/internal/models"

// Summarize computes count, ceiling mean, min and max of the amounts.
// An empty subset yields a Summary with HasData false.
func Summarize(records []models.SaleRecord) models.Summary {
	if len(records) == 0 {
		return models.Summary{}
	}

	s := models.Summary{
		Count:   len(records),
		Min:     records[0].Amount,
		Max:     records[0].Amount,
		HasData: true,
	}
	var sum int64
	for _, r := range records {
		sum += r.Amount
		if r.Amount < s.Min {
			s.Min = r.Amount
		}
		if r.Amount > s.Max {
			s.Max = r.Amount
		}
	}
	s.Mean = ceilMean(sum, len(records))
	return s
}

// PreviousMean is the ceiling mean of the amounts shifted down by one row,
// i.e. every row but the last. It needs at least two rows.
func PreviousMean(records []models.SaleRecord) (int64, bool) {
	if len(records) < 2 {
		return 0, false
	}
	return Summarize(records[:len(records)-1]).Mean, true
}

func ceilMean(sum int64, n int) int64 {
	d := int64(n)
	q := sum / d
	// truncation is already the ceiling for negative sums
	if sum%d != 0 && sum > 0 {
		q++
	}
	return q
}
