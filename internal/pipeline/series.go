package pipeline

import (
	"sort"

	"seoulmarket/server/internal/models"
)

// GroupByDateCount counts records per deal date in ascending date order.
func GroupByDateCount(records []models.SaleRecord) []models.DateCount {
	index := make(map[int]int)
	out := make([]models.DateCount, 0)
	for _, r := range records {
		i, ok := index[r.DealYMD]
		if !ok {
			i = len(out)
			index[r.DealYMD] = i
			out = append(out, models.DateCount{Date: r.DealDate})
		}
		out[i].Count++
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// PriceSeries lists every transaction as a (date, amount) point in date
// order. Same-day transactions keep their source order.
func PriceSeries(records []models.SaleRecord) []models.PricePoint {
	out := make([]models.PricePoint, len(records))
	for i, r := range records {
		out[i] = models.PricePoint{Date: r.DealDate, Amount: r.Amount}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// ShareByHouseType totals amounts and counts per house type. Known types come
// first in their display order, unknown labels follow in order of appearance.
func ShareByHouseType(records []models.SaleRecord) []models.HouseTypeShare {
	index := make(map[models.HouseType]int)
	out := make([]models.HouseTypeShare, 0, len(models.HouseTypes))
	for _, h := range models.HouseTypes {
		index[h] = len(out)
		out = append(out, models.HouseTypeShare{HouseType: h, Label: h.Label()})
	}
	for _, r := range records {
		i, ok := index[r.HouseType]
		if !ok {
			i = len(out)
			index[r.HouseType] = i
			out = append(out, models.HouseTypeShare{HouseType: r.HouseType, Label: r.HouseType.Label()})
		}
		out[i].Total += r.Amount
		out[i].Count++
	}

	shares := out[:0]
	for _, s := range out {
		if s.Count > 0 {
			shares = append(shares, s)
		}
	}
	return shares
}

// ContractTypeRatio counts contracts per contract type, deposit-only first.
func ContractTypeRatio(records []models.RentalRecord) []models.ContractTypeCount {
	index := map[models.ContractType]int{models.Jeonse: 0, models.Wolse: 1}
	out := []models.ContractTypeCount{
		{ContractType: models.Jeonse, Label: models.Jeonse.Label()},
		{ContractType: models.Wolse, Label: models.Wolse.Label()},
	}
	for _, r := range records {
		i, ok := index[r.ContractType]
		if !ok {
			i = len(out)
			index[r.ContractType] = i
			out = append(out, models.ContractTypeCount{ContractType: r.ContractType, Label: r.ContractType.Label()})
		}
		out[i].Count++
	}

	counts := out[:0]
	for _, c := range out {
		if c.Count > 0 {
			counts = append(counts, c)
		}
	}
	return counts
}

// DistrictPrices groups Seoul-wide sales per district, sorted by district.
func DistrictPrices(records []models.SaleRecord) []models.DistrictPrice {
	groups := make(map[string][]models.SaleRecord)
	for _, r := range records {
		groups[r.District] = append(groups[r.District], r)
	}

	out := make([]models.DistrictPrice, 0, len(groups))
	for district, rows := range groups {
		s := Summarize(rows)
		out = append(out, models.DistrictPrice{
			District: district,
			Count:    s.Count,
			Mean:     s.Mean,
			Max:      s.Max,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].District < out[j].District
	})
	return out
}

// DensityGrid bins records by construction year and amount and returns the
// non-empty cells ordered by year bin, then amount bin. Bin widths below one
// are treated as one.
func DensityGrid(records []models.SaleRecord, yearBin int, amountBin int64) []models.DensityCell {
	if yearBin < 1 {
		yearBin = 1
	}
	if amountBin < 1 {
		amountBin = 1
	}

	type key struct {
		year   int
		amount int64
	}
	counts := make(map[key]int)
	for _, r := range records {
		k := key{
			year:   floorDiv(int64(r.BuildYear), int64(yearBin)) * yearBin,
			amount: int64(floorDiv(r.Amount, amountBin)) * amountBin,
		}
		counts[k]++
	}

	out := make([]models.DensityCell, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.DensityCell{BuildYearFrom: k.year, AmountFrom: k.amount, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BuildYearFrom != out[j].BuildYearFrom {
			return out[i].BuildYearFrom < out[j].BuildYearFrom
		}
		return out[i].AmountFrom < out[j].AmountFrom
	})
	return out
}

func floorDiv(a, b int64) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return int(q)
}
