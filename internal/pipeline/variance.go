package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"seoulmarket/server/internal/models"
)

// VariancePolicy decides how a missing previous-term value is treated.
type VariancePolicy string

const (
	// StrictVariance leaves the delta undefined when the previous value is
	// absent or zero, so first-time filings never compare against nothing.
	StrictVariance VariancePolicy = "strict"
	// ZeroBaselineVariance treats an absent previous value as zero.
	ZeroBaselineVariance VariancePolicy = "zero-baseline"
)

func ParseVariancePolicy(s string) (VariancePolicy, error) {
	switch VariancePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrictVariance:
		return StrictVariance, nil
	case ZeroBaselineVariance, "zero":
		return ZeroBaselineVariance, nil
	}
	return "", fmt.Errorf("unknown variance policy %q", s)
}

// ComputeVariance derives rent and deposit deltas for every record.
func ComputeVariance(records []models.RentalRecord, policy VariancePolicy) []models.RentalVariance {
	out := make([]models.RentalVariance, len(records))
	for i, r := range records {
		out[i] = models.RentalVariance{
			RentalRecord: r,
			RentDelta:    delta(r.Rent, r.PreviousRent, policy),
			DepositDelta: delta(r.Deposit, r.PreviousDeposit, policy),
		}
	}
	return out
}

func delta(current int64, previous *int64, policy VariancePolicy) *int64 {
	var base int64
	if previous != nil {
		base = *previous
	}
	if policy != ZeroBaselineVariance && base == 0 {
		return nil
	}
	d := current - base
	return &d
}

// DistrictVariance sums the defined deltas per district, sorted by district.
func DistrictVariance(rows []models.RentalVariance) []models.DistrictVariance {
	index := make(map[string]int)
	out := make([]models.DistrictVariance, 0)
	for _, r := range rows {
		i, ok := index[r.District]
		if !ok {
			i = len(out)
			index[r.District] = i
			out = append(out, models.DistrictVariance{District: r.District})
		}
		if r.RentDelta != nil {
			out[i].RentDelta += *r.RentDelta
			out[i].RentRows++
		}
		if r.DepositDelta != nil {
			out[i].DepositDelta += *r.DepositDelta
			out[i].DepositRows++
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].District < out[j].District
	})
	return out
}
