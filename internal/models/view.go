package models

import (
	"encoding/json"
	"time"
)

// Summary holds the KPI aggregates of a subset of sales. When HasData is
// false the subset was empty and Mean, Min and Max carry no meaning.
type Summary struct {
	Count   int   `json:"count"`
	Mean    int64 `json:"mean"`
	Min     int64 `json:"min"`
	Max     int64 `json:"max"`
	HasData bool  `json:"has_data"`
}

// MarshalJSON renders the price aggregates of an empty summary as null.
func (s Summary) MarshalJSON() ([]byte, error) {
	type out struct {
		Count   int    `json:"count"`
		Mean    *int64 `json:"mean"`
		Min     *int64 `json:"min"`
		Max     *int64 `json:"max"`
		HasData bool   `json:"has_data"`
	}
	o := out{Count: s.Count, HasData: s.HasData}
	if s.HasData {
		o.Mean, o.Min, o.Max = &s.Mean, &s.Min, &s.Max
	}
	return json.Marshal(o)
}

type DateCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

type PricePoint struct {
	Date   time.Time `json:"date"`
	Amount int64     `json:"amount"`
}

type HouseTypeShare struct {
	HouseType HouseType `json:"house_type"`
	Label     string    `json:"label"`
	Total     int64     `json:"total"`
	Count     int       `json:"count"`
}

type ContractTypeCount struct {
	ContractType ContractType `json:"contract_type"`
	Label        string       `json:"label"`
	Count        int          `json:"count"`
}

// DistrictVariance sums the defined rent and deposit deltas of one district.
type DistrictVariance struct {
	District     string `json:"district"`
	RentDelta    int64  `json:"rent_delta"`
	RentRows     int    `json:"rent_rows"`
	DepositDelta int64  `json:"deposit_delta"`
	DepositRows  int    `json:"deposit_rows"`
}

type DistrictPrice struct {
	District string `json:"district"`
	Count    int    `json:"count"`
	Mean     int64  `json:"mean"`
	Max      int64  `json:"max"`
}

// DensityCell counts sales whose build year falls in
// [BuildYearFrom, BuildYearFrom+yearBin) and amount in
// [AmountFrom, AmountFrom+amountBin).
type DensityCell struct {
	BuildYearFrom int   `json:"build_year_from"`
	AmountFrom    int64 `json:"amount_from"`
	Count         int   `json:"count"`
}

type Overview struct {
	Selection        Selection    `json:"selection"`
	Summary          Summary      `json:"summary"`
	MeanDelta        *int64       `json:"mean_delta"`
	ApartmentSummary Summary      `json:"apartment_summary"`
	TopApartments    []SaleRecord `json:"top_apartments"`
	BottomApartments []SaleRecord `json:"bottom_apartments"`
	Empty            bool         `json:"empty"`
}

type RatioView struct {
	Selection     Selection           `json:"selection"`
	HouseTypes    []HouseTypeShare    `json:"house_types"`
	ContractTypes []ContractTypeCount `json:"contract_types"`
	Variance      []DistrictVariance  `json:"variance"`
	Empty         bool                `json:"empty"`
}

type TrendSeries struct {
	HouseType HouseType    `json:"house_type"`
	Label     string       `json:"label"`
	Prices    []PricePoint `json:"prices"`
	Counts    []DateCount  `json:"counts"`
}

type TrendView struct {
	Selection Selection     `json:"selection"`
	Series    []TrendSeries `json:"series"`
	Empty     bool          `json:"empty"`
}

type CorrelationView struct {
	Selection Selection     `json:"selection"`
	YearBin   int           `json:"year_bin"`
	AmountBin int64         `json:"amount_bin"`
	Cells     []DensityCell `json:"cells"`
	Empty     bool          `json:"empty"`
}

type SeoulView struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	HouseType HouseType       `json:"house_type"`
	Districts []DistrictPrice `json:"districts"`
	Empty     bool            `json:"empty"`
}

type VarianceView struct {
	Selection Selection        `json:"selection"`
	Policy    string           `json:"policy"`
	Rows      []RentalVariance `json:"rows"`
	Empty     bool             `json:"empty"`
}
