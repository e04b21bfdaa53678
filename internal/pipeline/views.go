package pipeline

import "seoulmarket/server/internal/models"

// Options tune the view builders.
type Options struct {
	TopN int
	// RentalFilterByYear also constrains rental views to the selected year.
	// The dashboard historically compared a month across all years.
	RentalFilterByYear bool
	VariancePolicy     VariancePolicy
	DensityYearBin     int
	DensityAmountBin   int64
}

func DefaultOptions() Options {
	return Options{
		TopN:             10,
		VariancePolicy:   StrictVariance,
		DensityYearBin:   5,
		DensityAmountBin: 10000,
	}
}

// Rentals applies the district/month selection to rental records, adding
// the year constraint when RentalFilterByYear is set.
func (o Options) Rentals(records []models.RentalRecord, sel models.Selection) []models.RentalRecord {
	if o.RentalFilterByYear {
		return FilterRentalsInYear(records, sel.District, sel.Year, sel.Month)
	}
	return FilterRentals(records, sel.District, sel.Month)
}

func (o Options) rentalYear(sel models.Selection) int {
	if o.RentalFilterByYear {
		return sel.Year
	}
	return 0
}

// BuildOverview assembles the KPI block and the apartment rankings.
func BuildOverview(sales []models.SaleRecord, sel models.Selection, opts Options) models.Overview {
	subset := FilterSelection(sales, sel)
	apartments := FilterSales(sales, sel.District, sel.Year, sel.Month, models.Apartment)

	view := models.Overview{
		Selection:        sel,
		Summary:          Summarize(subset),
		ApartmentSummary: Summarize(apartments),
		TopApartments:    TopN(apartments, opts.TopN, false),
		BottomApartments: TopN(apartments, opts.TopN, true),
		Empty:            len(subset) == 0,
	}
	if prev, ok := PreviousMean(subset); ok {
		d := view.Summary.Mean - prev
		view.MeanDelta = &d
	}
	return view
}

// BuildRatio assembles the house-type share, the contract-type ratio of the
// selected district and the Seoul-wide rent variance of the selected month.
func BuildRatio(sales []models.SaleRecord, rentals []models.RentalRecord, sel models.Selection, opts Options) models.RatioView {
	subset := FilterSales(sales, sel.District, sel.Year, sel.Month, models.AnyHouseType)
	districtRentals := opts.Rentals(rentals, sel)
	monthRentals := FilterRentalsMonth(rentals, opts.rentalYear(sel), sel.Month)

	return models.RatioView{
		Selection:     sel,
		HouseTypes:    ShareByHouseType(subset),
		ContractTypes: ContractTypeRatio(districtRentals),
		Variance:      DistrictVariance(ComputeVariance(monthRentals, opts.VariancePolicy)),
		Empty:         len(subset) == 0 && len(districtRentals) == 0,
	}
}

// BuildTrend assembles per house type price and transaction-count series.
func BuildTrend(sales []models.SaleRecord, sel models.Selection) models.TrendView {
	subset := FilterSales(sales, sel.District, sel.Year, sel.Month, models.AnyHouseType)

	view := models.TrendView{
		Selection: sel,
		Series:    make([]models.TrendSeries, 0, len(models.HouseTypes)),
		Empty:     len(subset) == 0,
	}
	for _, h := range models.HouseTypes {
		rows := FilterByHouseType(subset, h)
		view.Series = append(view.Series, models.TrendSeries{
			HouseType: h,
			Label:     h.Label(),
			Prices:    PriceSeries(rows),
			Counts:    GroupByDateCount(rows),
		})
	}
	return view
}

// BuildCorrelation bins the selection's apartments by build year and price.
// A house type on the selection replaces the apartment default.
func BuildCorrelation(sales []models.SaleRecord, sel models.Selection, opts Options) models.CorrelationView {
	houseType := sel.HouseType
	if houseType == models.AnyHouseType {
		houseType = models.Apartment
	}
	subset := FilterSales(sales, sel.District, sel.Year, sel.Month, houseType)

	return models.CorrelationView{
		Selection: sel,
		YearBin:   opts.DensityYearBin,
		AmountBin: opts.DensityAmountBin,
		Cells:     DensityGrid(subset, opts.DensityYearBin, opts.DensityAmountBin),
		Empty:     len(subset) == 0,
	}
}

// BuildSeoul compares districts for one month and house type.
func BuildSeoul(sales []models.SaleRecord, year, month int, houseType models.HouseType) models.SeoulView {
	subset := FilterSalesMonth(sales, year, month, houseType)
	return models.SeoulView{
		Year:      year,
		Month:     month,
		HouseType: houseType,
		Districts: DistrictPrices(subset),
		Empty:     len(subset) == 0,
	}
}

// BuildVariance lists the per-contract deltas of the selected district.
func BuildVariance(rentals []models.RentalRecord, sel models.Selection, opts Options) models.VarianceView {
	rows := ComputeVariance(opts.Rentals(rentals, sel), opts.VariancePolicy)
	return models.VarianceView{
		Selection: sel,
		Policy:    string(opts.VariancePolicy),
		Rows:      rows,
		Empty:     len(rows) == 0,
	}
}
