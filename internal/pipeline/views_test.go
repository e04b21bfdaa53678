package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoulmarket/server/internal/models"
)

func viewSales() []models.SaleRecord {
	records := gangnam()
	for i := 0; i < 12; i++ {
		records = append(records, sale(fmt.Sprint(10+i), "Gangnam", 20230501+i, models.Apartment, int64(50000+i*1000), 1990+i))
	}
	return append(records,
		sale("30", "Gangnam", 20230515, models.StudioFlat, 30000, 2018),
		sale("31", "Gangnam", 20230516, models.Villa2, 70000, 1985),
		sale("32", "Seocho", 20230515, models.Apartment, 150000, 2015),
	)
}

func viewRentals() []models.RentalRecord {
	return []models.RentalRecord{
		rental("Gangnam", 20230503, models.Wolse, 120, i64(100), 10000, i64(9000)),
		rental("Gangnam", 20220511, models.Jeonse, 0, nil, 40000, i64(38000)),
		rental("Seocho", 20230505, models.Wolse, 70, i64(60), 800, i64(700)),
		rental("Gangnam", 20230610, models.Wolse, 80, nil, 500, nil),
	}
}

func TestBuildOverview(t *testing.T) {
	sel := models.Selection{District: "Gangnam", Year: 2023, Month: 5}
	view := BuildOverview(viewSales(), sel, DefaultOptions())

	assert.False(t, view.Empty)
	assert.Equal(t, sel, view.Selection)
	assert.Equal(t, 16, view.Summary.Count)
	assert.Equal(t, 14, view.ApartmentSummary.Count)
	assert.Equal(t, int64(50000), view.ApartmentSummary.Min)
	assert.Equal(t, int64(120000), view.ApartmentSummary.Max)

	require.Len(t, view.TopApartments, 10)
	assert.Equal(t, "0", view.TopApartments[0].Index)
	assert.Equal(t, "1", view.TopApartments[1].Index)
	require.Len(t, view.BottomApartments, 10)
	assert.Equal(t, "10", view.BottomApartments[0].Index)
	for _, r := range append(view.TopApartments, view.BottomApartments...) {
		assert.Equal(t, models.Apartment, r.HouseType)
	}

	require.NotNil(t, view.MeanDelta)
	prev, _ := PreviousMean(FilterSelection(viewSales(), sel))
	assert.Equal(t, view.Summary.Mean-prev, *view.MeanDelta)
}

func TestBuildOverview_EmptySelection(t *testing.T) {
	sel := models.Selection{District: "Jongno", Year: 2023, Month: 5}
	view := BuildOverview(viewSales(), sel, DefaultOptions())

	assert.True(t, view.Empty)
	assert.False(t, view.Summary.HasData)
	assert.False(t, view.ApartmentSummary.HasData)
	assert.Nil(t, view.MeanDelta)
	assert.NotNil(t, view.TopApartments)
	assert.Empty(t, view.TopApartments)
	assert.Empty(t, view.BottomApartments)
}

func TestBuildRatio(t *testing.T) {
	sel := models.Selection{District: "Gangnam", Year: 2023, Month: 5}

	t.Run("Month across years", func(t *testing.T) {
		view := BuildRatio(viewSales(), viewRentals(), sel, DefaultOptions())
		assert.False(t, view.Empty)
		require.Len(t, view.HouseTypes, 3)
		assert.Equal(t, models.Apartment, view.HouseTypes[0].HouseType)
		assert.Equal(t, 14, view.HouseTypes[0].Count)

		assert.Equal(t, []models.ContractTypeCount{
			{ContractType: models.Jeonse, Label: "Deposit only", Count: 1},
			{ContractType: models.Wolse, Label: "Monthly lease", Count: 1},
		}, view.ContractTypes)

		assert.Equal(t, []models.DistrictVariance{
			{District: "Gangnam", RentDelta: 20, RentRows: 1, DepositDelta: 3000, DepositRows: 2},
			{District: "Seocho", RentDelta: 10, RentRows: 1, DepositDelta: 100, DepositRows: 1},
		}, view.Variance)
	})

	t.Run("Month within the year", func(t *testing.T) {
		opts := DefaultOptions()
		opts.RentalFilterByYear = true
		view := BuildRatio(viewSales(), viewRentals(), sel, opts)

		assert.Equal(t, []models.ContractTypeCount{
			{ContractType: models.Wolse, Label: "Monthly lease", Count: 1},
		}, view.ContractTypes)
		require.Len(t, view.Variance, 2)
		assert.Equal(t, int64(1000), view.Variance[0].DepositDelta)
	})
}

func TestBuildTrend(t *testing.T) {
	sel := models.Selection{District: "Gangnam", Year: 2023, Month: 5}
	view := BuildTrend(viewSales(), sel)

	require.Len(t, view.Series, len(models.HouseTypes))
	apartments := view.Series[0]
	assert.Equal(t, models.Apartment, apartments.HouseType)
	assert.Len(t, apartments.Prices, 14)

	total := 0
	for _, c := range apartments.Counts {
		total += c.Count
	}
	assert.Equal(t, 14, total)
	for i := 1; i < len(apartments.Counts); i++ {
		assert.True(t, apartments.Counts[i-1].Date.Before(apartments.Counts[i].Date))
	}

	assert.Empty(t, view.Series[2].Prices, "no multi-unit type 1 sales")
	assert.Len(t, view.Series[3].Prices, 1)
}

func TestBuildCorrelation(t *testing.T) {
	sel := models.Selection{District: "Gangnam", Year: 2023, Month: 5}
	view := BuildCorrelation(viewSales(), sel, DefaultOptions())

	assert.False(t, view.Empty)
	assert.Equal(t, 5, view.YearBin)
	total := 0
	for _, c := range view.Cells {
		total += c.Count
	}
	assert.Equal(t, 14, total)

	sel.HouseType = models.StudioFlat
	view = BuildCorrelation(viewSales(), sel, DefaultOptions())
	assert.Equal(t, []models.DensityCell{{BuildYearFrom: 2015, AmountFrom: 30000, Count: 1}}, view.Cells)
}

func TestBuildSeoul(t *testing.T) {
	view := BuildSeoul(viewSales(), 2023, 5, models.Apartment)
	require.Len(t, view.Districts, 2)
	assert.Equal(t, "Gangnam", view.Districts[0].District)
	assert.Equal(t, 14, view.Districts[0].Count)
	assert.Equal(t, "Seocho", view.Districts[1].District)

	assert.True(t, BuildSeoul(viewSales(), 2019, 5, models.Apartment).Empty)
}

func TestBuildVariance(t *testing.T) {
	sel := models.Selection{District: "Gangnam", Year: 2023, Month: 6}
	view := BuildVariance(viewRentals(), sel, DefaultOptions())

	assert.Equal(t, "strict", view.Policy)
	require.Len(t, view.Rows, 1)
	assert.Nil(t, view.Rows[0].RentDelta)

	sel.Month = 1
	assert.True(t, BuildVariance(viewRentals(), sel, DefaultOptions()).Empty)
}
