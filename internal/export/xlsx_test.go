package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"seoulmarket/server/internal/models"
)

func TestWriteOverview(t *testing.T) {
	view := models.Overview{
		Selection:        models.Selection{District: "강남구", Year: 2023, Month: 5},
		Summary:          models.Summary{Count: 2, Mean: 107500, Min: 95000, Max: 120000, HasData: true},
		ApartmentSummary: models.Summary{Count: 2, Mean: 107500, Min: 95000, Max: 120000, HasData: true},
		TopApartments: []models.SaleRecord{
			{District: "강남구", Neighborhood: "역삼동", Building: "래미안", Amount: 120000},
			{District: "강남구", Neighborhood: "역삼동", Building: "자이", Amount: 95000},
		},
		BottomApartments: []models.SaleRecord{
			{District: "강남구", Neighborhood: "역삼동", Building: "자이", Amount: 95000},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOverview(&buf, view))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Top", "Bottom"}, f.GetSheetList())

	top, err := f.GetRows("Top")
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"District", "Dong", "Apt. Name", "Price"}, top[0])
	assert.Equal(t, "래미안", top[1][2])

	raw, err := f.GetCellValue("Top", "D2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "120000", raw)

	bottom, err := f.GetRows("Bottom")
	require.NoError(t, err)
	assert.Len(t, bottom, 2)

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summary, 7)
	assert.Equal(t, "강남구", summary[0][1])
}

func TestWriteOverview_Empty(t *testing.T) {
	view := models.Overview{
		Selection:        models.Selection{District: "종로구", Year: 2023, Month: 5},
		TopApartments:    []models.SaleRecord{},
		BottomApartments: []models.SaleRecord{},
		Empty:            true,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOverview(&buf, view))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summary, 5)
	assert.Equal(t, "no data", summary[4][1])

	top, err := f.GetRows("Top")
	require.NoError(t, err)
	assert.Len(t, top, 1)
}
