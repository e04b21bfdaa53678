package dataset

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoulmarket/server/internal/models"
)

const rentalsCSV = `,자치구명,계약일,전월세구분,임대료(만원),종전임대료,보증금(만원),종전보증금
0,강남구,20230503,월세,120,100,10000,9000
1,강남구,20230517,전세,0,,45000,
2,서초구,20220509,월세,50,0,3000,3000
3,송파구,20230611,전세,,,52000,50000
`

func TestReadRentals(t *testing.T) {
	ds, err := ReadRentals("rent.csv", strings.NewReader(rentalsCSV), UTF8)
	require.NoError(t, err)
	require.Equal(t, 4, ds.Len())

	first := ds.Records[0]
	assert.Equal(t, "강남구", first.District)
	assert.Equal(t, models.Wolse, first.ContractType)
	assert.Equal(t, 20230503, first.ContractYMD)
	assert.Equal(t, 2023, first.ContractYear)
	assert.Equal(t, 5, first.ContractMonth)
	assert.Equal(t, int64(120), first.Rent)
	require.NotNil(t, first.PreviousRent)
	assert.Equal(t, int64(100), *first.PreviousRent)
	assert.Equal(t, int64(10000), first.Deposit)
	require.NotNil(t, first.PreviousDeposit)
	assert.Equal(t, int64(9000), *first.PreviousDeposit)

	firstFiling := ds.Records[1]
	assert.Equal(t, models.Jeonse, firstFiling.ContractType)
	assert.Nil(t, firstFiling.PreviousRent)
	assert.Nil(t, firstFiling.PreviousDeposit)

	zeroPrevious := ds.Records[2]
	require.NotNil(t, zeroPrevious.PreviousRent)
	assert.Equal(t, int64(0), *zeroPrevious.PreviousRent)

	assert.Equal(t, int64(0), ds.Records[3].Rent)
}

func TestReadRentals_MissingTokens(t *testing.T) {
	input := `,자치구명,계약일,전월세구분,임대료(만원),종전임대료,보증금(만원),종전보증금
0,강남구,20230503,월세,120,NaN,10000,NULL
1,강남구,20230517,전세,nan,N/A,45000,<NA>
`
	ds, err := ReadRentals("rent.csv", strings.NewReader(input), UTF8)
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	assert.Nil(t, ds.Records[0].PreviousRent)
	assert.Nil(t, ds.Records[0].PreviousDeposit)
	assert.Equal(t, int64(0), ds.Records[1].Rent)
	assert.Nil(t, ds.Records[1].PreviousRent)
	assert.Nil(t, ds.Records[1].PreviousDeposit)
}

func TestReadRentals_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
	}{
		{
			name:     "Missing previous deposit column",
			input:    ",자치구명,계약일,전월세구분,임대료(만원),종전임대료,보증금(만원)\n0,강남구,20230503,월세,1,1,1\n",
			sentinel: ErrSchema,
		},
		{
			name:     "Malformed contract date",
			input:    ",자치구명,계약일,전월세구분,임대료(만원),종전임대료,보증금(만원),종전보증금\n0,강남구,2023-05-03,월세,1,1,1,1\n",
			sentinel: ErrDateParse,
		},
		{
			name:     "Malformed previous rent",
			input:    ",자치구명,계약일,전월세구분,임대료(만원),종전임대료,보증금(만원),종전보증금\n0,강남구,20230503,월세,1,1.5,1,1\n",
			sentinel: ErrValueParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := ReadRentals("rent.csv", strings.NewReader(tt.input), UTF8)
			assert.Nil(t, ds)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
		})
	}
}

func TestRentalDataset_Options(t *testing.T) {
	ds, err := ReadRentals("rent.csv", strings.NewReader(rentalsCSV), UTF8)
	require.NoError(t, err)

	assert.Equal(t, []string{"강남구", "서초구", "송파구"}, ds.Districts())
	assert.Equal(t, []int{2022, 2023}, ds.Years())
}
