package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackedDate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantYMD   int
		wantDate  time.Time
		expectErr bool
	}{
		{name: "Plain date", input: "20230515", wantYMD: 20230515, wantDate: time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)},
		{name: "Float suffix", input: "20231201.0", wantYMD: 20231201, wantDate: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)},
		{name: "Leap day", input: "20240229", wantYMD: 20240229, wantDate: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "Not a leap year", input: "20230229", expectErr: true},
		{name: "Month out of range", input: "20231301", expectErr: true},
		{name: "Too short", input: "2023051", expectErr: true},
		{name: "Dashed", input: "2023-05-1", expectErr: true},
		{name: "Empty", input: "", expectErr: true},
		{name: "Fractional", input: "20230515.5", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ymd, date, err := parsePackedDate(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantYMD, ymd)
			assert.True(t, tt.wantDate.Equal(date), "got %v", date)
		})
	}
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		input     string
		expected  int64
		expectErr bool
	}{
		{input: "120000", expected: 120000},
		{input: "1995.0", expected: 1995},
		{input: "-350", expected: -350},
		{input: "12.5", expectErr: true},
		{input: "abc", expectErr: true},
		{input: "NaN", expectErr: true},
		{input: "1e30", expectErr: true},
		{input: "-1e30", expectErr: true},
		{input: "9223372036854775808.0", expectErr: true},
		{input: "1e18", expected: 1000000000000000000},
		{input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := parseInteger(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		input     string
		expected  Encoding
		expectErr bool
	}{
		{input: "", expected: UTF8},
		{input: "UTF-8", expected: UTF8},
		{input: "cp949", expected: EUCKR},
		{input: "EUC-KR", expected: EUCKR},
		{input: "latin1", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			enc, err := ParseEncoding(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, enc)
		})
	}
}
