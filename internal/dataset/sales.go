package dataset

import (
	"io"
	"os"
	"sort"

	"seoulmarket/server/internal/models"
)

// Sales dataset column names, verbatim from the source file.
const (
	ColDistrict     = "SGG_NM"
	ColNeighborhood = "BJDONG_NM"
	ColBuilding     = "BLDG_NM"
	ColHouseType    = "HOUSE_TYPE"
	ColAmount       = "OBJ_AMT"
	ColBuildYear    = "BUILD_YEAR"
	ColDealDate     = "DEAL_YMD"
)

var salesColumns = []string{
	ColDistrict, ColNeighborhood, ColBuilding, ColHouseType,
	ColAmount, ColBuildYear, ColDealDate,
}

// SalesDataset is a fully loaded, read-only sales table.
type SalesDataset struct {
	Source  string
	Records []models.SaleRecord
	// Dropped counts rows excluded for lacking a construction year.
	Dropped int
}

// LoadSales reads the sale-transaction file at path.
func LoadSales(path string, enc Encoding) (*SalesDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, accessError(path, err)
	}
	defer f.Close()
	return ReadSales(path, f, enc)
}

// ReadSales parses sale transactions from r. Rows with a missing BUILD_YEAR
// are dropped; any other malformed row fails the whole read.
func ReadSales(source string, r io.Reader, enc Encoding) (*SalesDataset, error) {
	t, err := openTable(source, r, enc, salesColumns)
	if err != nil {
		return nil, err
	}

	ds := &SalesDataset{Source: source}
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		if t.missing(ColBuildYear) {
			ds.Dropped++
			continue
		}
		buildYear, err := t.integer(ColBuildYear)
		if err != nil {
			return nil, err
		}
		amount, err := t.integer(ColAmount)
		if err != nil {
			return nil, err
		}
		ymd, date, err := t.date(ColDealDate)
		if err != nil {
			return nil, err
		}

		ds.Records = append(ds.Records, models.SaleRecord{
			Index:        t.index(),
			District:     t.get(ColDistrict),
			Neighborhood: t.get(ColNeighborhood),
			Building:     t.get(ColBuilding),
			HouseType:    models.HouseType(t.get(ColHouseType)),
			Amount:       amount,
			BuildYear:    int(buildYear),
			DealYMD:      ymd,
			DealDate:     date,
			DealYear:     date.Year(),
			DealMonth:    int(date.Month()),
		})
	}
	return ds, nil
}

// Len returns the number of loaded records.
func (d *SalesDataset) Len() int {
	return len(d.Records)
}

// Districts returns the sorted distinct district names.
func (d *SalesDataset) Districts() []string {
	seen := make(map[string]struct{})
	for _, r := range d.Records {
		seen[r.District] = struct{}{}
	}
	return sortedKeys(seen)
}

// Years returns the sorted distinct deal years.
func (d *SalesDataset) Years() []int {
	seen := make(map[int]struct{})
	for _, r := range d.Records {
		seen[r.DealYear] = struct{}{}
	}
	return sortedInts(seen)
}

// Months returns the sorted distinct deal months within year.
func (d *SalesDataset) Months(year int) []int {
	seen := make(map[int]struct{})
	for _, r := range d.Records {
		if r.DealYear == year {
			seen[r.DealMonth] = struct{}{}
		}
	}
	return sortedInts(seen)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedInts(m map[int]struct{}) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
