package dataset

import (
	"io"
	"os"

	"seoulmarket/server/internal/models"
)

// Rental dataset column names, verbatim from the source file.
const (
	ColRentDistrict    = "자치구명"
	ColContractDate    = "계약일"
	ColContractType    = "전월세구분"
	ColRent            = "임대료(만원)"
	ColPreviousRent    = "종전임대료"
	ColDeposit         = "보증금(만원)"
	ColPreviousDeposit = "종전보증금"
)

var rentalColumns = []string{
	ColRentDistrict, ColContractDate, ColContractType,
	ColRent, ColPreviousRent, ColDeposit, ColPreviousDeposit,
}

// RentalDataset is a fully loaded, read-only rental table.
type RentalDataset struct {
	Source  string
	Records []models.RentalRecord
}

// LoadRentals reads the rental-contract file at path.
func LoadRentals(path string, enc Encoding) (*RentalDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, accessError(path, err)
	}
	defer f.Close()
	return ReadRentals(path, f, enc)
}

// ReadRentals parses rental contracts from r. Missing previous-term cells
// load as nil, missing current rent or deposit cells as zero.
func ReadRentals(source string, r io.Reader, enc Encoding) (*RentalDataset, error) {
	t, err := openTable(source, r, enc, rentalColumns)
	if err != nil {
		return nil, err
	}

	ds := &RentalDataset{Source: source}
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		ymd, date, err := t.date(ColContractDate)
		if err != nil {
			return nil, err
		}
		rent, err := t.currentAmount(ColRent)
		if err != nil {
			return nil, err
		}
		deposit, err := t.currentAmount(ColDeposit)
		if err != nil {
			return nil, err
		}
		prevRent, err := t.optionalInt(ColPreviousRent)
		if err != nil {
			return nil, err
		}
		prevDeposit, err := t.optionalInt(ColPreviousDeposit)
		if err != nil {
			return nil, err
		}

		ds.Records = append(ds.Records, models.RentalRecord{
			Index:           t.index(),
			District:        t.get(ColRentDistrict),
			ContractType:    models.ContractType(t.get(ColContractType)),
			ContractYMD:     ymd,
			ContractDate:    date,
			ContractYear:    date.Year(),
			ContractMonth:   int(date.Month()),
			Rent:            rent,
			PreviousRent:    prevRent,
			Deposit:         deposit,
			PreviousDeposit: prevDeposit,
		})
	}
	return ds, nil
}

func (t *table) currentAmount(col string) (int64, error) {
	v, err := t.optionalInt(col)
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}

// Len returns the number of loaded records.
func (d *RentalDataset) Len() int {
	return len(d.Records)
}

// Districts returns the sorted distinct district names.
func (d *RentalDataset) Districts() []string {
	seen := make(map[string]struct{})
	for _, r := range d.Records {
		seen[r.District] = struct{}{}
	}
	return sortedKeys(seen)
}

// Years returns the sorted distinct contract years.
func (d *RentalDataset) Years() []int {
	seen := make(map[int]struct{})
	for _, r := range d.Records {
		seen[r.ContractYear] = struct{}{}
	}
	return sortedInts(seen)
}
