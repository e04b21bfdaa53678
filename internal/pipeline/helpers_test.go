package pipeline

import (
	"time"

	"seoulmarket/server/internal/models"
)

func sale(index, district string, ymd int, houseType models.HouseType, amount int64, buildYear int) models.SaleRecord {
	date := time.Date(ymd/10000, time.Month(ymd/100%100), ymd%100, 0, 0, 0, 0, time.UTC)
	return models.SaleRecord{
		Index:     index,
		District:  district,
		Building:  "bldg-" + index,
		HouseType: houseType,
		Amount:    amount,
		BuildYear: buildYear,
		DealYMD:   ymd,
		DealDate:  date,
		DealYear:  date.Year(),
		DealMonth: int(date.Month()),
	}
}

func rental(district string, ymd int, kind models.ContractType, rent int64, prevRent *int64, deposit int64, prevDeposit *int64) models.RentalRecord {
	date := time.Date(ymd/10000, time.Month(ymd/100%100), ymd%100, 0, 0, 0, 0, time.UTC)
	return models.RentalRecord{
		District:        district,
		ContractType:    kind,
		ContractYMD:     ymd,
		ContractDate:    date,
		ContractYear:    date.Year(),
		ContractMonth:   int(date.Month()),
		Rent:            rent,
		PreviousRent:    prevRent,
		Deposit:         deposit,
		PreviousDeposit: prevDeposit,
	}
}

func i64(v int64) *int64 {
	return &v
}

// gangnam mirrors the worked example: two May apartments and one June one.
func gangnam() []models.SaleRecord {
	return []models.SaleRecord{
		sale("0", "Gangnam", 20230510, models.Apartment, 120000, 2005),
		sale("1", "Gangnam", 20230521, models.Apartment, 95000, 1999),
		sale("2", "Gangnam", 20230602, models.Apartment, 80000, 2012),
	}
}

func indexes(records []models.SaleRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Index
	}
	return out
}
