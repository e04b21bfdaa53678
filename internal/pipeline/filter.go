package pipeline

import "seoulmarket/server/internal/models"

// FilterSales keeps the records of one district, deal year and deal month,
// and of one house type unless houseType is models.AnyHouseType. Matches
// keep their source order.
func FilterSales(records []models.SaleRecord, district string, year, month int, houseType models.HouseType) []models.SaleRecord {
	out := make([]models.SaleRecord, 0)
	for _, r := range records {
		if r.District != district || r.DealYear != year || r.DealMonth != month {
			continue
		}
		if houseType != models.AnyHouseType && r.HouseType != houseType {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterSelection applies a Selection to sale records.
func FilterSelection(records []models.SaleRecord, sel models.Selection) []models.SaleRecord {
	return FilterSales(records, sel.District, sel.Year, sel.Month, sel.HouseType)
}

// FilterByHouseType keeps the records of one house type.
func FilterByHouseType(records []models.SaleRecord, houseType models.HouseType) []models.SaleRecord {
	out := make([]models.SaleRecord, 0)
	for _, r := range records {
		if r.HouseType == houseType {
			out = append(out, r)
		}
	}
	return out
}

// FilterSalesMonth keeps the Seoul-wide records of one year and month, of
// one house type unless houseType is models.AnyHouseType.
func FilterSalesMonth(records []models.SaleRecord, year, month int, houseType models.HouseType) []models.SaleRecord {
	out := make([]models.SaleRecord, 0)
	for _, r := range records {
		if r.DealYear != year || r.DealMonth != month {
			continue
		}
		if houseType != models.AnyHouseType && r.HouseType != houseType {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterRentals keeps the contracts of one district signed in the given
// month of any year.
func FilterRentals(records []models.RentalRecord, district string, month int) []models.RentalRecord {
	out := make([]models.RentalRecord, 0)
	for _, r := range records {
		if r.District == district && r.ContractMonth == month {
			out = append(out, r)
		}
	}
	return out
}

// FilterRentalsInYear is FilterRentals restricted to one contract year.
func FilterRentalsInYear(records []models.RentalRecord, district string, year, month int) []models.RentalRecord {
	out := make([]models.RentalRecord, 0)
	for _, r := range records {
		if r.District == district && r.ContractYear == year && r.ContractMonth == month {
			out = append(out, r)
		}
	}
	return out
}

// FilterRentalsMonth keeps the Seoul-wide contracts of one month. A year of
// zero matches every year.
func FilterRentalsMonth(records []models.RentalRecord, year, month int) []models.RentalRecord {
	out := make([]models.RentalRecord, 0)
	for _, r := range records {
		if r.ContractMonth != month {
			continue
		}
		if year != 0 && r.ContractYear != year {
			continue
		}
		out = append(out, r)
	}
	return out
}
