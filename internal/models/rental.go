package models

import "time"

// ContractType is the verbatim 전월세구분 label of a rental filing.
type ContractType string

const (
	// Jeonse is a deposit-only contract.
	Jeonse ContractType = "전세"
	// Wolse is a monthly lease with deposit plus rent.
	Wolse ContractType = "월세"
)

// Label returns the English name for the contract type.
func (c ContractType) Label() string {
	switch c {
	case Jeonse:
		return "Deposit only"
	case Wolse:
		return "Monthly lease"
	default:
		return string(c)
	}
}

// RentalRecord is one rental contract filing. Amounts are in units of
// 10,000 won. Previous values are nil for first-time filings.
type RentalRecord struct {
	Index           string       `json:"index"`
	District        string       `json:"district"`
	ContractType    ContractType `json:"contract_type"`
	ContractYMD     int          `json:"contract_ymd"`
	ContractDate    time.Time    `json:"contract_date"`
	ContractYear    int          `json:"contract_year"`
	ContractMonth   int          `json:"contract_month"`
	Rent            int64        `json:"rent"`
	PreviousRent    *int64       `json:"previous_rent"`
	Deposit         int64        `json:"deposit"`
	PreviousDeposit *int64       `json:"previous_deposit"`
}

// RentalVariance pairs a rental record with its term-over-term deltas.
// A nil delta means the previous value was unavailable under the active
// variance policy.
type RentalVariance struct {
	RentalRecord
	RentDelta    *int64 `json:"rent_delta"`
	DepositDelta *int64 `json:"deposit_delta"`
}
